package deployment

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/NebulaX/nebulax/nebulax/cmd/nebulax/internal/common"
	"github.com/NebulaX/nebulax/nebulax/common/logging"
	"github.com/NebulaX/nebulax/nebulax/internal/config"
	"github.com/NebulaX/nebulax/nebulax/internal/deploy"
	"github.com/NebulaX/nebulax/nebulax/internal/journal"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("deployCommand")

var ErrNoEngine = errors.New("no transaction engine is configured, rerun with --dry-run")

type params struct {
	module      string
	dryRun      bool
	root        string
	nonce       uint64
	concurrency int
}

func GetCommand(cfg *config.Config) *cobra.Command {
	p := &params{}

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the NebulaX contracts in dependency order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, p)
		},
	}

	cmd.Flags().StringVarP(&p.module, "module", "m", deploy.DefaultModuleName, "deployment module name")
	cmd.Flags().BoolVar(&p.dryRun, "dry-run", false, "predict addresses without sending transactions")
	cmd.Flags().StringVar(&p.root, "deployments", journal.DefaultRoot, "directory with deployment journals")
	cmd.Flags().Uint64Var(&p.nonce, "nonce", 0, "deployer account nonce to start from (dry run)")
	cmd.Flags().IntVar(&p.concurrency, "concurrency", deploy.DefaultConcurrency, "maximum number of steps deployed at once")
	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config, p *params) error {
	if err := deploy.ValidateModuleName(p.module); err != nil {
		return err
	}
	if !p.dryRun {
		return ErrNoEngine
	}

	account, err := cfg.Network.Account()
	if err != nil {
		return err
	}

	dir := journal.Dir(p.root, cfg.Network.ChainId) + "-dry-run"
	store := journal.NewStore(dir, logger)
	previous, err := store.Load()
	if err != nil {
		return err
	}

	logger.Info().
		Str(logging.FieldNetwork, cfg.Network.Name).
		Stringer(logging.FieldChainId, cfg.Network.ChainId).
		Stringer(logging.FieldAccount, account).
		Msg("Starting dry run")

	unit := deploy.BuildNebulaX(p.module)
	executor := deploy.NewExecutor(
		deploy.NewSimulatedEngine(account, p.nonce),
		deploy.WithDeployment(deploy.NewDeploymentFrom(previous)),
		deploy.WithConcurrency(p.concurrency),
		deploy.WithLogger(logger),
	)

	res, err := executor.Run(cmd.Context(), unit)
	if err != nil {
		return err
	}
	if err := store.Save(res.Addresses); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	results := unit.Results()
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		addr := res.Addresses[results[name].Id()]
		if common.Quiet {
			fmt.Fprintf(out, "%s %s\n", name, addr.Hex())
			continue
		}
		fmt.Fprintf(out, "%-12s %s %s\n", name, addr.Hex(), cfg.Explorer.AddressURL(addr))
	}
	if !common.Quiet {
		fmt.Fprintf(out, "Saved to %s\n", filepath.ToSlash(store.Path()))
	}
	return nil
}
