package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NebulaX/nebulax/nebulax/cmd/nebulax/internal/common"
	"github.com/NebulaX/nebulax/nebulax/cmd/nebulax/internal/compile"
	"github.com/NebulaX/nebulax/nebulax/cmd/nebulax/internal/deployment"
	"github.com/NebulaX/nebulax/nebulax/cmd/nebulax/internal/descriptor"
	"github.com/NebulaX/nebulax/nebulax/cmd/nebulax/internal/plan"
	"github.com/NebulaX/nebulax/nebulax/common/logging"
	"github.com/NebulaX/nebulax/nebulax/internal/cobrax"
	"github.com/NebulaX/nebulax/nebulax/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type RootCommand struct {
	baseCmd  *cobra.Command
	config   config.Config
	envFile  string
	logLevel string
	verbose  bool
	environ  func() []string
}

var logger = logging.NewLogger("root")

// Commands that run without resolving the configuration.
var noConfigCmd = map[string]struct{}{
	"help":             {},
	"plan":             {},
	"version":          {},
	"completion":       {},
	"__complete":       {},
	"__completeNoDesc": {},
}

func newRootCommand(environ func() []string) *RootCommand {
	rootCmd := &RootCommand{environ: environ}

	rootCmd.baseCmd = &cobra.Command{
		Use:   "nebulax",
		Short: "Deployment tooling for the NebulaX contracts on Arbitrum Sepolia",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !rootCmd.verbose {
				zerolog.SetGlobalLevel(zerolog.Disabled)
			} else if err := logging.TrySetupGlobalLevel(rootCmd.logLevel); err != nil {
				return err
			}
			logging.ApplyComponentsFilterEnv()

			// Traverse up to find the top-level command
			top := cmd
			for top.HasParent() && top.Parent() != rootCmd.baseCmd {
				top = top.Parent()
			}
			if _, withoutConfig := noConfigCmd[top.Name()]; withoutConfig {
				return nil
			}

			return rootCmd.loadConfig(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.baseCmd.PersistentFlags()
	cobrax.AddEnvFileFlag(flags, &rootCmd.envFile, config.DefaultEnvFile)
	cobrax.AddLogLevelFlag(flags, &rootCmd.logLevel)
	flags.BoolVarP(&rootCmd.verbose, "verbose", "v", false, "Verbose mode (print logs)")
	flags.BoolVarP(&common.Quiet, "quiet", "q", false, "Quiet mode (print only the result and exit)")

	rootCmd.registerSubCommands()
	return rootCmd
}

func (rc *RootCommand) loadConfig(cmd *cobra.Command) error {
	env, err := config.LoadEnv(rc.envFile, rc.environ(), cobrax.EnvFileRequired(cmd.Flags()))
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(env)
	if err != nil {
		logger.Error().Err(err).Msg("Configuration is incomplete")
		return err
	}
	rc.config = *cfg

	logger.Debug().
		Str(logging.FieldNetwork, cfg.Network.Name).
		Str(logging.FieldUrl, cfg.Network.URL).
		Stringer(logging.FieldChainId, cfg.Network.ChainId).
		Msg("Configuration resolved")
	return nil
}

// registerSubCommands adds all subcommands to the root command
func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		descriptor.GetCommand(&rc.config),
		plan.GetCommand(),
		deployment.GetCommand(&rc.config),
		compile.GetCommand(&rc.config),
		cobrax.VersionCmd("nebulax"),
	)
}

// Execute runs the root command and handles any errors
func (rc *RootCommand) Execute(ctx context.Context) error {
	return rc.baseCmd.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Environ).Execute(ctx); err != nil {
		stop()
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		os.Exit(1)
	}
}
