package compile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NebulaX/nebulax/nebulax/cmd/nebulax/internal/common"
	"github.com/NebulaX/nebulax/nebulax/common/check"
	"github.com/NebulaX/nebulax/nebulax/common/logging"
	"github.com/NebulaX/nebulax/nebulax/internal/config"
	"github.com/NebulaX/nebulax/nebulax/internal/solc"
	"github.com/ethereum/go-ethereum/common/compiler"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("compileCommand")

func GetCommand(cfg *config.Config) *cobra.Command {
	var (
		source    string
		outputDir string
		solcPath  string
		basePath  string
	)

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile contracts with the configured solc version and optimizer settings",
		Long:  "For each contract in the source this command writes two files (abi and bin) named after the contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if solcPath == "" {
				var err error
				solcPath, err = solc.FindCompiler(cfg.Compiler.Version)
				if err != nil {
					return err
				}
			}
			if outputDir == "" {
				outputDir = filepath.Dir(source)
			}
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			var opts []solc.Option
			if basePath != "" {
				opts = append(opts, solc.WithBasePath(basePath))
			}

			logger.Info().
				Str(logging.FieldCompilerVersion, cfg.Compiler.Version).
				Int(logging.FieldOptimizerRuns, cfg.Compiler.Optimizer.Runs).
				Str(logging.FieldPath, source).
				Msg("Compiling")

			contracts, err := solc.Compile(cmd.Context(), solcPath, source, cfg.Compiler, opts...)
			if err != nil {
				return err
			}

			for name, c := range contracts {
				abiFile := filepath.Join(outputDir, name+".abi")
				codeFile := filepath.Join(outputDir, name+".bin")

				if err := writeArtifacts(c, abiFile, codeFile); err != nil {
					return fmt.Errorf("contract %s: %w", name, err)
				}

				if common.Quiet {
					fmt.Fprintln(cmd.OutOrStdout(), abiFile)
					fmt.Fprintln(cmd.OutOrStdout(), codeFile)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s, %s\n", name, abiFile, codeFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "path to the solidity source file")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory, defaults to the source directory")
	cmd.Flags().StringVar(&solcPath, "solc", "", "path to a solc binary; by default the configured version is installed with solc-select")
	cmd.Flags().StringVar(&basePath, "base-path", "", "solc base path for imports")
	check.PanicIfErr(cmd.MarkFlagRequired("source"))
	return cmd
}

func writeArtifacts(c *compiler.Contract, abiFile, codeFile string) error {
	abi, err := json.Marshal(c.Info.AbiDefinition)
	if err != nil {
		return fmt.Errorf("failed to encode abi: %w", err)
	}
	if err := os.WriteFile(abiFile, abi, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write abi: %w", err)
	}
	if err := os.WriteFile(codeFile, []byte(c.Code), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write code: %w", err)
	}
	return nil
}
