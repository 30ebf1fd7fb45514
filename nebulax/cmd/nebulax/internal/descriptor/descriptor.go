package descriptor

import (
	"github.com/NebulaX/nebulax/nebulax/cmd/nebulax/internal/common"
	"github.com/NebulaX/nebulax/nebulax/internal/config"
	"github.com/spf13/cobra"
)

type view struct {
	config.Config `yaml:",inline"`

	Account string `yaml:"account" json:"account"`
}

func GetCommand(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved network, explorer and compiler settings",
	}

	var asJson bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration (secrets redacted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view{Config: cfg.Redacted()}
			if account, err := cfg.Network.Account(); err == nil {
				v.Account = account.Hex()
			} else {
				v.Account = err.Error()
			}

			if asJson {
				return common.WriteJSON(cmd.OutOrStdout(), v)
			}
			return common.WriteYAML(cmd.OutOrStdout(), v)
		},
	}
	showCmd.Flags().BoolVar(&asJson, "json", false, "print as json")

	configCmd.AddCommand(showCmd)
	return configCmd
}
