package cobrax

import (
	"github.com/NebulaX/nebulax/nebulax/common/version"
	"github.com/spf13/cobra"
)

func VersionCmd(title string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.BuildVersionString(title))
		},
	}
}
