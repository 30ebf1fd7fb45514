package cobrax

import (
	"github.com/spf13/pflag"
)

func AddLogLevelFlag(fset *pflag.FlagSet, dst *string) {
	AddCustomLogLevelFlag(fset, "log-level", "l", dst)
}

func AddCustomLogLevelFlag(fset *pflag.FlagSet, name, short string, dst *string) {
	if *dst == "" {
		*dst = "info"
	}
	fset.StringVarP(dst, name, short, *dst, "log level: trace|debug|info|warn|error|fatal|panic")
}

// AddEnvFileFlag adds the dotenv file flag. Whether the user set it explicitly
// decides if a missing file is an error, see EnvFileRequired.
func AddEnvFileFlag(fset *pflag.FlagSet, dst *string, def string) {
	fset.StringVarP(dst, "env-file", "e", def, "dotenv file with API_URL, PRIVATE_KEY and API_KEY")
}

func EnvFileRequired(fset *pflag.FlagSet) bool {
	return fset.Changed("env-file")
}
