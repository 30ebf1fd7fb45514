package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

const DefaultEnvFile = ".env"

// LoadEnv reads an optional dotenv file and overlays environ (os.Environ() form) on top.
// Variables already present in environ win, the same way dotenv never overrides the
// process environment. A missing file is tolerated unless required is set.
func LoadEnv(path string, environ []string, required bool) (Env, error) {
	env := make(Env)

	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("env")
		err := v.ReadInConfig()
		switch {
		case err == nil:
			for _, key := range v.AllKeys() {
				env[strings.ToUpper(key)] = v.GetString(key)
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
	}

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env, nil
}
