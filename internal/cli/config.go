package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TICKTOCK_FORMAT.
const EnvPrefix = "TICKTOCK"

// loadConfig reads defaults from path, or from $HOME/.ticktock/config.yaml
// when path is empty. A missing default file is not an error; a missing
// explicit file is.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return v, nil
		}
		v.AddConfigPath(filepath.Join(home, ".ticktock"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolveString fills dst from config when the flag was not given on the
// command line. Reports whether dst was set by either source.
func (o *RootOptions) resolveString(cmd *cobra.Command, flag string, dst *string) bool {
	if f := cmd.Flag(flag); f != nil && f.Changed {
		return true
	}
	if o.config == nil || !o.config.IsSet(flag) {
		return false
	}
	*dst = o.config.GetString(flag)
	return true
}

// resolveBool is resolveString for boolean settings.
func (o *RootOptions) resolveBool(cmd *cobra.Command, flag string, dst *bool) bool {
	if f := cmd.Flag(flag); f != nil && f.Changed {
		return true
	}
	if o.config == nil || !o.config.IsSet(flag) {
		return false
	}
	*dst = o.config.GetBool(flag)
	return true
}
