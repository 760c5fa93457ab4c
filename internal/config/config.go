// Package config builds the viper-backed configuration bag the CLI binds
// flags into and the equation driver reads back out of, per the
// precedence order flags > environment > file. Grounded on
// teranos-QNTX's am/load.go direct viper usage.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// New returns a *viper.Viper searching the current directory (and, if
// set, $HOME) for an optional .noodler config file, always parsed as
// YAML (a TOML file is not read), with NOODLER_*
// environment variables bound above it. CLI flags are bound on top of
// this by the caller via BindPFlags once the command's flag set exists.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName(".noodler")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("noodler")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// A missing config file is not an error: the bag falls back to
	// environment and flag values, per UnknownConfigValue's "silently
	// defaulted" semantics applied to the file layer itself.
	_ = v.ReadInConfig()

	return v
}
