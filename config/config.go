// Package config loads treedoc settings from an optional YAML file and
// TREEDOC_* environment variables.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const envPrefix = "TREEDOC"

// Config holds the defaults for the global command line flags. Flags set
// explicitly on the command line win.
type Config struct {
	Language string `mapstructure:"lang"`
	Selector string `mapstructure:"selector"`
	Policy   string `mapstructure:"policy"`
	DocPath  string `mapstructure:"doc_path"`
	Format   string `mapstructure:"format"`
	JSONLog  bool   `mapstructure:"json_log"`
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("lang", "en")
	v.SetDefault("selector", "")
	v.SetDefault("policy", "hash")
	v.SetDefault("doc_path", ".")
	v.SetDefault("format", "plain")
	v.SetDefault("json_log", false)
}

// Load reads the configuration. An empty path skips the config file;
// environment variables always apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper unmarshals the configuration held by v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}
