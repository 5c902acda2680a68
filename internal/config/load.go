package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings is the resolved ambient configuration. None of it changes what
// the calculator computes or prints.
type Settings struct {
	Verbose     bool
	LogLevel    string
	LogFile     string
	MetricsFile string
	Color       string
}

// flagKeys maps viper keys to the command line flags that override them.
var flagKeys = map[string]string{
	"verbose":      "verbose",
	"log_level":    "log-level",
	"log_file":     "log-file",
	"metrics_file": "metrics-file",
	"color":        "color",
}

// SetDefaults registers the default for every key.
func SetDefaults() {
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_file", "")
	viper.SetDefault("metrics_file", "")
	viper.SetDefault("color", "auto")
}

// Load initializes the configuration from the config file, .env, the
// environment and flags, then validates it. A missing default config file
// is not an error; a missing explicit one is.
func Load(cfgFile string, flags *pflag.FlagSet) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("calc")
	}

	viper.SetEnvPrefix("CALC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := viper.BindPFlag(key, f); err != nil {
					return fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return ValidateConfig()
}

// ConfigFileUsed returns the path of the config file that was read, if any.
func ConfigFileUsed() string {
	if _, err := os.Stat(viper.ConfigFileUsed()); err != nil {
		return ""
	}
	return viper.ConfigFileUsed()
}

// Current returns the settings as currently resolved by viper.
func Current() Settings {
	return Settings{
		Verbose:     viper.GetBool("verbose"),
		LogLevel:    strings.ToLower(viper.GetString("log_level")),
		LogFile:     viper.GetString("log_file"),
		MetricsFile: viper.GetString("metrics_file"),
		Color:       strings.ToLower(viper.GetString("color")),
	}
}
