package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error"}
	validColors    = []string{"auto", "always", "never"}
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if viper.IsSet("log_level") {
		level := strings.ToLower(viper.GetString("log_level"))
		if !slices.Contains(validLogLevels, level) {
			errors = append(errors, fmt.Sprintf("log_level must be one of %s, got: %q", strings.Join(validLogLevels, ", "), level))
		}
	}

	if viper.IsSet("color") {
		color := strings.ToLower(viper.GetString("color"))
		if !slices.Contains(validColors, color) {
			errors = append(errors, fmt.Sprintf("color must be one of %s, got: %q", strings.Join(validColors, ", "), color))
		}
	}

	if path := viper.GetString("metrics_file"); path != "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			errors = append(errors, fmt.Sprintf("metrics_file must be a file path, got directory: %s", path))
		}
	}

	if path := viper.GetString("log_file"); path != "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			errors = append(errors, fmt.Sprintf("log_file must be a file path, got directory: %s", path))
		}
	}

	// If there are any errors, return them
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
