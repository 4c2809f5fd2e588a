// Package config provides viper-backed configuration lookups with
// environment-first precedence: a CROSSCHECK_* environment variable
// always wins over a config-file value.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/rinkstats/crosscheck/pkg/errors"
)

// Configuration keys.
const (
	// KeyPrecedence is the comma-separated source precedence order.
	KeyPrecedence = "precedence"

	// KeyClockTolerance is the matcher clock window in seconds.
	KeyClockTolerance = "clock_tolerance"

	// KeyMinorThreshold is the largest delta still classified minor.
	KeyMinorThreshold = "minor_threshold"

	// KeySeasonWorkers bounds concurrent game reconciliations.
	KeySeasonWorkers = "season_workers"

	// KeyOutput is the output format (table, json, yaml, wide).
	KeyOutput = "output"

	// KeyGeminiAPIKey is the API key for the optional report annotator.
	KeyGeminiAPIKey = "CROSSCHECK_GEMINI_API_KEY"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value.
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// GetInt returns an integer value with the given default when unset.
func GetInt(key string, fallback int) int {
	if !viper.IsSet(key) {
		return fallback
	}
	return viper.GetInt(key)
}

// GeminiAPIKey retrieves the API key for the report annotator, checking
// the environment variable first, then configuration. Returns
// ErrAPIKeyRequired when nothing is set.
func GeminiAPIKey() (string, error) {
	key := strings.TrimSpace(GetString(KeyGeminiAPIKey))
	if key == "" {
		key = strings.TrimSpace(viper.GetString("gemini_api_key"))
	}
	if key == "" {
		return "", errors.ErrAPIKeyRequired
	}
	return key, nil
}

// HasGeminiAPIKey reports whether an annotator key is configured,
// without validating it.
func HasGeminiAPIKey() bool {
	_, err := GeminiAPIKey()
	return err == nil
}
