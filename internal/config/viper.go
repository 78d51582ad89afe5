// Package config provides helpers over the process-wide viper configuration.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// GetFirst returns the first non-empty value among keys.
func GetFirst(keys ...string) string {
	for _, key := range keys {
		if v := GetString(key); v != "" {
			return v
		}
	}
	return ""
}

// GetDuration reads a duration, falling back when unset or invalid.
func GetDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(GetString(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Lookup adapts GetString to the os.LookupEnv signature. A key is present
// only when it has a non-empty value.
func Lookup(key string) (string, bool) {
	v := GetString(key)
	return v, v != ""
}
