// Package config reads runtime settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt parses an integer variable. Unset or malformed values yield
// fallback; malformed ones are logged.
func GetEnvInt(key string, fallback int) int {
	return lookup(key, fallback, strconv.Atoi)
}

// GetEnvInt64 is GetEnvInt for 64-bit values.
func GetEnvInt64(key string, fallback int64) int64 {
	return lookup(key, fallback, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// GetEnvBool parses a boolean variable (1, t, true, 0, f, false, ...).
func GetEnvBool(key string, fallback bool) bool {
	return lookup(key, fallback, strconv.ParseBool)
}

// GetEnvDuration parses a duration variable such as "90s" or "2m".
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	return lookup(key, fallback, time.ParseDuration)
}

func lookup[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		log.Warn("ignoring malformed environment variable", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}
