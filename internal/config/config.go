package config

import "os"

// Get returns the value of an environment variable, or fallback when unset.
// Values are expected to be loaded beforehand (godotenv in the composition root).
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
