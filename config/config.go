package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config func to get env value from key
func Config(key string) string {
	// load .env file
	godotenv.Load(".env")
	return os.Getenv(key)
}

// ConfigInt reads an integer env value, falling back to def when the key
// is unset or not a number.
func ConfigInt(key string, def int) int {
	value, err := strconv.Atoi(Config(key))
	if err != nil {
		return def
	}
	return value
}

// ConfigBool reads a boolean env value, falling back to def when the key
// is unset or malformed.
func ConfigBool(key string, def bool) bool {
	value, err := strconv.ParseBool(Config(key))
	if err != nil {
		return def
	}
	return value
}
