package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Store driver names accepted in STORE_DRIVER.
const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Defaults exist for every value so the
// server starts with zero configuration for local development, but the
// defaulted signing secret is insecure and Load warns loudly about it.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	StoreDriver  string // "mysql" for the durable store, "memory" for the in-process one
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes; 0 disables expiry
	BcryptCost   int    // bcrypt cost for password hashing
}

// insecureDefaultSecret is the development-only signing secret. Any
// token signed with it can be forged by anyone who has read this file.
const insecureDefaultSecret = "dev_jwt_secret_change_me"

// Load reads configuration from environment variables, applying
// development defaults where unset. It never exits: a missing value is
// a warning, not a fatal error, so the in-memory development mode works
// out of the box.
func Load() Config {
	cfg := Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "3000"),
		StoreDriver:  getenv("STORE_DRIVER", StoreMemory),
		DBUser:       getenv("DB_USER", "root"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       getenv("DB_HOST", "localhost"),
		DBPort:       getenv("DB_PORT", "3306"),
		DBName:       getenv("DB_NAME", "carnet"),
		JWTSecret:    getenv("JWT_SECRET", insecureDefaultSecret),
		AccessTTLMin: getenvInt("ACCESS_TOKEN_TTL_MIN", 0),
		BcryptCost:   getenvInt("BCRYPT_COST", 10),
	}
	if cfg.JWTSecret == insecureDefaultSecret {
		log.Printf("WARNING: JWT_SECRET not set, using the insecure development default")
	}
	if cfg.AccessTTLMin <= 0 {
		log.Printf("WARNING: ACCESS_TOKEN_TTL_MIN not set, issued tokens never expire")
	}
	if cfg.StoreDriver != StoreMySQL && cfg.StoreDriver != StoreMemory {
		log.Printf("unknown STORE_DRIVER %q, falling back to %q", cfg.StoreDriver, StoreMemory)
		cfg.StoreDriver = StoreMemory
	}
	return cfg
}

// getenv returns the value of key or def when unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt is like getenv but converts the value to an int, keeping
// the default when conversion fails.
func getenvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("invalid int for %s: %q, using %d", key, s, def)
		return def
	}
	return n
}
