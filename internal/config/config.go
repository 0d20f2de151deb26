package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigins   []string
	MigrationsDir string
	LogFile       string
}

const (
	keyPort          = "port"
	keyDBPath        = "db_path"
	keyJWTSecret     = "jwt_secret"
	keyTokenTTLHours = "token_ttl_hours"
	keyCORSOrigins   = "cors_origins"
	keyMigrationsDir = "migrations_dir"
	keyLogFile       = "log_file"
)

// Load reads configuration from the environment with sane defaults.
// Keys map to upper-cased env vars (PORT, DB_PATH, JWT_SECRET, ...).
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(keyPort, "8080")
	v.SetDefault(keyDBPath, "./data/jeda.db")
	v.SetDefault(keyJWTSecret, "change-this-secret")
	v.SetDefault(keyTokenTTLHours, 72)
	v.SetDefault(keyCORSOrigins, "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault(keyMigrationsDir, "./migrations")
	v.SetDefault(keyLogFile, "")

	return Config{
		Port:          v.GetString(keyPort),
		DBPath:        v.GetString(keyDBPath),
		JWTSecret:     v.GetString(keyJWTSecret),
		TokenTTL:      time.Duration(v.GetInt(keyTokenTTLHours)) * time.Hour,
		CORSOrigins:   splitList(v.GetString(keyCORSOrigins)),
		MigrationsDir: v.GetString(keyMigrationsDir),
		LogFile:       v.GetString(keyLogFile),
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
