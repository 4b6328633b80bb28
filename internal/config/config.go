package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseDriver    string
	DatabaseURL       string
	RedisURL          string
	JWTSecret         string
	SessionTTL        time.Duration
	SessionCookieName string
	BcryptCost        int
	SeedAdminUsername string
	SeedAdminPassword string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CUSTODIA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Custodia API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "custodia.db")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cookie", "custodia_session")
	v.SetDefault("bcrypt.cost", 10)
	v.SetDefault("seed.admin_username", "admin")

	ttlString := v.GetString("session.ttl")
	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseDriver:    strings.ToLower(v.GetString("database.driver")),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		JWTSecret:         v.GetString("jwt.secret"),
		SessionTTL:        ttl,
		SessionCookieName: v.GetString("session.cookie"),
		BcryptCost:        v.GetInt("bcrypt.cost"),
		SeedAdminUsername: v.GetString("seed.admin_username"),
		SeedAdminPassword: v.GetString("seed.admin_password"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" {
		return Config{}, fmt.Errorf("unsupported database driver: %s", cfg.DatabaseDriver)
	}

	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = 10
	}

	return cfg, nil
}
