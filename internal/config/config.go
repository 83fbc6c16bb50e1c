package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	AppName        string        `mapstructure:"APP_NAME"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	SQLitePath     string        `mapstructure:"SQLITE_PATH"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	DBLogLevel     string        `mapstructure:"DB_LOG_LEVEL"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	SessionFile    string        `mapstructure:"SESSION_FILE"`
	HTTPPort       int           `mapstructure:"HTTP_PORT"`
	MigrationsAuto bool          `mapstructure:"MIGRATIONS_AUTO"`
}

var keys = []string{
	"APP_NAME", "DATABASE_URL", "SQLITE_PATH", "LOG_LEVEL", "DB_LOG_LEVEL",
	"JWT_SECRET", "SESSION_TTL", "SESSION_FILE", "HTTP_PORT", "MIGRATIONS_AUTO",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "rentledger")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "rentledger.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_FILE", defaultSessionFile())
	v.SetDefault("HTTP_PORT", 3000)
	v.SetDefault("MIGRATIONS_AUTO", false)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rentledger-session"
	}
	return filepath.Join(home, ".rentledger", "session")
}

// Load reads configuration from the environment, falling back to an optional
// .env file in the working directory and then to defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", k, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that have no sensible default.
func (c *Config) Validate() error {
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	return nil
}

// RequireJWTSecret is checked by the commands that issue or verify tokens.
func (c *Config) RequireJWTSecret() ([]byte, error) {
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set in environment or .env file")
	}
	return []byte(c.JWTSecret), nil
}

// UsesPostgres reports whether DATABASE_URL selects the postgres driver.
func (c *Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}
