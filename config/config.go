package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           string
	Mode           string   // gin mode: "debug", "release" or "test"
	AllowedOrigins []string // CORS origins for the JSON API
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	URI string // postgres DSN/URL or sqlite:///path
}

// AuthConfig contains session settings.
type AuthConfig struct {
	SecretKey    string // signs session and flash cookies
	SessionTTL   time.Duration
	CookieSecure bool
}

// Load loads configuration from environment variables.
// DB_URI and SECRET_KEY have no defaults.
func Load() (*Config, error) {
	ttl, err := getEnvDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	secure, err := getEnvBool("COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8083"),
			Mode:           getEnv("GIN_MODE", "debug"),
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Database: DatabaseConfig{
			URI: getEnv("DB_URI", ""),
		},
		Auth: AuthConfig{
			SecretKey:    getEnv("SECRET_KEY", ""),
			SessionTTL:   ttl,
			CookieSecure: secure,
		},
	}

	if cfg.Database.URI == "" {
		return nil, fmt.Errorf("DB_URI environment variable is not set")
	}
	if cfg.Auth.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY environment variable is not set")
	}

	return cfg, nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.Server.Mode == "release"
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, Mode: %s, Origins: %v, DB: %s, Auth: *** (masked) ***}",
		c.Server.Port, c.Server.Mode, c.Server.AllowedOrigins, maskURI(c.Database.URI))
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		return d, nil
	}
	return defaultVal, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
		}
		return b, nil
	}
	return defaultVal, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// maskURI hides the password of a URL-style DSN.
func maskURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return uri
	}
	creds := rest[:at]
	if user, _, hasPass := strings.Cut(creds, ":"); hasPass {
		creds = user + ":***"
	}
	return scheme + "://" + creds + rest[at:]
}
