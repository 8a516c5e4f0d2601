// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL: either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret (required by the server).
	JWTSecret  string
	AdminUsers []string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// DataDir, when set, makes the server read the CSV dataset instead of
	// the tables stored in PostgreSQL. cmd/import reads from it too.
	DataDir string

	// MySQL f1db, used only by cmd/migrate.
	MySQLDSN string

	// Chart settings
	TopN        int
	MaxDrivers  int
	LapYearFrom int
	LapYearTo   int
	SessionTTL  time.Duration
}

// Load reads the server configuration from a .env file (if present) and
// then from environment variables. Environment variables always win.
func Load() *Config {
	cfg := fromViper(newViper())
	cfg.validate()
	return cfg
}

// LoadTool reads configuration for the cmd/ tools, which only need a
// database connection.
func LoadTool() *Config {
	cfg := fromViper(newViper())
	cfg.validateDB()
	return cfg
}

func fromViper(v *viper.Viper) *Config {
	// Defaults
	v.SetDefault("DB_USER", "f1")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "f1db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "f1globe.app,www.f1globe.app")
	v.SetDefault("ADMIN_USERS", "admin")
	v.SetDefault("DEBUG", false)
	v.SetDefault("TOP_N", 10)
	v.SetDefault("MAX_DRIVERS", 10)
	v.SetDefault("LAP_YEAR_FROM", 2000)
	v.SetDefault("LAP_YEAR_TO", 2024)
	v.SetDefault("SESSION_TTL", "12h")

	return &Config{
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		AdminUsers:  splitTrimmed(v.GetString("ADMIN_USERS")),
		Debug:       v.GetBool("DEBUG"),
		Port:        v.GetString("PORT"),
		TLSDomains:  splitTrimmed(v.GetString("TLS_DOMAINS")),
		DataDir:     v.GetString("DATA_DIR"),
		MySQLDSN:    v.GetString("MYSQL_DSN"),
		TopN:        v.GetInt("TOP_N"),
		MaxDrivers:  v.GetInt("MAX_DRIVERS"),
		LapYearFrom: v.GetInt("LAP_YEAR_FROM"),
		LapYearTo:   v.GetInt("LAP_YEAR_TO"),
		SessionTTL:  v.GetDuration("SESSION_TTL"),
	}
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func (c *Config) validate() {
	c.validateDB()
	if c.JWTSecret == "" {
		log.Fatal("config: JWT_SECRET must be set")
	}
	if c.LapYearFrom > c.LapYearTo && c.LapYearTo != 0 {
		log.Fatal("config: LAP_YEAR_FROM must not be after LAP_YEAR_TO")
	}
}

func (c *Config) validateDB() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
}

func newViper() *viper.Viper {
	// Silently load .env; OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
