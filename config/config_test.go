package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, []string{"f1globe.app", "www.f1globe.app"}, cfg.TLSDomains)
	assert.Equal(t, []string{"admin"}, cfg.AdminUsers)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, 10, cfg.MaxDrivers)
	assert.Equal(t, 2000, cfg.LapYearFrom)
	assert.Equal(t, 2024, cfg.LapYearTo)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.Debug)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	v.Set("TOP_N", 5)
	v.Set("ADMIN_USERS", " alice, ,bob ")
	v.Set("DATA_DIR", "/data/f1")
	v.Set("SESSION_TTL", "30m")

	cfg := fromViper(v)

	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, []string{"alice", "bob"}, cfg.AdminUsers)
	assert.Equal(t, "/data/f1", cfg.DataDir)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "f1", DBPass: "pw", DBHost: "db", DBPort: "5432", DBName: "f1db", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://f1:pw@db:5432/f1db?sslmode=disable", cfg.PostgresDSN())

	cfg.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", cfg.PostgresDSN())
}
