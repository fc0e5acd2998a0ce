package config

import (
	"encoding/base64"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 3, cfg.Reporting.TopCategories)
	assert.Equal(t, 12, cfg.Reporting.MonthsBack)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowOrigins)
	assert.False(t, cfg.Auth.Enabled)
	assert.Nil(t, cfg.Auth.PublicKey)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/ledger.db")
	t.Setenv("REPORT_MONTHS_BACK", "6")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/ledger.db", cfg.Database.DSN())
	assert.Equal(t, 6, cfg.Reporting.MonthsBack)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "not-a-bool")
	t.Setenv("REPORT_TOP_CATEGORIES", "three")
	t.Setenv("AUTH_PUBLIC_KEY", "")

	_, err := Load()
	require.Error(t, err, "auth falls back to enabled and needs a key")

	t.Setenv("AUTH_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Reporting.TopCategories)
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestLoad_AuthPublicKey(t *testing.T) {
	_, publicKey, err := GenerateRSAKeyPair()
	require.NoError(t, err)

	pemBytes, err := EncodeRSAPublicKey(publicKey)
	require.NoError(t, err)

	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("AUTH_PUBLIC_KEY", base64.StdEncoding.EncodeToString(pemBytes))

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Auth.PublicKey)
	assert.Equal(t, 0, publicKey.N.Cmp(cfg.Auth.PublicKey.N))
}

func TestLoad_AuthPublicKeyInvalid(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("AUTH_PUBLIC_KEY", "%%%")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode AUTH_PUBLIC_KEY")

	t.Setenv("AUTH_PUBLIC_KEY", base64.StdEncoding.EncodeToString([]byte("not pem")))
	_, err = Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN_Postgres(t *testing.T) {
	cfg := DatabaseConfig{
		Driver:   DriverPostgres,
		Host:     "db",
		Port:     "5432",
		User:     "u",
		Password: "p",
		Name:     "finance",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=finance sslmode=disable", cfg.DSN())
}

func TestLoggingConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&LoggingConfig{Level: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&LoggingConfig{Level: "warning"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&LoggingConfig{Level: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&LoggingConfig{Level: ""}).SlogLevel())
}
