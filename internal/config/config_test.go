package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
user = "schedule"
password = "secret"
dbname = "schedule"

[logs]
level = "debug"

[metrics]
enabled = true
service_name = "schedule-service"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)

	// Значения по умолчанию
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "0 2 * * *", cfg.Cron.RolloverSpec)
	assert.Equal(t, 60, cfg.Redis.BoardTTLSeconds)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "schedule"
password = "from-file"
dbname = "schedule"
`)

	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("DB_HOST", "db.prod.internal")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "db.prod.internal", cfg.Database.Host)
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Run("missing database user", func(t *testing.T) {
		path := writeConfig(t, `
[database]
dbname = "schedule"
`)
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("kafka enabled without broker", func(t *testing.T) {
		path := writeConfig(t, `
[database]
user = "schedule"
dbname = "schedule"

[kafka]
enabled = true
`)
		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "schedule",
		Password: "secret",
		DBName:   "schedule",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=schedule password=secret dbname=schedule sslmode=disable",
		cfg.DSN(),
	)
}
