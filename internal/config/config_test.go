package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_File(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9000
  mode: debug
database:
  driver: postgres
  dsn: postgres://u:p@localhost:5432/scores?sslmode=disable
  conn_max_lifetime: 30m
import:
  max_reported_errors: 50
  pair_box_rows: false
`)
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 50, cfg.Import.MaxReportedErrors)
	assert.False(t, cfg.Import.PairBoxRows)
	// 未配置的项取默认值
	assert.Equal(t, 10000, cfg.Import.DefaultListLimit)
	assert.EqualValues(t, 10<<20, cfg.Import.MaxUploadBytes)
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 200, cfg.Import.MaxReportedErrors)
	assert.True(t, cfg.Import.PairBoxRows)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("DATABASE_DSN", "file:override.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "file:override.db", cfg.Database.DSN)
	assert.Equal(t, logrus.DebugLevel, cfg.Log.NewLogger().GetLevel())
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "database:\n  driver: mysql\n"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "import:\n  max_reported_errors: 0\n"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "server: [broken"))
	require.Error(t, err)
}

func TestGormLogLevel(t *testing.T) {
	for in, want := range map[string]logger.LogLevel{
		"silent": logger.Silent,
		"error":  logger.Error,
		"info":   logger.Info,
		"":       logger.Warn,
	} {
		d := DatabaseConfig{LogLevel: in}
		assert.Equal(t, want, d.GormLogLevel(), in)
	}
}
