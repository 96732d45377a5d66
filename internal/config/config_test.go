package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/warren-xu/exercise-form-analyzer/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
[development]
environment = "development"
host = "localhost"
port = 8080
log_level = "trace"
store_backend = "document"
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "formanalyzer"

[production]
environment = "production"
host = ""
port = 9000
log_level = "debug"
store_backend = "warehouse"
`)

	cfg, err := config.Load("development", path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.Equal(t, config.StoreBackendDocument, cfg.StoreBackend)
	assert.Equal(t, "formanalyzer", cfg.PostgresDBName)

	// short env aliases work too
	cfg, err = config.Load("prod", path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, config.StoreBackendWarehouse, cfg.StoreBackend)
}

func TestLoad_StoreBackendDefault(t *testing.T) {
	path := writeConfigFile(t, `
[development]
port = 8080
`)

	cfg, err := config.Load("dev", path)
	require.NoError(t, err)
	assert.Equal(t, config.StoreBackendDocument, cfg.StoreBackend)
}

func TestLoad_UnknownStoreBackend(t *testing.T) {
	path := writeConfigFile(t, `
[development]
store_backend = "mainframe"
`)

	cfg, err := config.Load("dev", path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}

func TestLoad_UnknownEnv(t *testing.T) {
	path := writeConfigFile(t, `
[development]
port = 8080
`)

	_, err := config.Load("staging", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown env")
}

func TestLoad_MissingEnvSection(t *testing.T) {
	path := writeConfigFile(t, `
[development]
port = 8080
`)

	_, err := config.Load("production", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load("dev", filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
