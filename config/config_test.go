package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DBNAME", "fieldsales_test")
	t.Setenv("JWT_SECRET", "unit-test-secret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "fieldsales_test", cfg.Mongo.DBName)
	assert.Equal(t, "unit-test-secret", cfg.JWT.Secret)

	// Defaults apply where nothing is set.
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 86400, cfg.JWT.ExpirationSeconds)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  port: \"9090\"\nmongo:\n  dbName: fromfile\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "fromfile", cfg.Mongo.DBName)
}
