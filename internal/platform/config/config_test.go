package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DB_DSN", "LOG_LEVEL", "LOG_FORMAT", "APP_NAME", "LINEAGE_PREFIX", "SCORING_CONFIG"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DefaultAppName, cfg.AppName)
	assert.Equal(t, DefaultLineagePrefix, cfg.LineagePrefix)
	assert.Empty(t, cfg.DBDSN)
}

func TestLoad_EnvFileDoesNotOverrideProcessEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nLINEAGE_PREFIX=KNL\n"), 0o600))

	// godotenv.Load no pisa variables ya presentes en el proceso.
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
}

func TestLoad_RejectsBadPrefix(t *testing.T) {
	clearEnv(t)
	t.Setenv("LINEAGE_PREFIX", "A-B")
	_, err := Load("")
	require.Error(t, err)
}
