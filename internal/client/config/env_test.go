package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysPrefixedVariables(t *testing.T) {
	cfg := defaults()
	err := parseEnv(cfg, map[string]string{
		"TCGX_SERVER_URL":          "http://env.example",
		"TCGX_SYNC_DELAY":          "250ms",
		"TCGX_REQUESTS_PER_SECOND": "0.5",
		"SERVER_URL":               "http://unprefixed.example",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://env.example", cfg.ServerURL)
	assert.Equal(t, 250*time.Millisecond, cfg.SyncDelay)
	assert.Equal(t, 0.5, cfg.RequestsPerSecond)
	assert.Equal(t, ".tcgexchange", cfg.DataDir, "unset variables keep previous values")
}

func TestParseEnv_BadDuration(t *testing.T) {
	cfg := defaults()
	err := parseEnv(cfg, map[string]string{"TCGX_REQUEST_TIMEOUT": "soon"})
	require.Error(t, err)
}

func TestParseEnv_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(".env", []byte("TCGX_CATALOG_PATH=from-dotenv.json\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TCGX_CATALOG_PATH") })

	cfg := defaults()
	require.NoError(t, parseEnv(cfg, nil))
	assert.Equal(t, "from-dotenv.json", cfg.CatalogPath)
}
