package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"listen_addr: \":9090\"\nsec_user_agent: \"Test/1.0 (test@example.com)\"\nhttp_timeout_seconds: 10\n"), 0644))

	t.Setenv("LISTEN_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr, "env beats file")
	assert.Equal(t, "Test/1.0 (test@example.com)", cfg.SECUserAgent)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
