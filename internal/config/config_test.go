package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := NewServerConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.App.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 5, cfg.Suggest.Limit)
	assert.Equal(t, 1000000.0, cfg.Suggest.BroadMaxPrice)
	assert.Equal(t, "us", cfg.Scraper.Region)
}

func TestFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  addr: ":8080"
session:
  backend: pebble
  dir: /tmp/buildit
suggest:
  limit: 8
`), 0o600))
	t.Setenv("SESSION_BACKEND", "badger")
	t.Setenv("SCRAPER_REGION", "uk")

	feeders, err := Feeders(path)
	require.NoError(t, err)
	cfg, err := NewServerConfig(feeders)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.Addr)
	assert.Equal(t, "badger", cfg.Session.Backend)
	assert.Equal(t, "/tmp/buildit", cfg.Session.Dir)
	assert.Equal(t, 8, cfg.Suggest.Limit)
	assert.Equal(t, "uk", cfg.Scraper.Region)
	assert.Equal(t, "BuildIT PC", cfg.App.Name)
}

func TestFeedersRejectsUnknownExtension(t *testing.T) {
	_, err := Feeders("config.toml")
	assert.Error(t, err)

	feeders, err := Feeders("")
	require.NoError(t, err)
	assert.Len(t, feeders, 1)
}
