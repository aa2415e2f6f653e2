package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docbolt.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
listen_addr = ":9090"

[storage]
data_dir = "/var/lib/docbolt"
database = "appdata"
compression = true
compact_interval = "5m"
on_record_error = "abort"

[log]
level = "debug"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, "/var/lib/docbolt", cfg.Storage.DataDir)
	assert.Equal(t, "appdata", cfg.Storage.Database)
	assert.True(t, cfg.Storage.Compression)
	assert.Equal(t, 5*time.Minute, time.Duration(cfg.Storage.CompactInterval))
	assert.Equal(t, "abort", cfg.Storage.OnRecordError)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docbolt.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
database = "appdata"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, "appdata", cfg.Storage.Database)
	assert.Equal(t, "continue", cfg.Storage.OnRecordError)
}

func TestLoad_RejectsBadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docbolt.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
on_record_error = "explode"
`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Storage.InMemory = true
	cfg.Storage.CompactInterval = Duration(time.Minute)
	cfg.Storage.OnRecordError = "abort"

	assert.Len(t, cfg.EngineOptions(), 6)
}
