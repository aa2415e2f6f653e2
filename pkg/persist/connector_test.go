package persist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnector_EnsureStore_CreatesStoreWithOneUpgrade(t *testing.T) {
	conn := NewConnector(t.TempDir(), zerolog.Nop())
	defer conn.Close()

	version, err := conn.SchemaVersion("appdata")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), version)

	db, err := conn.EnsureStore("appdata", "users")
	require.NoError(t, err)
	require.NotNil(t, db)

	version, err = conn.SchemaVersion("appdata")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version, "exactly one upgrade per missing store")
}

func TestConnector_EnsureStore_Idempotent(t *testing.T) {
	conn := NewConnector(t.TempDir(), zerolog.Nop())
	defer conn.Close()

	db1, err := conn.EnsureStore("appdata", "users")
	require.NoError(t, err)
	db2, err := conn.EnsureStore("appdata", "users")
	require.NoError(t, err)

	// Same lazily-opened handle, no further version bump.
	assert.Same(t, db1, db2)
	version, err := conn.SchemaVersion("appdata")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
}

func TestConnector_EnsureStore_VersionPerStore(t *testing.T) {
	conn := NewConnector(t.TempDir(), zerolog.Nop())
	defer conn.Close()

	_, err := conn.EnsureStore("appdata", "users")
	require.NoError(t, err)
	_, err = conn.EnsureStore("appdata", "orders")
	require.NoError(t, err)

	version, err := conn.SchemaVersion("appdata")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)
}

func TestConnector_EnsureStore_OpenFailure(t *testing.T) {
	// A regular file where the data directory should be makes the
	// database unopenable.
	tmp := t.TempDir()
	blocked := filepath.Join(tmp, "not-a-dir")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))

	conn := NewConnector(blocked, zerolog.Nop())
	defer conn.Close()

	_, err := conn.EnsureStore("appdata", "users")
	require.Error(t, err)

	var connErr *ConnectionError
	assert.True(t, errors.As(err, &connErr))
	assert.Equal(t, "appdata", connErr.Database)
	assert.Equal(t, "users", connErr.Store)
}

func TestTxnRunner_BeginReadAndWrite(t *testing.T) {
	conn := NewConnector(t.TempDir(), zerolog.Nop())
	defer conn.Close()

	runner := NewTxnRunner(conn, "appdata", "users")

	write, err := runner.Begin(true)
	require.NoError(t, err)
	require.NotNil(t, write.Bucket())
	require.NoError(t, write.Bucket().Put([]byte("a"), []byte("v")))
	require.NoError(t, write.Commit())

	read, err := runner.Begin(false)
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), read.Bucket().Get([]byte("a")))
	read.Rollback()
}

func TestTxnRunner_PropagatesConnectionError(t *testing.T) {
	tmp := t.TempDir()
	blocked := filepath.Join(tmp, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))

	runner := NewTxnRunner(NewConnector(blocked, zerolog.Nop()), "appdata", "users")

	_, err := runner.Begin(true)
	var connErr *ConnectionError
	require.True(t, errors.As(err, &connErr))
}
