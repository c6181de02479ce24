package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/flightrecords/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MissingConfigReturnsError(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	err := run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRun_OpenDatabaseErrorReturnsError(t *testing.T) {
	dir := t.TempDir()
	// The parent of the database file does not exist, so opening it fails.
	cfg := "http:\n  address: \"127.0.0.1:0\"\ndatabase:\n  driver: sqlite\n  path: \"" +
		filepath.Join(dir, "absent", "flights.db") + "\"\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	t.Setenv("CONFIG_PATH", path)
	prev := logging.L()
	t.Cleanup(func() { logging.Set(prev) })

	err := run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open sqlite")
}
