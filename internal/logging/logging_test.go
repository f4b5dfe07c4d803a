// ABOUTME: Tests for the zap logger setup.
// ABOUTME: Checks the rotating file, console copy, and level parsing.
package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/minds/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "minds.log")

	log, err := New(Options{Path: path, Level: "info", MaxSizeMB: 1})
	require.NoError(t, err)
	log.Infow("entry committed", "category", "wefe")
	log.Debugw("hidden at info level")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"entry committed"`)
	assert.Contains(t, string(data), `"category":"wefe"`)
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestNewConsoleCopy(t *testing.T) {
	var buf bytes.Buffer

	log, err := New(Options{Level: "warn", Console: &buf})
	require.NoError(t, err)
	log.Infow("row deleted", "table", "cspr_table")
	_ = log.Sync()

	assert.Contains(t, buf.String(), "row deleted")
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWithoutSinks(t *testing.T) {
	log, err := New(Options{Level: "info"})
	require.NoError(t, err)
	assert.NotNil(t, log)
	log.Infow("discarded")
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = "/tmp/minds-log-test"

	opts := FromConfig(cfg)
	assert.Equal(t, "/tmp/minds-log-test/minds.log", opts.Path)
	assert.Equal(t, "info", opts.Level)
	assert.Equal(t, 3, opts.MaxBackups)
}
