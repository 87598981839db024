package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/videoquery-mcp/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestSetup_File(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "nested", "videoquery.log")
	cleanup, err := Setup(Config{Level: "debug", FilePath: path, MaxSizeMB: 1})
	require.NoError(t, err)

	slog.Debug("query sent", slog.Int("status", 200))
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "query sent")
	assert.Contains(t, string(data), "status=200")
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{LogLevel: "warn", LogFile: "/tmp/x.log", LogMaxSizeMB: 7, LogMaxBackups: 2, LogMaxAgeDays: 3, LogCompress: true}
	assert.Equal(t, Config{Level: "warn", FilePath: "/tmp/x.log", MaxSizeMB: 7, MaxBackups: 2, MaxAgeDays: 3, Compress: true}, FromConfig(cfg))
}
