package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	Init(path, slog.LevelInfo)
	t.Cleanup(func() {
		assert.NoError(t, Close())
	})
	return path
}

func TestForServiceWritesToLogFile(t *testing.T) {
	path := initTestLog(t)

	ForService("dataset").Info("dataset loaded", "rows", 303)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"service":"dataset"`)
	assert.Contains(t, string(data), "dataset loaded")
}

func TestSetLevelRaisesVerbosity(t *testing.T) {
	path := initTestLog(t)

	ForService("dataprep").Debug("suppressed record")
	SetLevel(slog.LevelDebug)
	ForService("dataprep").Debug("visible record")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suppressed record",
		"Debug records must be dropped while the level is info")
	assert.Contains(t, string(data), "visible record",
		"SetLevel must take effect on loggers created by Init")
}

func TestInitWithoutFileKeepsStderrLogger(t *testing.T) {
	Init("", slog.LevelInfo)

	require.NotNil(t, HumanReadable())
	logger := ForService("pipeline")
	require.NotNil(t, logger)

	// The package helpers must be safe regardless of file logging.
	Info("info record")
	Warn("warn record")
	Error("error record")
	Debug("debug record")
}

func TestCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	Init(path, slog.LevelInfo)
	ForService("conf").Info("one record")

	require.NoError(t, Close())
	require.NoError(t, Close())
}
