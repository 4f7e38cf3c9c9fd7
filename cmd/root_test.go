package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/datastore"
	"github.com/clinflow/clinflow-go/internal/logging"
)

func executeRoot(t *testing.T, settings *conf.Settings, args ...string) {
	t.Helper()
	root := RootCommand(settings)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	require.NoError(t, root.Execute())
}

func TestDebugFlagRaisesLogLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")
	logging.Init(logPath, slog.LevelInfo)
	t.Cleanup(func() {
		assert.NoError(t, logging.Close())
	})

	executeRoot(t, &conf.Settings{}, "config", "--debug")

	logging.ForService("cmd").Debug("debug record after flag parse")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug record after flag parse",
		"The debug flag must raise the log level once flags are parsed")
}

func TestWithoutDebugFlagLevelStaysInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")
	logging.Init(logPath, slog.LevelInfo)
	t.Cleanup(func() {
		assert.NoError(t, logging.Close())
	})

	executeRoot(t, &conf.Settings{}, "config")

	logging.ForService("cmd").Debug("suppressed debug record")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suppressed debug record")
}

func TestQueryFailsWhenStoreDisabled(t *testing.T) {
	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = false

	root := RootCommand(settings)
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"query"})

	err := root.Execute()
	require.ErrorIs(t, err, datastore.ErrStoreDisabled)
}
