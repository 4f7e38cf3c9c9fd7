package main

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/clinflow/clinflow-go/cmd"
	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/errors"
	"github.com/clinflow/clinflow-go/internal/logging"
)

func main() {
	if err := run(); err != nil {
		reportFailure(err)
		os.Exit(1)
	}
}

func run() error {
	// Load the configuration once; every component receives it explicitly.
	settings, err := conf.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logPath := ""
	if settings.Main.Log.Enabled {
		logPath = settings.Main.Log.Path
	}
	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(logPath, level)
	defer logging.Close()
	logging.Debug("logging initialized", "file", logPath)

	rootCmd := cmd.RootCommand(settings)
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// reportFailure prints the error with its category metadata when present.
func reportFailure(err error) {
	var ee *errors.EnhancedError
	if stderrors.As(err, &ee) {
		logging.Error("command failed",
			"error", err, "category", ee.GetCategory(), "context", ee.GetContext())
	} else {
		logging.Error("command failed", "error", err)
	}

	if errors.HasCategory(err, errors.CategoryConfiguration) {
		fmt.Fprintln(os.Stderr, "check config.yaml for invalid settings")
	}
}
