package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cleancmd "github.com/clinflow/clinflow-go/cmd/clean"
	edacmd "github.com/clinflow/clinflow-go/cmd/eda"
	fetchcmd "github.com/clinflow/clinflow-go/cmd/fetch"
	pipelinecmd "github.com/clinflow/clinflow-go/cmd/pipeline"
	querycmd "github.com/clinflow/clinflow-go/cmd/query"
	storecmd "github.com/clinflow/clinflow-go/cmd/store"
	traincmd "github.com/clinflow/clinflow-go/cmd/train"
	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/logging"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clinflow",
		Short: "clinflow heart-disease data pipeline CLI",
		// Logging is initialized before flag parsing, so the debug flag
		// raises the level here once flags have been read.
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if settings.Debug {
				logging.SetLevel(slog.LevelDebug)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", settings.Debug, "Enable debug output")

	subcommands := []*cobra.Command{
		fetchcmd.Command(settings),
		edacmd.Command(settings),
		cleancmd.Command(settings),
		storecmd.Command(settings),
		querycmd.Command(settings),
		traincmd.Command(settings),
		pipelinecmd.Command(settings),
		configCommand(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// configCommand prints the effective configuration as YAML.
func configCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(settings)
			if err != nil {
				return fmt.Errorf("rendering configuration: %w", err)
			}
			cmd.Println(string(out))
			return nil
		},
	}
}
