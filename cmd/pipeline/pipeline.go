// Package pipeline implements the full data pipeline command.
package pipeline

import (
	"github.com/spf13/cobra"

	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/pipeline"
)

// Command creates the pipeline command
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run the full pipeline: load, clean, validate, write CSV, store to SQLite",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.Run(settings); err != nil {
				return err
			}
			cmd.Println("Pipeline completed successfully")
			return nil
		},
	}
	return cmd
}
