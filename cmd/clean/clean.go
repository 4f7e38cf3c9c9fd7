// Package clean implements the data cleaning and validation command.
package clean

import (
	"github.com/spf13/cobra"

	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/dataprep"
	"github.com/clinflow/clinflow-go/internal/dataset"
)

// Command creates the clean command
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean and validate the raw dataset, writing the processed CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := dataset.Load(settings.Paths.RawData, settings.Dataset.MissingTokens)
			if err != nil {
				return err
			}

			cleaned, report, err := dataprep.Clean(raw, settings)
			if err != nil {
				return err
			}

			if err := dataprep.Validate(cleaned, settings); err != nil {
				return err
			}

			if err := dataset.Write(cleaned, settings.Paths.ProcessedData); err != nil {
				return err
			}

			cmd.Printf("Cleaned %d rows down to %d, written to %s\n",
				report.RowsBefore, report.RowsAfter, settings.Paths.ProcessedData)
			return nil
		},
	}
	return cmd
}
