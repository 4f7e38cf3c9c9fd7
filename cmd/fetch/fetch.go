// Package fetch implements the dataset download command.
package fetch

import (
	"github.com/spf13/cobra"

	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/dataset"
)

// Command creates the fetch command
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the raw heart-disease dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dataset.Fetch(cmd.Context(), settings.Dataset.SourceURL, settings.Paths.RawData)
			if err != nil {
				return err
			}
			cmd.Printf("Dataset available at %s\n", path)
			return nil
		},
	}
	return cmd
}
