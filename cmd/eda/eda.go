// Package eda implements the exploratory data summary command.
package eda

import (
	"github.com/spf13/cobra"

	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/dataset"
)

// Command creates the eda command
func Command(settings *conf.Settings) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "eda",
		Short: "Print exploratory metrics for the dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = settings.Paths.RawData
			}
			df, err := dataset.Load(path, settings.Dataset.MissingTokens)
			if err != nil {
				return err
			}
			dataset.Summary(df, settings.Cleaning.TargetColumn, settings.Dataset.MissingTokens)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Path to the dataset CSV file (defaults to the configured raw data path)")
	return cmd
}
