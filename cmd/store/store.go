// Package store implements the SQLite storage command.
package store

import (
	"github.com/spf13/cobra"

	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/dataset"
	"github.com/clinflow/clinflow-go/internal/datastore"
)

// Command creates the store command
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Write the processed dataset to the SQLite database",
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := dataset.Load(settings.Paths.ProcessedData, settings.Dataset.MissingTokens)
			if err != nil {
				return err
			}

			ds := datastore.New(settings)
			if ds == nil {
				return datastore.ErrStoreDisabled
			}
			if err := ds.Open(); err != nil {
				return err
			}
			defer ds.Close()

			if err := ds.ReplaceAll(df); err != nil {
				return err
			}

			count, err := ds.Count()
			if err != nil {
				return err
			}
			cmd.Printf("Stored %d rows in %s\n", count, settings.Output.SQLite.Path)
			return nil
		},
	}
	return cmd
}
