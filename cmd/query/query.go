// Package query implements the preset query command.
package query

import (
	"github.com/spf13/cobra"

	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/datastore"
	"github.com/clinflow/clinflow-go/internal/query"
)

// Command creates the query command
func Command(settings *conf.Settings) *cobra.Command {
	var preset string
	var listPresets bool

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a preset query against the patients table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listPresets {
				for _, name := range query.PresetNames() {
					spec, _ := query.Preset(name)
					whereClause, params := query.BuildWhereClause(spec)
					cmd.Printf("%s:\n  %s %v\n", name, whereClause, params)
				}
				return nil
			}

			ds := datastore.New(settings)
			if ds == nil {
				return datastore.ErrStoreDisabled
			}
			if err := ds.Open(); err != nil {
				return err
			}
			defer ds.Close()

			results, err := ds.QueryPreset(preset)
			if err != nil {
				return err
			}
			if results.Nrow() == 0 {
				cmd.Println("No rows matched")
				return nil
			}
			cmd.Println(results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&preset, "preset", "p", "high_risk_seniors", "Preset name, or \"all\" for every row")
	cmd.Flags().BoolVar(&listPresets, "list-presets", false, "List the available presets and exit")
	return cmd
}
