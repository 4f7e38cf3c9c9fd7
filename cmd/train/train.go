// Package train implements the model training command.
package train

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"

	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/dataset"
	"github.com/clinflow/clinflow-go/internal/datastore"
	"github.com/clinflow/clinflow-go/internal/trainer"
)

// Command creates the train command
func Command(settings *conf.Settings) *cobra.Command {
	var csvPath string
	var fromDB bool
	var preset string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the heart-disease risk model and write the artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromDB == (csvPath != "") {
				return fmt.Errorf("exactly one of --csv or --from-db must be given")
			}

			df, err := loadTrainingData(settings, csvPath, fromDB, preset)
			if err != nil {
				return err
			}

			result, err := trainer.Train(df, settings)
			if err != nil {
				return err
			}

			eval := trainer.Evaluate(result.YTest, result.YPred)
			metricsPath, err := eval.WriteJSON(settings.Paths.Metrics)
			if err != nil {
				return err
			}

			if outputPath == "" {
				outputPath = settings.Paths.Model
			}
			modelPath, err := trainer.SaveModel(result, outputPath)
			if err != nil {
				return err
			}

			cmd.Printf("Accuracy score: %.4f\n", result.Accuracy)
			cmd.Printf("AUC score: %.4f\n", result.ROCAUC)
			cmd.Printf("Model saved to %s, metrics saved to %s\n", modelPath, metricsPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to the processed CSV file")
	cmd.Flags().BoolVar(&fromDB, "from-db", false, "Load training data from the SQLite database")
	cmd.Flags().StringVarP(&preset, "query", "q", "all", "Preset used with --from-db")
	cmd.Flags().StringVarP(&outputPath, "output-path", "o", "", "Model artifact path (defaults to the configured model path)")
	return cmd
}

// loadTrainingData reads the training table from either the processed CSV or
// the database, optionally filtered by a preset.
func loadTrainingData(settings *conf.Settings, csvPath string, fromDB bool, preset string) (dataframe.DataFrame, error) {
	if !fromDB {
		return dataset.Load(csvPath, settings.Dataset.MissingTokens)
	}

	ds := datastore.New(settings)
	if ds == nil {
		return dataframe.DataFrame{}, datastore.ErrStoreDisabled
	}
	if err := ds.Open(); err != nil {
		return dataframe.DataFrame{}, err
	}
	defer ds.Close()

	return ds.QueryPreset(preset)
}
