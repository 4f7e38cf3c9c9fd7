// Package pipeline orchestrates the full data run: load, clean, validate,
// write CSV, store to SQLite.
package pipeline

import (
	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/dataprep"
	"github.com/clinflow/clinflow-go/internal/dataset"
	"github.com/clinflow/clinflow-go/internal/datastore"
	"github.com/clinflow/clinflow-go/internal/errors"
	"github.com/clinflow/clinflow-go/internal/logging"
)

// Run executes the data pipeline end to end. Any failure aborts the run and
// propagates to the caller; partial artifacts from a failed run are not
// rolled back.
func Run(settings *conf.Settings) error {
	log := logging.ForService("pipeline")

	raw, err := dataset.Load(settings.Paths.RawData, settings.Dataset.MissingTokens)
	if err != nil {
		return err
	}
	log.Info("raw data loaded")

	cleaned, report, err := dataprep.Clean(raw, settings)
	if err != nil {
		return err
	}
	log.Info("data cleaned", "rows_before", report.RowsBefore, "rows_after", report.RowsAfter)

	if err := dataprep.Validate(cleaned, settings); err != nil {
		return err
	}
	log.Info("clean data validated")

	if err := dataset.Write(cleaned, settings.Paths.ProcessedData); err != nil {
		return err
	}
	log.Info("clean data written to csv", "path", settings.Paths.ProcessedData)

	store := datastore.New(settings)
	if store == nil {
		log.Info("no database output enabled, skipping store step")
		return nil
	}
	if err := store.Open(); err != nil {
		return errors.New(err).
			Component("pipeline").
			Category(errors.CategoryDatabase).
			Build()
	}
	defer store.Close()

	if err := store.ReplaceAll(cleaned); err != nil {
		return err
	}
	log.Info("clean data stored", "path", settings.Output.SQLite.Path)

	return nil
}
