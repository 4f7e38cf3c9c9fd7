// Package dataset handles loading, writing and fetching the tabular
// heart-disease dataset.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/clinflow/clinflow-go/internal/errors"
	"github.com/clinflow/clinflow-go/internal/logging"
)

// Load reads a CSV file with a header row into a DataFrame. Column types
// are detected from the data; cells matching missingTokens are parsed as NaN.
func Load(path string, missingTokens []string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.New(fmt.Errorf("opening dataset %s: %w", path, err)).
			Component("dataset").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer file.Close()

	df := dataframe.ReadCSV(file,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingTokens),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.New(fmt.Errorf("parsing dataset %s: %w", path, df.Err)).
			Component("dataset").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}

	logging.ForService("dataset").Info("dataset loaded",
		"path", path, "rows", df.Nrow(), "columns", df.Ncol())
	return df, nil
}

// Write serializes a DataFrame to a CSV file with a header row, creating
// parent directories as needed.
func Write(df dataframe.DataFrame, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.New(fmt.Errorf("creating directory for %s: %w", path, err)).
			Component("dataset").
			Category(errors.CategoryFileIO).
			Build()
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.New(fmt.Errorf("creating %s: %w", path, err)).
			Component("dataset").
			Category(errors.CategoryFileIO).
			Build()
	}
	defer file.Close()

	if err := df.WriteCSV(file); err != nil {
		return errors.New(fmt.Errorf("writing %s: %w", path, err)).
			Component("dataset").
			Category(errors.CategoryFileIO).
			Build()
	}

	logging.ForService("dataset").Info("dataset written",
		"path", path, "rows", df.Nrow(), "columns", df.Ncol())
	return nil
}
