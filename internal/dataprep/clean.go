// Package dataprep implements the configuration-driven cleaning and
// validation engine. Every table must pass through Clean and Validate before
// it is trusted for storage or training.
package dataprep

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/errors"
	"github.com/clinflow/clinflow-go/internal/logging"
)

// TargetColumn is the name of the derived binary label column.
const TargetColumn = "target"

// StrategyDrop removes every row containing an absent value. It is the only
// defined missing-value strategy; unrecognized strategies are a no-op.
const StrategyDrop = "drop"

// CleanReport carries per-run cleaning diagnostics. Coercion counts are
// observability only, never a hard failure.
type CleanReport struct {
	RowsBefore  int
	RowsAfter   int
	CoercedNaN  map[string]int // column -> values that became NaN during numeric coercion
	EncodedCats map[string]int // column -> number of distinct codes assigned
}

// Clean applies the cleaning steps to df in fixed order: missing-value
// handling, numeric coercion, categorical encoding, target binarization.
// It returns a new table; the caller's table is never mutated. The output has
// the same columns as the input plus the derived target column, and never
// more rows than the input.
func Clean(df dataframe.DataFrame, settings *conf.Settings) (dataframe.DataFrame, CleanReport, error) {
	log := logging.ForService("dataprep")
	report := CleanReport{
		RowsBefore:  df.Nrow(),
		CoercedNaN:  make(map[string]int),
		EncodedCats: make(map[string]int),
	}

	tokens := missingTokenSet(settings.Dataset.MissingTokens)
	log.Info("cleaning started",
		"rows", df.Nrow(), "columns", df.Ncol(),
		"missing_values", countMissing(df, tokens))

	// 1. missing value handling
	if settings.Cleaning.MissingValueStrategy == StrategyDrop {
		df = dropMissingRows(df, tokens)
	} else {
		log.Warn("unrecognized missing value strategy, skipping",
			"strategy", settings.Cleaning.MissingValueStrategy)
	}

	// 2. numeric coercion, unparseable values become NaN rather than errors
	for _, name := range settings.Cleaning.NumericalColumns {
		if !hasColumn(df, name) {
			continue
		}
		coerced, count := coerceNumeric(df.Col(name))
		df = df.Mutate(coerced)
		if count > 0 {
			report.CoercedNaN[name] = count
			log.Warn("values coerced to NaN during numeric conversion",
				"column", name, "count", count)
		}
	}

	// 3. categorical encoding to dense integer codes 0..k-1
	for _, name := range settings.Cleaning.CategoricalColumns {
		if !hasColumn(df, name) {
			continue
		}
		col := df.Col(name)
		if isNumericType(col.Type()) {
			continue
		}
		encoded, k := encodeCategorical(col)
		df = df.Mutate(encoded)
		report.EncodedCats[name] = k
	}

	// 4. target binarization, the source severity column is retained
	targetName := settings.Cleaning.TargetColumn
	if !hasColumn(df, targetName) {
		return dataframe.DataFrame{}, report, errors.Newf("target column %q not found in dataset", targetName).
			Component("dataprep").
			Category(errors.CategoryConfiguration).
			Context("column", targetName).
			Build()
	}
	df = df.Mutate(binarizeTarget(df.Col(targetName)))

	report.RowsAfter = df.Nrow()
	log.Info("cleaning finished",
		"rows", df.Nrow(), "columns", df.Ncol(),
		"missing_values", countMissing(df, tokens))

	if df.Err != nil {
		return dataframe.DataFrame{}, report, errors.New(fmt.Errorf("cleaning dataset: %w", df.Err)).
			Component("dataprep").
			Category(errors.CategoryValidation).
			Build()
	}
	return df, report, nil
}

// dropMissingRows removes every row containing an absent value in any column.
func dropMissingRows(df dataframe.DataFrame, tokens map[string]struct{}) dataframe.DataFrame {
	drop := make([]bool, df.Nrow())
	for _, name := range df.Names() {
		col := df.Col(name)
		nan := col.IsNaN()
		recs := col.Records()
		for i := 0; i < col.Len(); i++ {
			if nan[i] || isMissingToken(recs[i], tokens) {
				drop[i] = true
			}
		}
	}

	keep := make([]int, 0, df.Nrow())
	for i, d := range drop {
		if !d {
			keep = append(keep, i)
		}
	}
	if len(keep) == df.Nrow() {
		return df
	}
	return df.Subset(keep)
}

// coerceNumeric converts a column to float values. Values that cannot be
// parsed become NaN; the count excludes cells that were already absent.
func coerceNumeric(col series.Series) (series.Series, int) {
	recs := col.Records()
	nan := col.IsNaN()
	vals := make([]float64, col.Len())
	coerced := 0
	for i, rec := range recs {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec), 64)
		if err != nil {
			vals[i] = math.NaN()
			if !nan[i] {
				coerced++
			}
			continue
		}
		vals[i] = v
	}
	return series.New(vals, series.Float, col.Name), coerced
}

// encodeCategorical maps the distinct values of a column to dense integer
// codes assigned in sorted order of the distinct values, which keeps the
// assignment stable and deterministic within one run.
func encodeCategorical(col series.Series) (series.Series, int) {
	recs := col.Records()
	distinct := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		distinct[rec] = struct{}{}
	}

	values := make([]string, 0, len(distinct))
	for v := range distinct {
		values = append(values, v)
	}
	sort.Strings(values)

	codes := make(map[string]int, len(values))
	for code, v := range values {
		codes[v] = code
	}

	encoded := make([]int, len(recs))
	for i, rec := range recs {
		encoded[i] = codes[rec]
	}
	return series.New(encoded, series.Int, col.Name), len(values)
}

// binarizeTarget derives the binary label: 1 when the severity value is
// greater than zero, 0 otherwise.
func binarizeTarget(col series.Series) series.Series {
	src := col.Float()
	target := make([]int, len(src))
	for i, v := range src {
		if v > 0 {
			target[i] = 1
		}
	}
	return series.New(target, series.Int, TargetColumn)
}
