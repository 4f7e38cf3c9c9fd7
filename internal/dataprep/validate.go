package dataprep

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/logging"
)

// ValidationKind identifies which validation rule a table violated.
type ValidationKind string

const (
	KindMissingValues         ValidationKind = "MissingValues"
	KindNonNumericColumn      ValidationKind = "NonNumericColumn"
	KindNonNumericCategorical ValidationKind = "NonNumericCategorical"
	KindTargetMissing         ValidationKind = "TargetMissing"
	KindTargetNotBinary       ValidationKind = "TargetNotBinary"
	KindOutOfRange            ValidationKind = "OutOfRange"
	KindInsufficientRows      ValidationKind = "InsufficientRows"
)

// ValidationError reports the first violated validation rule.
type ValidationError struct {
	Kind   ValidationKind
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Kind, e.Detail)
}

func newValidationError(kind ValidationKind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Validate checks a cleaned table against the declarative rules in the
// configuration. It never mutates its input and fails fast: the first
// violated rule aborts with a ValidationError of the matching kind.
//
// The typing and range checks skip columns that are absent from the table,
// so validation can run against partial tables.
func Validate(df dataframe.DataFrame, settings *conf.Settings) error {
	log := logging.ForService("dataprep")
	tokens := missingTokenSet(settings.Dataset.MissingTokens)

	// 1. completeness
	if missing := countMissing(df, tokens); missing != 0 {
		return newValidationError(KindMissingValues,
			"table contains %d missing values", missing)
	}
	log.Debug("missing values check passed")

	// 2. numeric typing
	for _, name := range settings.Cleaning.NumericalColumns {
		if !hasColumn(df, name) {
			continue
		}
		if t := df.Col(name).Type(); !isNumericType(t) {
			return newValidationError(KindNonNumericColumn,
				"numerical column %q has type %s", name, t)
		}
	}

	// 3. categorical typing, codes must be numeric rather than free text
	for _, name := range settings.Cleaning.CategoricalColumns {
		if !hasColumn(df, name) {
			continue
		}
		if t := df.Col(name).Type(); !isNumericType(t) {
			return newValidationError(KindNonNumericCategorical,
				"categorical column %q has type %s, expected numeric codes", name, t)
		}
	}
	log.Debug("column typing checks passed")

	// 4. target presence
	if !hasColumn(df, TargetColumn) {
		return newValidationError(KindTargetMissing,
			"column %q does not exist", TargetColumn)
	}

	// 5. target domain
	for i, v := range df.Col(TargetColumn).Float() {
		if v != 0 && v != 1 {
			return newValidationError(KindTargetNotBinary,
				"column %q is not binary: row %d holds %v", TargetColumn, i, v)
		}
	}
	log.Debug("target column checks passed")

	// 6. range bounds
	for _, name := range sortedRangeColumns(settings.Validation.ReasonableRanges) {
		if !hasColumn(df, name) {
			continue
		}
		bounds := settings.Validation.ReasonableRanges[name]
		for _, v := range df.Col(name).Float() {
			if v < bounds.Min || v > bounds.Max {
				return newValidationError(KindOutOfRange,
					"column %q has value %v outside reasonable range [%v, %v]",
					name, v, bounds.Min, bounds.Max)
			}
		}
	}
	log.Debug("reasonable ranges check passed")

	// 7. row count floor
	if df.Nrow() < settings.Validation.MinimumRows {
		return newValidationError(KindInsufficientRows,
			"table has %d rows, fewer than the %d required",
			df.Nrow(), settings.Validation.MinimumRows)
	}
	log.Debug("row count check passed")

	return nil
}

// sortedRangeColumns returns the range-checked column names in a stable order.
func sortedRangeColumns(ranges map[string]conf.Range) []string {
	names := make([]string, 0, len(ranges))
	for name := range ranges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
