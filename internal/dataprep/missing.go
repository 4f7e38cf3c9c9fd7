package dataprep

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// missingTokenSet builds a lookup set of cell values treated as absent.
func missingTokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func isMissingToken(value string, tokens map[string]struct{}) bool {
	_, ok := tokens[value]
	return ok
}

// countMissing returns the total number of absent cells in the table.
func countMissing(df dataframe.DataFrame, tokens map[string]struct{}) int {
	total := 0
	for _, counts := range MissingCounts(df, tokens) {
		total += counts
	}
	return total
}

// MissingCounts returns the number of absent cells per column. A cell is
// absent when the series marks it NaN or its text form is a missing token.
func MissingCounts(df dataframe.DataFrame, tokens map[string]struct{}) map[string]int {
	counts := make(map[string]int, df.Ncol())
	for _, name := range df.Names() {
		col := df.Col(name)
		nan := col.IsNaN()
		recs := col.Records()
		n := 0
		for i := 0; i < col.Len(); i++ {
			if nan[i] || isMissingToken(recs[i], tokens) {
				n++
			}
		}
		counts[name] = n
	}
	return counts
}

// MissingTokenSet exposes the token lookup for other packages that report on
// raw tables.
func MissingTokenSet(tokens []string) map[string]struct{} {
	return missingTokenSet(tokens)
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func isNumericType(t series.Type) bool {
	return t == series.Float || t == series.Int
}
