// Package query builds parameterized SQL filter predicates from named
// presets.
package query

import (
	"sort"
	"strings"
)

// Rule is a small set of constraints on a single column. Nil fields are
// unset; set fields combine with logical AND.
type Rule struct {
	Min    *float64 // inclusive lower bound
	Max    *float64 // inclusive upper bound
	Equals *float64 // exact match
}

// FilterSpec maps column names to rules. Rules across columns combine with
// logical AND.
type FilterSpec map[string]Rule

// PresetAll is the explicit no-filter request: all rows, no warning.
const PresetAll = "all"

// presets is the fixed set of named filter specifications. Column names in a
// preset are code-defined constants, never untrusted input; if presets ever
// become user-suppliable the names must be validated against an allow-list
// before they reach BuildWhereClause.
var presets = map[string]FilterSpec{
	"high_risk_seniors": {
		"age":    {Min: f(60)},
		"target": {Equals: f(1)},
	},
	"young_with_high_chol": {
		"age":  {Max: f(40)},
		"chol": {Min: f(200)},
	},
	"exercise_induced_angina": {
		"exang": {Equals: f(1)},
	},
}

func f(v float64) *float64 { return &v }

// Preset returns the filter specification for a named preset.
func Preset(name string) (FilterSpec, bool) {
	spec, ok := presets[name]
	return spec, ok
}

// PresetNames returns the available preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildWhereClause renders a filter specification as SQL predicate text plus
// the parameter values in placeholder order. Bound and equality values are
// never interpolated into the text; column names are, because they come from
// the trusted preset table. Columns are visited in sorted name order and
// rules within a column in min, max, equals order, so the parameter order is
// deterministic. An empty specification yields an empty predicate and no
// parameters.
func BuildWhereClause(spec FilterSpec) (string, []any) {
	columns := make([]string, 0, len(spec))
	for column := range spec {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	var conditions []string
	var params []any
	for _, column := range columns {
		rules := spec[column]
		if rules.Min != nil {
			conditions = append(conditions, column+" >= ?")
			params = append(params, *rules.Min)
		}
		if rules.Max != nil {
			conditions = append(conditions, column+" <= ?")
			params = append(params, *rules.Max)
		}
		if rules.Equals != nil {
			conditions = append(conditions, column+" = ?")
			params = append(params, *rules.Equals)
		}
	}
	return strings.Join(conditions, " AND "), params
}
