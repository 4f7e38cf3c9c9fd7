package dataset

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"github.com/clinflow/clinflow-go/internal/dataprep"
	"github.com/clinflow/clinflow-go/internal/logging"
)

// Summary logs exploratory metrics for a raw table: record and feature
// counts, per-column missing values and the severity distribution of the
// source target column.
func Summary(df dataframe.DataFrame, targetColumn string, missingTokens []string) {
	log := logging.ForService("dataset")

	log.Info("records", "count", df.Nrow())
	log.Info("features", "count", df.Ncol())

	counts := dataprep.MissingCounts(df, dataprep.MissingTokenSet(missingTokens))
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if counts[name] > 0 {
			log.Info("missing values", "column", name, "count", counts[name])
		}
	}

	severityDistribution(df, targetColumn, log)
}

// severityDistribution logs the share of each severity level, 0 meaning no
// disease and 1-4 increasing severity.
func severityDistribution(df dataframe.DataFrame, targetColumn string, log *slog.Logger) {
	found := false
	for _, name := range df.Names() {
		if name == targetColumn {
			found = true
			break
		}
	}
	if !found {
		log.Warn("target column not present, skipping distribution", "column", targetColumn)
		return
	}

	distribution := make(map[int]int)
	total := 0
	for _, v := range df.Col(targetColumn).Float() {
		severity := int(v)
		distribution[severity]++
		total++
	}
	if total == 0 {
		return
	}

	severities := make([]int, 0, len(distribution))
	for severity := range distribution {
		severities = append(severities, severity)
	}
	sort.Ints(severities)

	for _, severity := range severities {
		pct := float64(distribution[severity]) / float64(total) * 100
		label := fmt.Sprintf("severity %d", severity)
		if severity == 0 {
			label = "no heart disease"
		}
		log.Info("target distribution", "label", label, "percent", fmt.Sprintf("%.2f", pct))
	}
}
