package datastore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gorm.io/gorm"

	"github.com/clinflow/clinflow-go/internal/errors"
	"github.com/clinflow/clinflow-go/internal/logging"
	"github.com/clinflow/clinflow-go/internal/query"
)

// PatientsTable is the relational table holding one row per cleaned record.
const PatientsTable = "patients"

// ReplaceAll writes the cleaned table to the patients table with full-replace
// semantics: prior contents are dropped, not merged. After the write the row
// count is cross-checked against the in-memory table; a mismatch is a hard
// failure.
func (ds *DataStore) ReplaceAll(df dataframe.DataFrame) error {
	log := logging.ForService("datastore")
	names := df.Names()
	if len(names) == 0 {
		return errors.Newf("refusing to store an empty table").
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}

	// Column names come from the validated cleaned table, not untrusted
	// input, so they are interpolated as quoted identifiers.
	createSQL := buildCreateTableSQL(df)
	insertSQL := buildInsertSQL(names)
	columns := columnValues(df)

	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %q`, PatientsTable)).Error; err != nil {
			return fmt.Errorf("dropping %s: %w", PatientsTable, err)
		}
		if err := tx.Exec(createSQL).Error; err != nil {
			return fmt.Errorf("creating %s: %w", PatientsTable, err)
		}
		for row := 0; row < df.Nrow(); row++ {
			params := make([]any, len(names))
			for j := range names {
				params[j] = columns[j][row]
			}
			if err := tx.Exec(insertSQL, params...).Error; err != nil {
				return fmt.Errorf("inserting row %d: %w", row, err)
			}
		}
		return nil
	})
	if err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}

	count, err := ds.Count()
	if err != nil {
		return err
	}
	if count != int64(df.Nrow()) {
		return errors.Newf("database row count (%d) does not match table row count (%d)",
			count, df.Nrow()).
			Component("datastore").
			Category(errors.CategorySchemaMismatch).
			Build()
	}

	log.Info("patients table replaced", "rows", count, "columns", len(names))
	return nil
}

// Count returns the number of rows in the patients table.
func (ds *DataStore) Count() (int64, error) {
	var count int64
	if err := ds.DB.Raw(fmt.Sprintf(`SELECT COUNT(*) FROM %q`, PatientsTable)).Scan(&count).Error; err != nil {
		return 0, errors.New(fmt.Errorf("counting %s rows: %w", PatientsTable, err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return count, nil
}

// QueryAll returns every row of the patients table.
func (ds *DataStore) QueryAll() (dataframe.DataFrame, error) {
	return ds.runSelect(fmt.Sprintf(`SELECT * FROM %q`, PatientsTable), nil)
}

// QueryPreset runs a named preset filter against the patients table. The
// literal preset "all" is the explicit no-filter request; an unrecognized
// name falls back to all rows with a warning.
func (ds *DataStore) QueryPreset(name string) (dataframe.DataFrame, error) {
	log := logging.ForService("datastore")
	log.Info("querying preset", "preset", name)

	spec, ok := query.Preset(name)
	if !ok {
		if name != query.PresetAll {
			log.Warn("preset not found, returning all rows", "preset", name)
		}
		return ds.QueryAll()
	}

	whereClause, params := query.BuildWhereClause(spec)
	sqlText := fmt.Sprintf(`SELECT * FROM %q`, PatientsTable)
	if whereClause != "" {
		sqlText += " WHERE " + whereClause
	}
	log.Debug("running preset query", "sql", sqlText, "params", params)
	return ds.runSelect(sqlText, params)
}

// runSelect executes a SELECT statement and scans the result set into a
// DataFrame.
func (ds *DataStore) runSelect(sqlText string, params []any) (dataframe.DataFrame, error) {
	rows, err := ds.DB.Raw(sqlText, params...).Rows()
	if err != nil {
		return dataframe.DataFrame{}, errors.New(fmt.Errorf("querying %s: %w", PatientsTable, err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return dataframe.DataFrame{}, errors.New(fmt.Errorf("reading result columns: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}

	records := [][]string{columns}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return dataframe.DataFrame{}, errors.New(fmt.Errorf("scanning result row: %w", err)).
				Component("datastore").
				Category(errors.CategoryDatabase).
				Build()
		}
		record := make([]string, len(columns))
		for i, v := range values {
			record[i] = formatCell(v)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, errors.New(fmt.Errorf("iterating result rows: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}

	if len(records) == 1 {
		// No matching rows; an empty DataFrame cannot be built from a bare header.
		return dataframe.DataFrame{}, nil
	}

	df := dataframe.LoadRecords(records, dataframe.DetectTypes(true))
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.New(fmt.Errorf("building result table: %w", df.Err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}

	logging.ForService("datastore").Info("query returned rows", "rows", df.Nrow())
	return df, nil
}

// buildCreateTableSQL renders the CREATE TABLE statement for the frame's
// columns, mapping numeric series to INTEGER/REAL and everything else to TEXT.
func buildCreateTableSQL(df dataframe.DataFrame) string {
	defs := make([]string, 0, len(df.Names()))
	for _, name := range df.Names() {
		defs = append(defs, fmt.Sprintf("%q %s", name, sqlType(df.Col(name).Type())))
	}
	return fmt.Sprintf(`CREATE TABLE %q (%s)`, PatientsTable, strings.Join(defs, ", "))
}

func buildInsertSQL(names []string) string {
	quoted := make([]string, len(names))
	placeholders := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
		placeholders[i] = "?"
	}
	return fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`,
		PatientsTable, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}

func sqlType(t series.Type) string {
	switch t {
	case series.Int, series.Bool:
		return "INTEGER"
	case series.Float:
		return "REAL"
	default:
		return "TEXT"
	}
}

// columnValues converts each column to driver-ready values: NULL for absent
// cells, int64/float64 for numeric series, text otherwise.
func columnValues(df dataframe.DataFrame) [][]any {
	names := df.Names()
	columns := make([][]any, len(names))
	for j, name := range names {
		col := df.Col(name)
		recs := col.Records()
		nan := col.IsNaN()
		values := make([]any, col.Len())
		for i := 0; i < col.Len(); i++ {
			switch {
			case nan[i]:
				values[i] = nil
			case col.Type() == series.Int || col.Type() == series.Bool:
				v, err := strconv.ParseInt(recs[i], 10, 64)
				if err != nil {
					values[i] = recs[i]
					continue
				}
				values[i] = v
			case col.Type() == series.Float:
				v, err := strconv.ParseFloat(recs[i], 64)
				if err != nil {
					values[i] = recs[i]
					continue
				}
				values[i] = v
			default:
				values[i] = recs[i]
			}
		}
		columns[j] = values
	}
	return columns
}

// formatCell renders a scanned SQL value as a CSV-style record cell.
func formatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return "NaN"
	case []byte:
		return string(value)
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		if value {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(value)
	}
}
