// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"github.com/go-gota/gota/dataframe"
	"gorm.io/gorm"

	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/errors"
)

// ErrStoreDisabled is returned by commands that need the database when no
// database output is enabled in the configuration.
var ErrStoreDisabled = errors.NewStd("no database output is enabled in the configuration")

// Interface abstracts the underlying database implementation and defines the
// operations the pipeline needs from the relational store.
type Interface interface {
	Open() error
	Close() error
	ReplaceAll(df dataframe.DataFrame) error
	Count() (int64, error)
	QueryPreset(name string) (dataframe.DataFrame, error)
	QueryAll() (dataframe.DataFrame, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided configuration.
// It returns nil when no database output is enabled.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	default:
		return nil
	}
}
