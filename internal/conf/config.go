// config.go: settings struct and functions to load the clinflow configuration.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/clinflow/clinflow-go/internal/logging"
)

//go:embed config.yaml
var configFiles embed.FS

// LogSettings contains settings for the application log file.
type LogSettings struct {
	Enabled bool   // true to enable JSON file logging
	Path    string // path to the log file
}

// MainSettings contains application level settings.
type MainSettings struct {
	Name string      // application name used in log records
	Log  LogSettings // log file settings
}

// PathsSettings contains the file locations used by the pipeline.
type PathsSettings struct {
	RawData       string // path to the raw dataset CSV
	ProcessedData string // path to the cleaned dataset CSV
	Model         string // path to the serialized model artifact
	Metrics       string // path to the evaluation metrics JSON document
}

// DatasetSettings contains settings for dataset acquisition and parsing.
type DatasetSettings struct {
	SourceURL     string   // remote CSV endpoint for the fetch command
	MissingTokens []string // cell values treated as absent
}

// CleaningSettings drives the cleaning engine.
type CleaningSettings struct {
	MissingValueStrategy string   // "drop" removes rows with absent values, anything else is a no-op
	NumericalColumns     []string // columns converted to numeric type
	CategoricalColumns   []string // columns holding categorical codes
	TargetColumn         string   // source severity column, 0 = none, 1-4 = increasing
}

// Range is an inclusive [Min, Max] bound for a column.
type Range struct {
	Min float64
	Max float64
}

// ValidationSettings drives the validation engine.
type ValidationSettings struct {
	ReasonableRanges map[string]Range // column name -> inclusive bounds
	MinimumRows      int              // floor on post-cleaning row count
}

// TrainingSettings contains hyperparameters for model training.
type TrainingSettings struct {
	TestSize       float64  // fraction of rows held out for evaluation
	RandomState    int64    // seed for the train/test shuffle
	ExcludeColumns []string // columns excluded from the feature matrix
	LearningRate   float64  // gradient descent step size
	Epochs         int      // gradient descent iterations
}

// SQLiteSettings contains settings for the SQLite output database.
type SQLiteSettings struct {
	Enabled bool   // true to enable SQLite output
	Path    string // path to the database file
}

// OutputSettings contains settings for pipeline outputs.
type OutputSettings struct {
	SQLite SQLiteSettings // SQLite output settings
}

// Settings is the root configuration struct, loaded once at process start
// and passed explicitly to every component that needs it.
type Settings struct {
	Debug bool // true to enable debug logging

	Main       MainSettings
	Paths      PathsSettings
	Dataset    DatasetSettings
	Cleaning   CleaningSettings
	Validation ValidationSettings
	Training   TrainingSettings
	Output     OutputSettings
}

// Load reads the configuration into a Settings struct and validates it.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	logging.Info("configuration loaded", "path", viper.ConfigFileUsed())
	return settings, nil
}

// initViper initializes viper with the config file search paths and defaults.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	for _, path := range configPaths() {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter,
	// function defined in defaults.go
	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create one with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// configPaths returns the directories searched for config.yaml, most
// specific first.
func configPaths() []string {
	paths := []string{".", "./config"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "clinflow"))
	}
	return paths
}

// createDefaultConfig writes the embedded default configuration to the
// working directory and loads it.
func createDefaultConfig() error {
	configPath := filepath.Join(".", "config.yaml")

	defaultConfig, err := configFiles.ReadFile("config.yaml")
	if err != nil {
		return fmt.Errorf("error reading embedded default config: %w", err)
	}

	if err := os.WriteFile(configPath, defaultConfig, 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}
	logging.Warn("no config file found, default configuration written", "path", configPath)

	return viper.ReadInConfig()
}
