// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "clinflow")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "clinflow.log")

	viper.SetDefault("paths.rawdata", "data/raw/heart_disease.csv")
	viper.SetDefault("paths.processeddata", "data/processed/clean.csv")
	viper.SetDefault("paths.model", "models/heart_disease_model.gob")
	viper.SetDefault("paths.metrics", "models/metrics.json")

	viper.SetDefault("dataset.sourceurl", "https://archive.ics.uci.edu/static/public/45/data.csv")
	viper.SetDefault("dataset.missingtokens", []string{"", "?", "NA", "NaN"})

	viper.SetDefault("cleaning.missingvaluestrategy", "drop")
	viper.SetDefault("cleaning.numericalcolumns", []string{"age", "trestbps", "chol", "thalach", "oldpeak"})
	viper.SetDefault("cleaning.categoricalcolumns", []string{"sex", "cp", "fbs", "restecg", "exang", "slope", "ca", "thal"})
	viper.SetDefault("cleaning.targetcolumn", "num")

	viper.SetDefault("validation.minimumrows", 50)

	viper.SetDefault("training.testsize", 0.2)
	viper.SetDefault("training.randomstate", 42)
	viper.SetDefault("training.excludecolumns", []string{"target", "num"})
	viper.SetDefault("training.learningrate", 0.1)
	viper.SetDefault("training.epochs", 1000)

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "data/clinflow.db")
}
