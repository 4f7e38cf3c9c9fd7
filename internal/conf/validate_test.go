package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	return &Settings{
		Cleaning: CleaningSettings{
			MissingValueStrategy: "drop",
			NumericalColumns:     []string{"age"},
			TargetColumn:         "num",
		},
		Validation: ValidationSettings{
			ReasonableRanges: map[string]Range{"age": {Min: 0, Max: 120}},
			MinimumRows:      50,
		},
		Training: TrainingSettings{
			TestSize:     0.2,
			RandomState:  42,
			LearningRate: 0.1,
			Epochs:       1000,
		},
	}
}

func TestValidateSettingsAcceptsDefaults(t *testing.T) {
	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"empty target column", func(s *Settings) { s.Cleaning.TargetColumn = "" }},
		{"empty strategy", func(s *Settings) { s.Cleaning.MissingValueStrategy = "" }},
		{"negative minimum rows", func(s *Settings) { s.Validation.MinimumRows = -1 }},
		{"inverted range", func(s *Settings) {
			s.Validation.ReasonableRanges["age"] = Range{Min: 120, Max: 0}
		}},
		{"test size too large", func(s *Settings) { s.Training.TestSize = 1.5 }},
		{"zero learning rate", func(s *Settings) { s.Training.LearningRate = 0 }},
		{"zero epochs", func(s *Settings) { s.Training.Epochs = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := validSettings()
			tt.mutate(settings)

			err := ValidateSettings(settings)
			require.Error(t, err)

			var ve ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}
