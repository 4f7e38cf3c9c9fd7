// conf/validate.go

package conf

import (
	"fmt"
)

// ValidationError represents a collection of configuration validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateCleaningSettings(&settings.Cleaning); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateValidationSettings(&settings.Validation); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateTrainingSettings(&settings.Training); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if len(ve.Errors) > 0 {
		return ve
	}

	return nil
}

func validateCleaningSettings(settings *CleaningSettings) error {
	if settings.TargetColumn == "" {
		return fmt.Errorf("cleaning.targetcolumn must not be empty")
	}
	if settings.MissingValueStrategy == "" {
		return fmt.Errorf("cleaning.missingvaluestrategy must not be empty")
	}
	return nil
}

func validateValidationSettings(settings *ValidationSettings) error {
	if settings.MinimumRows < 0 {
		return fmt.Errorf("validation.minimumrows must not be negative")
	}
	for col, bounds := range settings.ReasonableRanges {
		if bounds.Min > bounds.Max {
			return fmt.Errorf("validation.reasonableranges.%s: min %v is greater than max %v",
				col, bounds.Min, bounds.Max)
		}
	}
	return nil
}

func validateTrainingSettings(settings *TrainingSettings) error {
	if settings.TestSize <= 0 || settings.TestSize >= 1 {
		return fmt.Errorf("training.testsize must be between 0 and 1, got %v", settings.TestSize)
	}
	if settings.LearningRate <= 0 {
		return fmt.Errorf("training.learningrate must be positive, got %v", settings.LearningRate)
	}
	if settings.Epochs <= 0 {
		return fmt.Errorf("training.epochs must be positive, got %d", settings.Epochs)
	}
	return nil
}
