package trainer

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/clinflow/clinflow-go/internal/errors"
	"github.com/clinflow/clinflow-go/internal/logging"
)

// ModelArtifact is the serialized form of a trained model: the fitted
// weights, the scaler statistics and the feature names the model expects,
// in order.
type ModelArtifact struct {
	Weights      []float64
	Bias         float64
	Mean         []float64
	Std          []float64
	FeatureNames []string
}

// PredictProba scores a single observation given in artifact feature order.
func (a *ModelArtifact) PredictProba(features []float64) (float64, error) {
	if len(features) != len(a.FeatureNames) {
		return 0, fmt.Errorf("expected %d features, got %d", len(a.FeatureNames), len(features))
	}
	scaled := make([]float64, len(features))
	for i, v := range features {
		scaled[i] = (v - a.Mean[i]) / a.Std[i]
	}
	model := &LogisticRegression{Weights: a.Weights, Bias: a.Bias}
	return model.PredictProba(mat.NewDense(1, len(scaled), scaled))[0], nil
}

// SaveModel serializes the trained model to path as an opaque binary blob,
// creating parent directories as needed. Returns the path written.
func SaveModel(result *TrainResult, path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.New(fmt.Errorf("creating model directory: %w", err)).
			Component("trainer").
			Category(errors.CategoryModelIO).
			Build()
	}

	file, err := os.Create(path)
	if err != nil {
		return "", errors.New(fmt.Errorf("creating model file %s: %w", path, err)).
			Component("trainer").
			Category(errors.CategoryModelIO).
			Build()
	}
	defer file.Close()

	artifact := ModelArtifact{
		Weights:      result.Model.Weights,
		Bias:         result.Model.Bias,
		Mean:         result.Scaler.Mean,
		Std:          result.Scaler.Std,
		FeatureNames: result.FeatureNames,
	}
	if err := gob.NewEncoder(file).Encode(&artifact); err != nil {
		return "", errors.New(fmt.Errorf("encoding model to %s: %w", path, err)).
			Component("trainer").
			Category(errors.CategoryModelIO).
			Build()
	}

	logging.ForService("trainer").Info("model saved", "path", path)
	return path, nil
}

// LoadModel deserializes a model artifact previously written by SaveModel.
func LoadModel(path string) (*ModelArtifact, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New(fmt.Errorf("opening model file %s: %w", path, err)).
			Component("trainer").
			Category(errors.CategoryModelIO).
			Build()
	}
	defer file.Close()

	var artifact ModelArtifact
	if err := gob.NewDecoder(file).Decode(&artifact); err != nil {
		return nil, errors.New(fmt.Errorf("decoding model file %s: %w", path, err)).
			Component("trainer").
			Category(errors.CategoryModelIO).
			Build()
	}

	logging.ForService("trainer").Info("model loaded", "path", path)
	return &artifact, nil
}
