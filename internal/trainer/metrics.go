package trainer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clinflow/clinflow-go/internal/errors"
	"github.com/clinflow/clinflow-go/internal/logging"
)

// ClassMetrics holds per-class evaluation figures.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Evaluation is the metrics document for a trained model. The confusion
// matrix is indexed [true class][predicted class].
type Evaluation struct {
	Accuracy        float64                 `json:"accuracy"`
	Classes         map[string]ClassMetrics `json:"classes"`
	MacroAvg        ClassMetrics            `json:"macro_avg"`
	WeightedAvg     ClassMetrics            `json:"weighted_avg"`
	ConfusionMatrix [][]int                 `json:"confusion_matrix"`
}

// Accuracy returns the fraction of matching labels.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// Evaluate computes the full classification report for binary labels:
// per-class precision/recall/F1/support, macro and weighted averages, and the
// confusion matrix.
func Evaluate(yTrue, yPred []int) *Evaluation {
	confusion := [][]int{{0, 0}, {0, 0}}
	for i := range yTrue {
		confusion[yTrue[i]][yPred[i]]++
	}

	eval := &Evaluation{
		Accuracy:        Accuracy(yTrue, yPred),
		Classes:         make(map[string]ClassMetrics, 2),
		ConfusionMatrix: confusion,
	}

	total := len(yTrue)
	for class := 0; class < 2; class++ {
		tp := confusion[class][class]
		predicted := confusion[0][class] + confusion[1][class]
		support := confusion[class][0] + confusion[class][1]

		metrics := ClassMetrics{Support: support}
		if predicted > 0 {
			metrics.Precision = float64(tp) / float64(predicted)
		}
		if support > 0 {
			metrics.Recall = float64(tp) / float64(support)
		}
		if metrics.Precision+metrics.Recall > 0 {
			metrics.F1 = 2 * metrics.Precision * metrics.Recall / (metrics.Precision + metrics.Recall)
		}
		eval.Classes[fmt.Sprintf("%d", class)] = metrics

		eval.MacroAvg.Precision += metrics.Precision / 2
		eval.MacroAvg.Recall += metrics.Recall / 2
		eval.MacroAvg.F1 += metrics.F1 / 2

		if total > 0 {
			weight := float64(support) / float64(total)
			eval.WeightedAvg.Precision += metrics.Precision * weight
			eval.WeightedAvg.Recall += metrics.Recall * weight
			eval.WeightedAvg.F1 += metrics.F1 * weight
		}
	}
	eval.MacroAvg.Support = total
	eval.WeightedAvg.Support = total

	return eval
}

// WriteJSON serializes the metrics document to path, creating parent
// directories as needed. Returns the path written.
func (e *Evaluation) WriteJSON(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.New(fmt.Errorf("creating metrics directory: %w", err)).
			Component("trainer").
			Category(errors.CategoryFileIO).
			Build()
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", errors.New(fmt.Errorf("encoding metrics: %w", err)).
			Component("trainer").
			Category(errors.CategoryFileIO).
			Build()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.New(fmt.Errorf("writing metrics to %s: %w", path, err)).
			Component("trainer").
			Category(errors.CategoryFileIO).
			Build()
	}

	logging.ForService("trainer").Info("metrics written", "path", path)
	return path, nil
}
