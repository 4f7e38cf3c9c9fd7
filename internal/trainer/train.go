package trainer

import (
	"math"
	"math/rand"
	"slices"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"

	"github.com/clinflow/clinflow-go/internal/conf"
	"github.com/clinflow/clinflow-go/internal/dataprep"
	"github.com/clinflow/clinflow-go/internal/errors"
	"github.com/clinflow/clinflow-go/internal/logging"
)

// TrainResult holds the fitted model and its held-out evaluation inputs as
// named, typed fields.
type TrainResult struct {
	Model        *LogisticRegression
	Scaler       *StandardScaler
	FeatureNames []string

	YTest  []int
	YPred  []int
	YScore []float64

	Accuracy float64
	ROCAUC   float64
}

// Train fits a logistic regression on the cleaned table. The feature matrix
// is every column except the configured exclusions; labels come from the
// derived target column. The train/test split is shuffled deterministically
// from the configured random state, the scaler is fitted on the training
// split only, and metrics are computed on the held-out split.
func Train(df dataframe.DataFrame, settings *conf.Settings) (*TrainResult, error) {
	log := logging.ForService("trainer")

	featureNames := selectFeatures(df.Names(), settings.Training.ExcludeColumns)
	if len(featureNames) == 0 {
		return nil, errors.Newf("no feature columns left after exclusions").
			Component("trainer").
			Category(errors.CategoryModelTraining).
			Build()
	}

	hasTarget := slices.Contains(df.Names(), dataprep.TargetColumn)
	if !hasTarget {
		return nil, errors.Newf("column %q not found, train on a cleaned table", dataprep.TargetColumn).
			Component("trainer").
			Category(errors.CategoryModelTraining).
			Build()
	}

	x, y, err := featureMatrix(df, featureNames)
	if err != nil {
		return nil, err
	}

	rows, _ := x.Dims()
	testRows := int(math.Round(float64(rows) * settings.Training.TestSize))
	if testRows < 1 || rows-testRows < 1 {
		return nil, errors.Newf("dataset of %d rows is too small for a %.2f test split",
			rows, settings.Training.TestSize).
			Component("trainer").
			Category(errors.CategoryModelTraining).
			Build()
	}

	perm := rand.New(rand.NewSource(settings.Training.RandomState)).Perm(rows)
	testIdx := perm[:testRows]
	trainIdx := perm[testRows:]

	xTrain, yTrain := subsetMatrix(x, y, trainIdx)
	xTest, yTest := subsetMatrix(x, y, testIdx)
	log.Info("train/test split created", "train_rows", len(trainIdx), "test_rows", len(testIdx))

	scaler := &StandardScaler{}
	scaler.Fit(xTrain)
	xTrain = scaler.Transform(xTrain)
	xTest = scaler.Transform(xTest)
	log.Info("features standardized", "features", len(featureNames))

	model := NewLogisticRegression(len(featureNames), settings.Training.LearningRate, settings.Training.Epochs)
	model.Fit(xTrain, yTrain)
	log.Info("logistic regression trained",
		"epochs", settings.Training.Epochs, "learning_rate", settings.Training.LearningRate)

	yPred := model.Predict(xTest)
	yScore := model.PredictProba(xTest)
	yTestInt := toLabels(yTest)

	result := &TrainResult{
		Model:        model,
		Scaler:       scaler,
		FeatureNames: featureNames,
		YTest:        yTestInt,
		YPred:        yPred,
		YScore:       yScore,
		Accuracy:     Accuracy(yTestInt, yPred),
		ROCAUC:       ROCAUC(yTestInt, yScore),
	}
	log.Info("model evaluated on held-out split",
		"accuracy", result.Accuracy, "roc_auc", result.ROCAUC)
	return result, nil
}

// selectFeatures returns the table columns minus the exclusions, keeping the
// table's column order.
func selectFeatures(names, exclude []string) []string {
	features := make([]string, 0, len(names))
	for _, name := range names {
		if slices.Contains(exclude, name) {
			continue
		}
		features = append(features, name)
	}
	return features
}

// featureMatrix extracts the feature matrix and label vector from the table.
// Missing values are a hard failure here: the table must have been cleaned.
func featureMatrix(df dataframe.DataFrame, featureNames []string) (*mat.Dense, []float64, error) {
	rows := df.Nrow()
	x := mat.NewDense(rows, len(featureNames), nil)
	for j, name := range featureNames {
		col := df.Col(name).Float()
		for i, v := range col {
			if math.IsNaN(v) {
				return nil, nil, errors.Newf("column %q has a missing or non-numeric value at row %d", name, i).
					Component("trainer").
					Category(errors.CategoryModelTraining).
					Context("column", name).
					Build()
			}
			x.Set(i, j, v)
		}
	}

	y := df.Col(dataprep.TargetColumn).Float()
	for i, v := range y {
		if v != 0 && v != 1 {
			return nil, nil, errors.Newf("target value %v at row %d is not binary", v, i).
				Component("trainer").
				Category(errors.CategoryModelTraining).
				Build()
		}
	}
	return x, y, nil
}

func subsetMatrix(x *mat.Dense, y []float64, idx []int) (*mat.Dense, []float64) {
	_, cols := x.Dims()
	out := mat.NewDense(len(idx), cols, nil)
	labels := make([]float64, len(idx))
	for i, row := range idx {
		out.SetRow(i, mat.Row(nil, row, x))
		labels[i] = y[row]
	}
	return out, labels
}

func toLabels(y []float64) []int {
	out := make([]int, len(y))
	for i, v := range y {
		if v > 0 {
			out[i] = 1
		}
	}
	return out
}

// ROCAUC computes the area under the ROC curve with the rank statistic,
// equivalent to the Mann-Whitney U normalization. Ties share averaged ranks.
func ROCAUC(yTrue []int, yScore []float64) float64 {
	type scored struct {
		score float64
		label int
	}
	items := make([]scored, len(yTrue))
	positives := 0
	for i := range yTrue {
		items[i] = scored{score: yScore[i], label: yTrue[i]}
		if yTrue[i] == 1 {
			positives++
		}
	}
	negatives := len(yTrue) - positives
	if positives == 0 || negatives == 0 {
		return 0
	}

	sort.Slice(items, func(i, j int) bool { return items[i].score < items[j].score })

	rankSum := 0.0
	i := 0
	for i < len(items) {
		j := i
		for j < len(items) && items[j].score == items[i].score {
			j++
		}
		// Average rank across the tie group, ranks are 1-based.
		avgRank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			if items[k].label == 1 {
				rankSum += avgRank
			}
		}
		i = j
	}

	u := rankSum - float64(positives)*float64(positives+1)/2
	return u / (float64(positives) * float64(negatives))
}
