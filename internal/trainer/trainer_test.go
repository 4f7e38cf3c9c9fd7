package trainer

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/clinflow/clinflow-go/internal/conf"
)

func matFromRows(rows [][]float64) *mat.Dense {
	out := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		out.SetRow(i, row)
	}
	return out
}

func trainingSettings() *conf.Settings {
	return &conf.Settings{
		Training: conf.TrainingSettings{
			TestSize:       0.2,
			RandomState:    42,
			ExcludeColumns: []string{"target", "num"},
			LearningRate:   0.1,
			Epochs:         500,
		},
	}
}

// separableFrame builds a linearly separable dataset: large feature values
// mean class 1, small mean class 0.
func separableFrame(n int) dataframe.DataFrame {
	age := make([]float64, n)
	chol := make([]float64, n)
	num := make([]int, n)
	target := make([]int, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			age[i] = 70 + float64(i%10)
			chol[i] = 300 + float64(i%20)
			num[i] = 2
			target[i] = 1
		} else {
			age[i] = 30 + float64(i%10)
			chol[i] = 150 + float64(i%20)
		}
	}
	return dataframe.New(
		series.New(age, series.Float, "age"),
		series.New(chol, series.Float, "chol"),
		series.New(num, series.Int, "num"),
		series.New(target, series.Int, "target"),
	)
}

func TestTrainOnSeparableData(t *testing.T) {
	result, err := Train(separableFrame(100), trainingSettings())
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "chol"}, result.FeatureNames)
	assert.Len(t, result.YTest, 20)
	assert.Greater(t, result.Accuracy, 0.9, "A separable dataset should be learned almost perfectly")
	assert.Greater(t, result.ROCAUC, 0.9)
}

func TestTrainIsDeterministic(t *testing.T) {
	first, err := Train(separableFrame(100), trainingSettings())
	require.NoError(t, err)

	second, err := Train(separableFrame(100), trainingSettings())
	require.NoError(t, err)

	assert.Equal(t, first.YTest, second.YTest, "The split is seeded and must not vary between runs")
	assert.InDelta(t, first.Accuracy, second.Accuracy, 1e-12)
	assert.Equal(t, first.Model.Weights, second.Model.Weights)
}

func TestTrainRejectsMissingTarget(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{1, 2, 3}, series.Float, "age"),
	)

	_, err := Train(df, trainingSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target")
}

func TestTrainRejectsMissingValues(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{70, math.NaN(), 30, 65, 40, 71, 33, 68, 35, 60}, series.Float, "age"),
		series.New([]int{1, 0, 0, 1, 0, 1, 0, 1, 0, 1}, series.Int, "target"),
	)

	_, err := Train(df, trainingSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestTrainRejectsTinyDataset(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{70}, series.Float, "age"),
		series.New([]int{1}, series.Int, "target"),
	)

	_, err := Train(df, trainingSettings())
	require.Error(t, err)
}

func TestStandardScaler(t *testing.T) {
	x := matFromRows([][]float64{{1, 10}, {2, 20}, {3, 30}})

	scaler := &StandardScaler{}
	scaler.Fit(x)
	scaled := scaler.Transform(x)

	assert.InDelta(t, 2, scaler.Mean[0], 1e-12)
	assert.InDelta(t, 20, scaler.Mean[1], 1e-12)
	// Column means become zero after transformation.
	for j := 0; j < 2; j++ {
		sum := 0.0
		for i := 0; i < 3; i++ {
			sum += scaled.At(i, j)
		}
		assert.InDelta(t, 0, sum, 1e-9)
	}
}

func TestStandardScalerZeroVariance(t *testing.T) {
	x := matFromRows([][]float64{{5, 1}, {5, 2}, {5, 3}})

	scaler := &StandardScaler{}
	scaler.Fit(x)
	scaled := scaler.Transform(x)

	for i := 0; i < 3; i++ {
		assert.False(t, math.IsNaN(scaled.At(i, 0)), "Zero-variance columns must not produce NaN")
	}
}

func TestROCAUC(t *testing.T) {
	tests := []struct {
		name   string
		yTrue  []int
		yScore []float64
		want   float64
	}{
		{"perfect ranking", []int{0, 0, 1, 1}, []float64{0.1, 0.2, 0.8, 0.9}, 1.0},
		{"inverted ranking", []int{0, 0, 1, 1}, []float64{0.9, 0.8, 0.2, 0.1}, 0.0},
		{"all tied", []int{0, 1, 0, 1}, []float64{0.5, 0.5, 0.5, 0.5}, 0.5},
		{"single class", []int{1, 1, 1}, []float64{0.2, 0.5, 0.9}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ROCAUC(tt.yTrue, tt.yScore), 1e-12)
		})
	}
}

func TestSaveAndLoadModel(t *testing.T) {
	result, err := Train(separableFrame(100), trainingSettings())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "models", "model.gob")
	written, err := SaveModel(result, path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	artifact, err := LoadModel(path)
	require.NoError(t, err)

	assert.Equal(t, result.Model.Weights, artifact.Weights)
	assert.Equal(t, result.FeatureNames, artifact.FeatureNames)

	// A stored artifact still separates the classes.
	high, err := artifact.PredictProba([]float64{75, 310})
	require.NoError(t, err)
	low, err := artifact.PredictProba([]float64{30, 150})
	require.NoError(t, err)
	assert.Greater(t, high, low)
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nope.gob"))
	require.Error(t, err)
}

func TestArtifactRejectsWrongFeatureCount(t *testing.T) {
	artifact := &ModelArtifact{
		Weights:      []float64{1, 2},
		Mean:         []float64{0, 0},
		Std:          []float64{1, 1},
		FeatureNames: []string{"age", "chol"},
	}

	_, err := artifact.PredictProba([]float64{1})
	require.Error(t, err)
}
