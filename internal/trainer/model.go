// Package trainer fits and evaluates the binary heart-disease risk model.
package trainer

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler standardizes each feature column to zero mean and unit
// variance using statistics fitted on the training split only.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

// Fit computes per-column mean and standard deviation. Columns with zero
// variance get a unit deviation so Transform stays defined.
func (s *StandardScaler) Fit(x *mat.Dense) {
	rows, cols := x.Dims()
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.Mean[j] = mean
		s.Std[j] = std
	}
}

// Transform returns a standardized copy of x.
func (s *StandardScaler) Transform(x *mat.Dense) *mat.Dense {
	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, (x.At(i, j)-s.Mean[j])/s.Std[j])
		}
	}
	return out
}

// LogisticRegression is a binary classifier fitted with batch gradient
// descent on the logistic loss.
type LogisticRegression struct {
	Weights      []float64
	Bias         float64
	LearningRate float64
	Epochs       int
}

// NewLogisticRegression initializes a model for the given feature count.
func NewLogisticRegression(nFeatures int, learningRate float64, epochs int) *LogisticRegression {
	return &LogisticRegression{
		Weights:      make([]float64, nFeatures),
		LearningRate: learningRate,
		Epochs:       epochs,
	}
}

// Fit trains the model on x (rows are samples) against binary labels y.
func (m *LogisticRegression) Fit(x *mat.Dense, y []float64) {
	rows, cols := x.Dims()
	n := float64(rows)

	weights := mat.NewVecDense(cols, m.Weights)
	scores := mat.NewVecDense(rows, nil)
	diff := make([]float64, rows)
	grad := mat.NewVecDense(cols, nil)

	for epoch := 0; epoch < m.Epochs; epoch++ {
		scores.MulVec(x, weights)
		for i := 0; i < rows; i++ {
			diff[i] = sigmoid(scores.AtVec(i)+m.Bias) - y[i]
		}

		grad.MulVec(x.T(), mat.NewVecDense(rows, diff))
		weights.AddScaledVec(weights, -m.LearningRate/n, grad)

		biasGrad := 0.0
		for _, d := range diff {
			biasGrad += d
		}
		m.Bias -= m.LearningRate * biasGrad / n
	}

	copy(m.Weights, weights.RawVector().Data)
}

// PredictProba returns the probability of class 1 for each row of x.
func (m *LogisticRegression) PredictProba(x *mat.Dense) []float64 {
	rows, _ := x.Dims()
	scores := mat.NewVecDense(rows, nil)
	scores.MulVec(x, mat.NewVecDense(len(m.Weights), m.Weights))

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = sigmoid(scores.AtVec(i) + m.Bias)
	}
	return out
}

// Predict returns class labels using a 0.5 probability threshold.
func (m *LogisticRegression) Predict(x *mat.Dense) []int {
	proba := m.PredictProba(x)
	out := make([]int, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
