package ml

import (
	"encoding/json"
	"errors"
	"math"
	"os"
)

// LogisticRegression is the attrition classifier. Weights are persisted as a
// JSON document alongside the scaler and feature name list.
type LogisticRegression struct {
	params logisticParams
}

type logisticParams struct {
	Weights      []float64 `json:"weights"`
	Intercept    float64   `json:"intercept"`
	Threshold    float64   `json:"threshold"`
	LearningRate float64   `json:"learning_rate,omitempty"`
	Epochs       int       `json:"epochs,omitempty"`
}

func NewLogisticRegression(learningRate float64, epochs int) *LogisticRegression {
	if learningRate <= 0 {
		learningRate = 0.1
	}
	if epochs <= 0 {
		epochs = 500
	}
	return &LogisticRegression{params: logisticParams{
		Threshold:    0.5,
		LearningRate: learningRate,
		Epochs:       epochs,
	}}
}

func (lr *LogisticRegression) Train(features [][]float64, labels []int) error {
	if len(features) == 0 || len(labels) == 0 {
		return errors.New("features or labels empty")
	}
	if len(features) != len(labels) {
		return errors.New("features and labels size mismatch")
	}
	width := len(features[0])
	for _, row := range features {
		if len(row) != width {
			return errors.New("ragged feature matrix")
		}
	}
	for _, label := range labels {
		if label != 0 && label != 1 {
			return errors.New("labels must be 0 or 1")
		}
	}

	if lr.params.LearningRate <= 0 {
		lr.params.LearningRate = 0.1
	}
	if lr.params.Epochs <= 0 {
		lr.params.Epochs = 500
	}
	if lr.params.Threshold <= 0 || lr.params.Threshold >= 1 {
		lr.params.Threshold = 0.5
	}

	weights := make([]float64, width)
	bias := 0.0
	n := float64(len(features))

	// Full-batch gradient descent on log loss.
	for epoch := 0; epoch < lr.params.Epochs; epoch++ {
		gradW := make([]float64, width)
		gradB := 0.0
		for i, row := range features {
			p := sigmoid(dot(weights, row) + bias)
			diff := p - float64(labels[i])
			for j, v := range row {
				gradW[j] += diff * v
			}
			gradB += diff
		}
		for j := range weights {
			weights[j] -= lr.params.LearningRate * gradW[j] / n
		}
		bias -= lr.params.LearningRate * gradB / n
	}

	lr.params.Weights = weights
	lr.params.Intercept = bias
	return nil
}

func (lr *LogisticRegression) Predict(features []float64) (int, float64, error) {
	if len(lr.params.Weights) == 0 {
		return 0, 0, errors.New("model not trained")
	}
	if len(features) != len(lr.params.Weights) {
		return 0, 0, errors.New("feature width mismatch")
	}
	probability := sigmoid(dot(lr.params.Weights, features) + lr.params.Intercept)
	label := 0
	if probability >= lr.params.Threshold {
		label = 1
	}
	return label, probability, nil
}

func (lr *LogisticRegression) Save(path string) error {
	if len(lr.params.Weights) == 0 {
		return errors.New("model not trained")
	}
	payload, err := json.Marshal(lr.params)
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (lr *LogisticRegression) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var params logisticParams
	if err := json.Unmarshal(payload, &params); err != nil {
		return err
	}
	if len(params.Weights) == 0 {
		return errors.New("model file has no weights")
	}
	if params.Threshold <= 0 || params.Threshold >= 1 {
		params.Threshold = 0.5
	}
	lr.params = params
	return nil
}

func (lr *LogisticRegression) Weights() []float64 {
	return append([]float64(nil), lr.params.Weights...)
}

func (lr *LogisticRegression) Bias() float64 {
	return lr.params.Intercept
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
