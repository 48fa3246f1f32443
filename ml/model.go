package ml

// Classifier is a trained binary classifier. Predict returns the class label
// and the probability of the positive class (attrition).
type Classifier interface {
	Train(features [][]float64, labels []int) error
	Predict(features []float64) (int, float64, error)
	Save(path string) error
	Load(path string) error
}

// WeightedClassifier is implemented by models that expose per-feature weights,
// which is what the contribution breakdown needs. Models loaded from foreign
// artifacts may not implement it.
type WeightedClassifier interface {
	Classifier
	Weights() []float64
	Bias() float64
}
