package ml

import "errors"

// Align reindexes an encoded row against the persisted training-time column
// list: the result has exactly one value per expected column, in list order,
// with absent columns filled with zero. This is what keeps the classifier from
// seeing a shifted or narrower row when the categorical values present at
// inference time differ from those seen at training time.
func Align(encoded map[string]float64, featureNames []string) ([]float64, error) {
	if len(featureNames) == 0 {
		return nil, errors.New("feature names is empty")
	}
	row := make([]float64, len(featureNames))
	for i, name := range featureNames {
		row[i] = encoded[name]
	}
	return row, nil
}
