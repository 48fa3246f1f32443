package ml

import (
	"errors"
	"fmt"
	"sort"

	"attriscope/hr"
)

// ErrNoImportances is returned when the loaded model type cannot produce a
// per-feature contribution breakdown.
var ErrNoImportances = errors.New("model does not expose feature importances")

// Contribution is one feature's additive share of the decision score.
// Positive values push toward attrition, negative away from it.
type Contribution struct {
	Feature     string  `json:"feature"`
	Value       float64 `json:"value"`
	ScaledValue float64 `json:"scaled_value"`
	Weight      float64 `json:"weight"`
	Score       float64 `json:"score"`
}

// Explain decomposes a prediction into per-feature contributions
// (weight x scaled value), ordered by descending magnitude.
func (e *Engine) Explain(profile hr.Profile) ([]Contribution, error) {
	e.mu.RLock()
	artifacts := e.artifacts
	e.mu.RUnlock()

	weighted, ok := artifacts.Model.(WeightedClassifier)
	if !ok {
		return nil, fmt.Errorf("%w: model type %q", ErrNoImportances, artifacts.ModelType)
	}

	encoded := EncodeProfile(profile)
	aligned, err := Align(encoded, artifacts.FeatureNames)
	if err != nil {
		return nil, err
	}
	scaled, err := artifacts.Scaler.Transform(aligned)
	if err != nil {
		return nil, err
	}

	weights := weighted.Weights()
	if len(weights) != len(scaled) {
		return nil, errors.New("weight width does not match feature row")
	}

	contributions := make([]Contribution, len(scaled))
	for i, name := range artifacts.FeatureNames {
		contributions[i] = Contribution{
			Feature:     name,
			Value:       aligned[i],
			ScaledValue: scaled[i],
			Weight:      weights[i],
			Score:       weights[i] * scaled[i],
		}
	}
	sort.SliceStable(contributions, func(i, j int) bool {
		return abs(contributions[i].Score) > abs(contributions[j].Score)
	})
	return contributions, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
