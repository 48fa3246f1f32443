package ml

import (
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"attriscope/hr"
)

const defaultCacheSize = 256

// Prediction is the outcome of one pipeline run. Probability is P(attrition).
type Prediction struct {
	Label       int     `json:"label"`
	Probability float64 `json:"probability"`
}

// Engine runs the inference pipeline: encode, align, scale, predict.
// Artifacts are read-only between Reload calls; identical profiles are served
// from an LRU cache.
type Engine struct {
	mu        sync.RWMutex
	artifacts *ArtifactSet
	cache     *lru.Cache[string, Prediction]
}

func NewEngine(artifacts *ArtifactSet) (*Engine, error) {
	if artifacts == nil {
		return nil, errors.New("artifacts is nil")
	}
	cache, err := lru.New[string, Prediction](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &Engine{artifacts: artifacts, cache: cache}, nil
}

func (e *Engine) Evaluate(profile hr.Profile) (Prediction, error) {
	// Capture artifacts and cache together so a result computed with an old
	// model can only land in that model's cache, never the current one.
	e.mu.RLock()
	artifacts := e.artifacts
	cache := e.cache
	e.mu.RUnlock()

	key := profile.Fingerprint()
	if cached, ok := cache.Get(key); ok {
		return cached, nil
	}

	row, err := e.vectorize(profile, artifacts)
	if err != nil {
		return Prediction{}, err
	}

	label, probability, err := artifacts.Model.Predict(row)
	if err != nil {
		return Prediction{}, err
	}

	prediction := Prediction{Label: label, Probability: probability}
	cache.Add(key, prediction)
	return prediction, nil
}

// Reload swaps in a freshly loaded artifact set together with an empty cache,
// so in-flight evaluations against the retired set cannot repopulate it.
func (e *Engine) Reload(artifacts *ArtifactSet) error {
	if artifacts == nil {
		return errors.New("artifacts is nil")
	}
	cache, err := lru.New[string, Prediction](defaultCacheSize)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.artifacts = artifacts
	e.cache = cache
	e.mu.Unlock()
	return nil
}

func (e *Engine) Artifacts() *ArtifactSet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.artifacts
}

func (e *Engine) FeatureNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.artifacts.FeatureNames...)
}

func (e *Engine) vectorize(profile hr.Profile, artifacts *ArtifactSet) ([]float64, error) {
	encoded := EncodeProfile(profile)
	aligned, err := Align(encoded, artifacts.FeatureNames)
	if err != nil {
		return nil, err
	}
	return artifacts.Scaler.Transform(aligned)
}
