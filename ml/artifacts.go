package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Artifact file names inside the models directory.
const (
	ModelFile        = "attrition_model.json"
	ScalerFile       = "feature_scaler.json"
	FeatureNamesFile = "feature_names.json"
)

// ArtifactSet is the trio of persisted artifacts the service needs: the
// trained classifier, the fitted scaler, and the ordered training-time
// feature name list. Loaded once, read-only afterwards.
type ArtifactSet struct {
	Model        Classifier
	Scaler       *StandardScaler
	FeatureNames []string
	ModelType    string
	LoadedAt     time.Time
}

func LoadArtifacts(dir, modelType string) (*ArtifactSet, error) {
	model, err := LoadModel(modelType, filepath.Join(dir, ModelFile))
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	scaler := &StandardScaler{}
	if err := scaler.Load(filepath.Join(dir, ScalerFile)); err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}

	names, err := LoadFeatureNames(filepath.Join(dir, FeatureNamesFile))
	if err != nil {
		return nil, fmt.Errorf("load feature names: %w", err)
	}

	if len(scaler.Mean) != len(names) {
		return nil, fmt.Errorf("scaler width %d does not match %d feature names",
			len(scaler.Mean), len(names))
	}

	return &ArtifactSet{
		Model:        model,
		Scaler:       scaler,
		FeatureNames: names,
		ModelType:    modelType,
		LoadedAt:     time.Now().UTC(),
	}, nil
}

func LoadFeatureNames(path string) ([]string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(payload, &names); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.New("feature name list is empty")
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return nil, errors.New("feature name list has empty entry")
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate feature name %q", name)
		}
		seen[name] = true
	}
	return names, nil
}

func SaveFeatureNames(path string, names []string) error {
	if len(names) == 0 {
		return errors.New("feature name list is empty")
	}
	payload, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}
