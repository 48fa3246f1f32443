package ml

import (
	"errors"
	"testing"

	"attriscope/hr"
)

func trainingProfiles() ([]hr.Profile, []int) {
	profiles := []hr.Profile{
		{Age: 25, MonthlyIncome: 2500, YearsAtCompany: 1, OverTime: hr.OvertimeYes, JobSatisfaction: 1, WorkLifeBalance: 1},
		{Age: 28, MonthlyIncome: 3000, YearsAtCompany: 2, OverTime: hr.OvertimeYes, JobSatisfaction: 2, WorkLifeBalance: 1},
		{Age: 24, MonthlyIncome: 2200, YearsAtCompany: 1, OverTime: hr.OvertimeYes, JobSatisfaction: 1, WorkLifeBalance: 2},
		{Age: 31, MonthlyIncome: 2800, YearsAtCompany: 2, OverTime: hr.OvertimeYes, JobSatisfaction: 2, WorkLifeBalance: 2},
		{Age: 45, MonthlyIncome: 12000, YearsAtCompany: 15, OverTime: hr.OvertimeNo, JobSatisfaction: 4, WorkLifeBalance: 4},
		{Age: 50, MonthlyIncome: 15000, YearsAtCompany: 20, OverTime: hr.OvertimeNo, JobSatisfaction: 3, WorkLifeBalance: 4},
		{Age: 42, MonthlyIncome: 11000, YearsAtCompany: 12, OverTime: hr.OvertimeNo, JobSatisfaction: 4, WorkLifeBalance: 3},
		{Age: 55, MonthlyIncome: 18000, YearsAtCompany: 25, OverTime: hr.OvertimeNo, JobSatisfaction: 3, WorkLifeBalance: 3},
	}
	labels := []int{1, 1, 1, 1, 0, 0, 0, 0}
	return profiles, labels
}

func newTestArtifacts(t *testing.T) *ArtifactSet {
	t.Helper()

	profiles, labels := trainingProfiles()
	matrix, names, err := BuildTrainingMatrix(profiles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scaler := &StandardScaler{}
	if err := scaler.Fit(matrix); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scaled := make([][]float64, len(matrix))
	for i, row := range matrix {
		scaled[i], err = scaler.Transform(row)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	model := NewLogisticRegression(0.5, 1000)
	if err := model.Train(scaled, labels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return &ArtifactSet{
		Model:        model,
		Scaler:       scaler,
		FeatureNames: names,
		ModelType:    "logistic",
	}
}

func TestEngineEvaluate(t *testing.T) {
	engine, err := NewEngine(newTestArtifacts(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	atRisk := hr.Profile{Age: 26, MonthlyIncome: 2400, YearsAtCompany: 1, OverTime: hr.OvertimeYes, JobSatisfaction: 1, WorkLifeBalance: 1}
	settled := hr.Profile{Age: 48, MonthlyIncome: 14000, YearsAtCompany: 18, OverTime: hr.OvertimeNo, JobSatisfaction: 4, WorkLifeBalance: 4}

	risky, err := engine.Evaluate(atRisk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stable, err := engine.Evaluate(settled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if risky.Probability <= stable.Probability {
		t.Fatalf("expected at-risk profile to score higher: %f vs %f", risky.Probability, stable.Probability)
	}
	if risky.Label != 1 || stable.Label != 0 {
		t.Fatalf("unexpected labels: %d / %d", risky.Label, stable.Label)
	}
	if risky.Probability < 0 || risky.Probability > 1 {
		t.Fatalf("probability out of range: %f", risky.Probability)
	}
}

func TestEngineCachesIdenticalProfiles(t *testing.T) {
	engine, err := NewEngine(newTestArtifacts(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile := hr.Profile{Age: 30, MonthlyIncome: 5000, YearsAtCompany: 5, OverTime: hr.OvertimeNo, JobSatisfaction: 3, WorkLifeBalance: 3}
	first, err := engine.Evaluate(profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := engine.cache.Get(profile.Fingerprint()); !ok {
		t.Fatal("expected result to be cached")
	}
	second, err := engine.Evaluate(profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("cached result should be identical")
	}
}

func TestEngineReloadPurgesCache(t *testing.T) {
	engine, err := NewEngine(newTestArtifacts(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile := hr.Profile{Age: 30, MonthlyIncome: 5000, YearsAtCompany: 5, OverTime: hr.OvertimeNo, JobSatisfaction: 3, WorkLifeBalance: 3}
	if _, err := engine.Evaluate(profile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := engine.Reload(newTestArtifacts(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := engine.cache.Get(profile.Fingerprint()); ok {
		t.Fatal("reload should drop cached results")
	}

	if err := engine.Reload(nil); err == nil {
		t.Fatal("expected error for nil artifacts")
	}
}

type gatedModel struct {
	entered     chan struct{}
	release     chan struct{}
	probability float64
}

func (m *gatedModel) Train([][]float64, []int) error { return nil }
func (m *gatedModel) Save(string) error              { return nil }
func (m *gatedModel) Load(string) error              { return nil }

func (m *gatedModel) Predict([]float64) (int, float64, error) {
	if m.entered != nil {
		close(m.entered)
		m.entered = nil
	}
	if m.release != nil {
		<-m.release
	}
	label := 0
	if m.probability >= 0.5 {
		label = 1
	}
	return label, m.probability, nil
}

func TestEngineReloadRacingEvaluate(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	retiring := newTestArtifacts(t)
	retiring.Model = &gatedModel{entered: entered, release: release, probability: 0.1}

	engine, err := NewEngine(retiring)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile := hr.Profile{Age: 30, MonthlyIncome: 5000, YearsAtCompany: 5, OverTime: hr.OvertimeNo, JobSatisfaction: 3, WorkLifeBalance: 3}

	done := make(chan Prediction, 1)
	go func() {
		p, err := engine.Evaluate(profile)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		done <- p
	}()

	// Swap artifacts while the first Evaluate is blocked inside Predict.
	<-entered
	fresh := newTestArtifacts(t)
	fresh.Model = &gatedModel{probability: 0.9}
	if err := engine.Reload(fresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	close(release)
	inflight := <-done
	if inflight.Probability != 0.1 {
		t.Fatalf("in-flight evaluate should finish on the set it started with, got %f", inflight.Probability)
	}

	after, err := engine.Evaluate(profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.Probability != 0.9 {
		t.Fatalf("evaluate after reload served a retired result: %f", after.Probability)
	}
}

func TestEngineExplain(t *testing.T) {
	engine, err := NewEngine(newTestArtifacts(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile := hr.Profile{Age: 26, MonthlyIncome: 2400, YearsAtCompany: 1, OverTime: hr.OvertimeYes, JobSatisfaction: 1, WorkLifeBalance: 1}
	contributions, err := engine.Explain(profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contributions) != len(engine.FeatureNames()) {
		t.Fatalf("expected one contribution per feature, got %d", len(contributions))
	}
	for i := 1; i < len(contributions); i++ {
		if abs(contributions[i].Score) > abs(contributions[i-1].Score) {
			t.Fatal("contributions should be sorted by descending magnitude")
		}
	}
}

type opaqueModel struct{}

func (opaqueModel) Train([][]float64, []int) error          { return nil }
func (opaqueModel) Predict([]float64) (int, float64, error) { return 0, 0.5, nil }
func (opaqueModel) Save(string) error                       { return nil }
func (opaqueModel) Load(string) error                       { return nil }

func TestEngineExplainWithoutWeights(t *testing.T) {
	artifacts := newTestArtifacts(t)
	artifacts.Model = opaqueModel{}
	artifacts.ModelType = "opaque"

	engine, err := NewEngine(artifacts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile := hr.Profile{Age: 30, MonthlyIncome: 5000, YearsAtCompany: 5, OverTime: hr.OvertimeNo, JobSatisfaction: 3, WorkLifeBalance: 3}
	_, err = engine.Explain(profile)
	if !errors.Is(err, ErrNoImportances) {
		t.Fatalf("expected ErrNoImportances, got %v", err)
	}
}
