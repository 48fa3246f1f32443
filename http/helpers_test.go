package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"attriscope/hr"
	"attriscope/ml"
	"attriscope/store"
)

func testEngine(t *testing.T) *ml.Engine {
	t.Helper()

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

	matrix, names, err := ml.BuildTrainingMatrix(profiles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scaler := &ml.StandardScaler{}
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

	model := ml.NewLogisticRegression(0.5, 1000)
	if err := model.Train(scaled, labels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	engine, err := ml.NewEngine(&ml.ArtifactSet{
		Model:        model,
		Scaler:       scaler,
		FeatureNames: names,
		ModelType:    "logistic",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return engine
}

func setupHandlers(t *testing.T) *http.ServeMux {
	t.Helper()

	mux := http.NewServeMux()
	RegisterHandlers(mux)
	RegisterExportHandlers(mux)
	RegisterHistoryHandlers(mux)

	SetEngine(testEngine(t))
	if err := store.InitDB(":memory:"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		SetEngine(nil)
		SetServiceStats(nil)
		store.Close()
	})
	return mux
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return bytes.NewReader(payload)
}

func riskyProfile() hr.Profile {
	return hr.Profile{
		Age:             26,
		MonthlyIncome:   2400,
		YearsAtCompany:  1,
		OverTime:        hr.OvertimeYes,
		JobSatisfaction: 1,
		WorkLifeBalance: 1,
	}
}

func stableProfile() hr.Profile {
	return hr.Profile{
		Age:             48,
		MonthlyIncome:   14000,
		YearsAtCompany:  18,
		OverTime:        hr.OvertimeNo,
		JobSatisfaction: 4,
		WorkLifeBalance: 4,
	}
}
