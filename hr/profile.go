package hr

import (
	"errors"
	"fmt"
)

const (
	OvertimeYes = "Yes"
	OvertimeNo  = "No"
)

// Profile holds the six form fields describing a single employee.
// It has no identity and lives only for the duration of one prediction.
type Profile struct {
	Age             int    `json:"age"`
	MonthlyIncome   int    `json:"monthly_income"`
	YearsAtCompany  int    `json:"years_at_company"`
	OverTime        string `json:"overtime"`
	JobSatisfaction int    `json:"job_satisfaction"`
	WorkLifeBalance int    `json:"work_life_balance"`
}

func (p Profile) Validate() error {
	if p.Age < 18 || p.Age > 65 {
		return fmt.Errorf("age must be between 18 and 65, got %d", p.Age)
	}
	if p.MonthlyIncome < 1000 || p.MonthlyIncome > 50000 {
		return fmt.Errorf("monthly_income must be between 1000 and 50000, got %d", p.MonthlyIncome)
	}
	if p.YearsAtCompany < 0 || p.YearsAtCompany > 40 {
		return fmt.Errorf("years_at_company must be between 0 and 40, got %d", p.YearsAtCompany)
	}
	if p.OverTime != OvertimeYes && p.OverTime != OvertimeNo {
		return errors.New(`overtime must be "Yes" or "No"`)
	}
	if p.JobSatisfaction < 1 || p.JobSatisfaction > 4 {
		return fmt.Errorf("job_satisfaction must be between 1 and 4, got %d", p.JobSatisfaction)
	}
	if p.WorkLifeBalance < 1 || p.WorkLifeBalance > 4 {
		return fmt.Errorf("work_life_balance must be between 1 and 4, got %d", p.WorkLifeBalance)
	}
	return nil
}

// Fingerprint is a stable cache key for identical inputs.
func (p Profile) Fingerprint() string {
	return fmt.Sprintf("%d|%d|%d|%s|%d|%d",
		p.Age, p.MonthlyIncome, p.YearsAtCompany, p.OverTime, p.JobSatisfaction, p.WorkLifeBalance)
}
