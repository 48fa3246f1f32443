package ml

import (
	"attriscope/hr"
)

// Column names as they appeared in the training frame after one-hot encoding.
// Numeric and ordinal fields keep their names; the categorical OverTime field
// expands into two indicator columns.
const (
	ColAge             = "Age"
	ColMonthlyIncome   = "MonthlyIncome"
	ColYearsAtCompany  = "YearsAtCompany"
	ColJobSatisfaction = "JobSatisfaction"
	ColWorkLifeBalance = "WorkLifeBalance"
	ColOvertimeNo      = "OverTime_No"
	ColOvertimeYes     = "OverTime_Yes"
)

// EncodeProfile one-hot encodes a profile. A single row only ever produces the
// one OverTime indicator that matches its value; Align zero-fills the other.
func EncodeProfile(profile hr.Profile) map[string]float64 {
	encoded := map[string]float64{
		ColAge:             float64(profile.Age),
		ColMonthlyIncome:   float64(profile.MonthlyIncome),
		ColYearsAtCompany:  float64(profile.YearsAtCompany),
		ColJobSatisfaction: float64(profile.JobSatisfaction),
		ColWorkLifeBalance: float64(profile.WorkLifeBalance),
	}
	if profile.OverTime == hr.OvertimeYes {
		encoded[ColOvertimeYes] = 1
	} else {
		encoded[ColOvertimeNo] = 1
	}
	return encoded
}

// TrainingColumns returns the canonical ordered column list the training
// pipeline produces. The served feature_names artifact normally matches this,
// but the engine always trusts the artifact, not this list.
func TrainingColumns() []string {
	return []string{
		ColAge,
		ColMonthlyIncome,
		ColYearsAtCompany,
		ColJobSatisfaction,
		ColWorkLifeBalance,
		ColOvertimeNo,
		ColOvertimeYes,
	}
}
