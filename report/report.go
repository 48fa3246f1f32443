// Package report builds the downloadable exports: a plain-text report, a
// one-row CSV, and a JSON document. All three are deterministic functions of
// the profile and the prediction result.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"attriscope/hr"
	"attriscope/risk"
)

var printer = message.NewPrinter(language.English)

// Result carries everything the exports render besides the raw inputs.
type Result struct {
	Label       int        `json:"label"`
	Probability float64    `json:"probability"`
	RiskLevel   risk.Level `json:"risk_level"`
	Insights    []string   `json:"insights"`
	Actions     []string   `json:"actions"`
	GeneratedAt time.Time  `json:"generated_at"`
}

func (r Result) Outcome() string {
	if r.Label == 1 {
		return "Attrition"
	}
	return "No Attrition"
}

// Text renders the plain-text report.
func Text(profile hr.Profile, result Result) string {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "EMPLOYEE ATTRITION PREDICTION REPORT")
	fmt.Fprintln(&buf, "====================================")
	fmt.Fprintf(&buf, "Generated: %s\n\n", result.GeneratedAt.UTC().Format(time.RFC3339))

	fmt.Fprintln(&buf, "Employee Profile")
	fmt.Fprintf(&buf, "  Age:               %d\n", profile.Age)
	fmt.Fprintf(&buf, "  Monthly Income:    %s\n", printer.Sprintf("%d", profile.MonthlyIncome))
	fmt.Fprintf(&buf, "  Years at Company:  %d\n", profile.YearsAtCompany)
	fmt.Fprintf(&buf, "  Overtime:          %s\n", profile.OverTime)
	fmt.Fprintf(&buf, "  Job Satisfaction:  %d/4\n", profile.JobSatisfaction)
	fmt.Fprintf(&buf, "  Work-Life Balance: %d/4\n\n", profile.WorkLifeBalance)

	fmt.Fprintln(&buf, "Prediction")
	fmt.Fprintf(&buf, "  Outcome:     %s\n", result.Outcome())
	fmt.Fprintf(&buf, "  Probability: %.2f\n", result.Probability)
	fmt.Fprintf(&buf, "  Risk Level:  %s\n\n", result.RiskLevel.Label())

	fmt.Fprintln(&buf, "Insights")
	for _, insight := range result.Insights {
		fmt.Fprintf(&buf, "  - %s\n", insight)
	}
	buf.WriteByte('\n')

	fmt.Fprintln(&buf, "Recommended Actions")
	for _, action := range result.Actions {
		fmt.Fprintf(&buf, "  - %s\n", action)
	}

	return buf.String()
}

// CSV renders a header plus a single record.
func CSV(profile hr.Profile, result Result) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"age", "monthly_income", "years_at_company", "overtime",
		"job_satisfaction", "work_life_balance",
		"prediction", "probability", "risk_level", "generated_at",
	}
	record := []string{
		strconv.Itoa(profile.Age),
		strconv.Itoa(profile.MonthlyIncome),
		strconv.Itoa(profile.YearsAtCompany),
		profile.OverTime,
		strconv.Itoa(profile.JobSatisfaction),
		strconv.Itoa(profile.WorkLifeBalance),
		result.Outcome(),
		strconv.FormatFloat(result.Probability, 'f', 4, 64),
		string(result.RiskLevel),
		result.GeneratedAt.UTC().Format(time.RFC3339),
	}

	if err := writer.Write(header); err != nil {
		return "", err
	}
	if err := writer.Write(record); err != nil {
		return "", err
	}
	writer.Flush()
	return buf.String(), writer.Error()
}

// JSON renders the full document.
func JSON(profile hr.Profile, result Result) ([]byte, error) {
	document := struct {
		Profile    hr.Profile `json:"profile"`
		Prediction Result     `json:"prediction"`
		Outcome    string     `json:"outcome"`
	}{
		Profile:    profile,
		Prediction: result,
		Outcome:    result.Outcome(),
	}
	return json.MarshalIndent(document, "", "  ")
}
