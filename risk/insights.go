package risk

import "attriscope/hr"

// Insights returns the rule-based observations for a profile. Each rule is a
// literal comparison on one form field; the strings are fixed.
func Insights(profile hr.Profile) []string {
	insights := make([]string, 0, 6)

	if profile.OverTime == hr.OvertimeYes {
		insights = append(insights, "Employee is working overtime, a known driver of burnout and attrition.")
	}
	if profile.JobSatisfaction <= 2 {
		insights = append(insights, "Job satisfaction is low; dissatisfied employees leave at a much higher rate.")
	}
	if profile.WorkLifeBalance <= 2 {
		insights = append(insights, "Work-life balance is rated poorly, which compounds other attrition drivers.")
	}
	if profile.YearsAtCompany <= 2 {
		insights = append(insights, "Short tenure: employees in their first two years are the most likely to leave.")
	}
	if profile.MonthlyIncome < 3000 {
		insights = append(insights, "Monthly income is in the lowest band, increasing the pull of outside offers.")
	}
	if len(insights) == 0 {
		insights = append(insights, "No individual risk factors stand out for this employee.")
	}
	return insights
}

// Actions returns the recommended HR follow-ups for a risk level.
func Actions(level Level) []string {
	switch level {
	case LevelHigh:
		return []string{
			"Schedule a one-on-one retention conversation within the week.",
			"Review compensation against market benchmarks.",
			"Reduce or redistribute overtime load immediately.",
		}
	case LevelMedium:
		return []string{
			"Check in during the next scheduled one-on-one.",
			"Discuss career development and growth opportunities.",
		}
	default:
		return []string{
			"No immediate action needed; continue regular engagement.",
		}
	}
}
