package risk

// Level is the three-way risk bucket shown on the dashboard.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Bucket thresholds on the attrition probability.
const (
	lowCutoff    = 0.3
	mediumCutoff = 0.6
)

// Bucket maps an attrition probability into exactly three partitions:
// [0, 0.3) low, [0.3, 0.6) medium, [0.6, 1] high.
func Bucket(probability float64) Level {
	switch {
	case probability < lowCutoff:
		return LevelLow
	case probability < mediumCutoff:
		return LevelMedium
	default:
		return LevelHigh
	}
}

func (l Level) Label() string {
	switch l {
	case LevelLow:
		return "Low Risk"
	case LevelMedium:
		return "Medium Risk"
	case LevelHigh:
		return "High Risk"
	default:
		return "Unknown"
	}
}
