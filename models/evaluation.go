package models

type EvaluationResult string

const (
	ResultExcellent        EvaluationResult = "EXCELLENT"
	ResultGood             EvaluationResult = "GOOD"
	ResultNeedsImprovement EvaluationResult = "NEEDS_IMPROVEMENT"
	ResultNotMet           EvaluationResult = "NOT_MET"
)

// Completion thresholds, checked from the top down.
const (
	ExcellentThreshold        = 100.0
	GoodThreshold             = 80.0
	NeedsImprovementThreshold = 50.0
)

// EvaluationResults returns every category in chart legend order.
func EvaluationResults() []EvaluationResult {
	return []EvaluationResult{
		ResultExcellent,
		ResultGood,
		ResultNeedsImprovement,
		ResultNotMet,
	}
}

// Classify maps a completion percentage to its evaluation category.
// Every input, NaN included, maps to exactly one category.
func Classify(completion float64) EvaluationResult {
	switch {
	case completion >= ExcellentThreshold:
		return ResultExcellent
	case completion >= GoodThreshold:
		return ResultGood
	case completion >= NeedsImprovementThreshold:
		return ResultNeedsImprovement
	default:
		return ResultNotMet
	}
}

// ClampCompletion floors a completion value at zero. It has no upper bound.
func ClampCompletion(completion float64) float64 {
	if completion < 0 {
		return 0
	}
	return completion
}

func (r EvaluationResult) IsValid() bool {
	switch r {
	case ResultExcellent, ResultGood, ResultNeedsImprovement, ResultNotMet:
		return true
	}
	return false
}

// IsAchieved reports whether the result counts as an achieved KPI.
func (r EvaluationResult) IsAchieved() bool {
	return r == ResultExcellent || r == ResultGood
}

func (r EvaluationResult) Label() string {
	switch r {
	case ResultExcellent:
		return "Xuất sắc"
	case ResultGood:
		return "Tốt"
	case ResultNeedsImprovement:
		return "Cần cải thiện"
	case ResultNotMet:
		return "Không đạt"
	default:
		return string(r)
	}
}
