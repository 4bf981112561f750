package models

// ComparisonMode selects how the comparison chart groups KPIs.
type ComparisonMode string

const (
	CompareByEmployee ComparisonMode = "employee"
	CompareByTeam     ComparisonMode = "team"
)

func (m ComparisonMode) IsValid() bool {
	return m == CompareByEmployee || m == CompareByTeam
}

type MonthlyStat struct {
	Month      string  `json:"month"`
	Completion float64 `json:"completion"`
	Count      int     `json:"count"`
}

type ComparisonEntry struct {
	Name       string  `json:"name"`
	Completion float64 `json:"completion"`
}

type StatusCount struct {
	Name  EvaluationResult `json:"name"`
	Label string           `json:"label"`
	Value int              `json:"value"`
}

type HeadlineStats struct {
	Year              int    `json:"year"`
	Month             int    `json:"month"`
	TotalKPIs         int    `json:"totalKpis"`
	AchievedKPIs      int    `json:"achievedKpis"`
	AverageCompletion string `json:"averageCompletion"`
}

type DashboardOverview struct {
	Headline   HeadlineStats     `json:"headline"`
	Annual     []MonthlyStat     `json:"annual"`
	Comparison []ComparisonEntry `json:"comparison"`
	Status     []StatusCount     `json:"status"`
}

type Meta struct {
	Departments       []string           `json:"departments"`
	Units             []string           `json:"units"`
	EvaluationResults []EvaluationResult `json:"evaluationResults"`
	WorkStatuses      []WorkStatus       `json:"workStatuses"`
	ManagerRole       string             `json:"managerRole"`
	BoardSentinel     string             `json:"boardSentinel"`
}

func NewMeta() Meta {
	return Meta{
		Departments:       Departments,
		Units:             Units,
		EvaluationResults: EvaluationResults(),
		WorkStatuses:      []WorkStatus{StatusActive, StatusInactive},
		ManagerRole:       RoleManager,
		BoardSentinel:     BoardSentinel,
	}
}
