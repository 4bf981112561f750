package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format of KPI start and end dates.
const DateLayout = "2006-01-02"

type KPI struct {
	ID         string           `json:"id" bson:"id"`
	Name       string           `json:"name" bson:"name"`
	Objective  string           `json:"objective" bson:"objective"`
	Metric     string           `json:"metric" bson:"metric"`
	Target     float64          `json:"target" bson:"target"`
	StartDate  string           `json:"startDate" bson:"start_date"`
	EndDate    string           `json:"endDate" bson:"end_date"`
	AssigneeID string           `json:"assigneeId" bson:"assignee_id"`
	ApproverID string           `json:"approverId" bson:"approver_id"`
	Unit       string           `json:"unit" bson:"unit"`
	Notes      string           `json:"notes" bson:"notes"`
	Completion float64          `json:"completion" bson:"completion"`
	Result     EvaluationResult `json:"result" bson:"result"`
	Month      int              `json:"month" bson:"month"`
	Year       int              `json:"year" bson:"year"`
}

// SetCompletion is the only way completion changes; the result follows it.
func (k *KPI) SetCompletion(completion float64) {
	k.Completion = completion
	k.Result = Classify(completion)
}

// Normalize re-derives every denormalized field: the result from completion
// and month/year from the start date. Caller supplied values are discarded.
func (k *KPI) Normalize() error {
	month, year, err := MonthYear(k.StartDate)
	if err != nil {
		return err
	}
	k.Month = month
	k.Year = year
	k.SetCompletion(k.Completion)
	return nil
}

// InPeriod reports whether the KPI is filed under the given year and month.
func (k KPI) InPeriod(year, month int) bool {
	return k.Year == year && k.Month == month
}

// MonthYear extracts the month and year of a YYYY-MM-DD date.
func MonthYear(date string) (int, int, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start date %q: %w", date, err)
	}
	return int(t.Month()), t.Year(), nil
}

// KPIInput is the request body for creating or replacing a KPI. It carries
// neither result nor month/year: those are always derived. A negative
// completion is floored at zero, as on the inline edit.
type KPIInput struct {
	Name       string  `json:"name" validate:"required"`
	Objective  string  `json:"objective"`
	Metric     string  `json:"metric"`
	Target     float64 `json:"target" validate:"gte=0"`
	StartDate  string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	AssigneeID string  `json:"assigneeId" validate:"required"`
	ApproverID string  `json:"approverId" validate:"required"`
	Unit       string  `json:"unit"`
	Notes      string  `json:"notes"`
	Completion float64 `json:"completion"`
}

func (in KPIInput) ToKPI(id string) KPI {
	return KPI{
		ID:         id,
		Name:       in.Name,
		Objective:  in.Objective,
		Metric:     in.Metric,
		Target:     in.Target,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		AssigneeID: in.AssigneeID,
		ApproverID: in.ApproverID,
		Unit:       in.Unit,
		Notes:      in.Notes,
		Completion: ClampCompletion(in.Completion),
	}
}

type CompletionInput struct {
	Completion *float64 `json:"completion" validate:"required"`
}

// KPIFilter narrows the KPI list. Month and Year are always applied; the
// other fields only when non-empty.
type KPIFilter struct {
	Month      int
	Year       int
	AssigneeID string
	Department string
	Result     EvaluationResult
}
