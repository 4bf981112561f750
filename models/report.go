package models

import "time"

type ReportScope string

const (
	ScopeCompany  ReportScope = "company"
	ScopeTeam     ReportScope = "team"
	ScopeEmployee ReportScope = "employee"
)

// CompanyScopeName is the scope name used for company wide reports.
const CompanyScopeName = "Toàn công ty"

// ReportRequest is the request body for a report job. Team selects a
// department, EmployeeID a single assignee; EmployeeID wins when both are set.
type ReportRequest struct {
	Year       int    `json:"year" validate:"required,gte=1900,lte=9999"`
	Month      int    `json:"month" validate:"required,gte=1,lte=12"`
	Team       string `json:"team"`
	EmployeeID string `json:"employeeId"`
}

// ReportInput is the snapshot handed to the report generator.
type ReportInput struct {
	KPIs      []KPI
	Employees []Employee
	Month     int
	Year      int
	Scope     ReportScope
	ScopeName string
}

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportRunning   ReportStatus = "running"
	ReportCompleted ReportStatus = "completed"
	ReportCancelled ReportStatus = "cancelled"
)

func (s ReportStatus) Done() bool {
	return s == ReportCompleted || s == ReportCancelled
}

type ReportJob struct {
	ID          string       `json:"id"`
	Status      ReportStatus `json:"status"`
	Scope       ReportScope  `json:"scope"`
	ScopeName   string       `json:"scopeName"`
	Month       int          `json:"month"`
	Year        int          `json:"year"`
	KPICount    int          `json:"kpiCount"`
	Report      string       `json:"report,omitempty"`
	RequestedAt time.Time    `json:"requestedAt"`
	FinishedAt  *time.Time   `json:"finishedAt,omitempty"`
}
