package models

type WorkStatus string

const (
	StatusActive   WorkStatus = "ACTIVE"
	StatusInactive WorkStatus = "INACTIVE"
)

func (s WorkStatus) Label() string {
	switch s {
	case StatusActive:
		return "Đang làm việc"
	case StatusInactive:
		return "Đã nghỉ"
	default:
		return string(s)
	}
}

const (
	// RoleManager is the only role that may approve KPIs or lead a team.
	RoleManager = "Quản lý"
	// BoardSentinel stands in for an approver or team lead at board level.
	BoardSentinel = "BOD"
)

var (
	Departments = []string{"Vận Hành", "Marketing", "Kỹ thuật", "Nhân sự"}
	Units       = []string{"%", "Số lượng", "Doanh thu (VND)", "Điểm"}
)

type Employee struct {
	ID         string     `json:"id" bson:"id"`
	Name       string     `json:"name" bson:"name"`
	Position   string     `json:"position" bson:"position"`
	Department string     `json:"department" bson:"department"`
	Role       string     `json:"role" bson:"role"`
	TeamLead   string     `json:"teamLead" bson:"team_lead"`
	Status     WorkStatus `json:"status" bson:"status"`
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

func (e Employee) IsManager() bool {
	return e.Role == RoleManager
}

// EmployeeInput is the request body for creating or replacing an employee.
type EmployeeInput struct {
	Name       string     `json:"name" validate:"required"`
	Position   string     `json:"position"`
	Department string     `json:"department" validate:"required"`
	Role       string     `json:"role" validate:"required"`
	TeamLead   string     `json:"teamLead"`
	Status     WorkStatus `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

func (in EmployeeInput) ToEmployee(id string) Employee {
	return Employee{
		ID:         id,
		Name:       in.Name,
		Position:   in.Position,
		Department: in.Department,
		Role:       in.Role,
		TeamLead:   in.TeamLead,
		Status:     in.Status,
	}
}

// EmployeeFilter narrows the employee list; zero value lists everyone.
type EmployeeFilter struct {
	ActiveOnly   bool
	ManagersOnly bool
}

func (f EmployeeFilter) Match(e Employee) bool {
	if f.ActiveOnly && !e.IsActive() {
		return false
	}
	if f.ManagersOnly && !e.IsManager() {
		return false
	}
	return true
}
