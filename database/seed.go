package database

import "kpidashboard/models"

// SeedEmployees returns the employees a fresh installation starts with.
func SeedEmployees() []models.Employee {
	return []models.Employee{
		{ID: "emp1", Name: "Nguyễn Văn An", Position: "Trưởng phòng Kinh doanh", Department: "Kinh doanh", Role: models.RoleManager, TeamLead: models.BoardSentinel, Status: models.StatusActive},
		{ID: "emp2", Name: "Trần Thị Bích", Position: "Chuyên viên Marketing", Department: "Marketing", Role: "Nhân viên", TeamLead: "Nguyễn Thị Lệ", Status: models.StatusActive},
		{ID: "emp3", Name: "Lê Văn Cường", Position: "Lập trình viên Senior", Department: "Kỹ thuật", Role: "Nhân viên", TeamLead: "Phạm Văn Dũng", Status: models.StatusActive},
		{ID: "emp4", Name: "Phạm Thị Diễm", Position: "Nhân viên kinh doanh", Department: "Kinh doanh", Role: "Nhân viên", TeamLead: "Nguyễn Văn An", Status: models.StatusActive},
		{ID: "emp5", Name: "Nguyễn Thị Lệ", Position: "Trưởng nhóm Marketing", Department: "Marketing", Role: models.RoleManager, TeamLead: models.BoardSentinel, Status: models.StatusActive},
		{ID: "emp6", Name: "Phạm Văn Dũng", Position: "Trưởng nhóm Kỹ thuật", Department: "Kỹ thuật", Role: models.RoleManager, TeamLead: models.BoardSentinel, Status: models.StatusActive},
	}
}

// SeedKPIs returns the KPIs a fresh installation starts with. Results and
// periods are derived, not written out.
func SeedKPIs() []models.KPI {
	kpis := []models.KPI{
		{ID: "kpi1", Name: "Doanh số bán hàng cá nhân", Objective: "Đạt doanh số mục tiêu", Metric: "Doanh thu bán hàng", Target: 500000000, StartDate: "2024-07-01", EndDate: "2024-07-31", AssigneeID: "emp4", ApproverID: "emp1", Unit: "Doanh thu (VND)", Notes: "Tập trung vào khách hàng tiềm năng", Completion: 110},
		{ID: "kpi2", Name: "Tỷ lệ chuyển đổi quảng cáo", Objective: "Tăng hiệu quả quảng cáo", Metric: "Tỷ lệ click/đơn hàng", Target: 5, StartDate: "2024-07-01", EndDate: "2024-07-31", AssigneeID: "emp2", ApproverID: "emp5", Unit: "%", Notes: "Tối ưu lại nội dung quảng cáo", Completion: 85},
		{ID: "kpi3", Name: "Hoàn thành module A", Objective: "Phát triển tính năng mới", Metric: "Số lượng task hoàn thành", Target: 10, StartDate: "2024-07-01", EndDate: "2024-07-31", AssigneeID: "emp3", ApproverID: "emp6", Unit: "Số lượng", Notes: "Đảm bảo chất lượng code", Completion: 100},
		{ID: "kpi4", Name: "Doanh số team", Objective: "Đạt doanh số team", Metric: "Doanh thu", Target: 2000000000, StartDate: "2024-07-01", EndDate: "2024-07-31", AssigneeID: "emp1", ApproverID: models.BoardSentinel, Unit: "Doanh thu (VND)", Completion: 95},
		{ID: "kpi5", Name: "Doanh số bán hàng cá nhân", Objective: "Đạt doanh số mục tiêu", Metric: "Doanh thu bán hàng", Target: 500000000, StartDate: "2024-06-01", EndDate: "2024-06-30", AssigneeID: "emp4", ApproverID: "emp1", Unit: "Doanh thu (VND)", Notes: "Tập trung vào khách hàng tiềm năng", Completion: 70},
	}
	for i := range kpis {
		// seed dates are literals and always parse
		_ = kpis[i].Normalize()
	}
	return kpis
}
