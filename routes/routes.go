package routes

import (
	"net/http"

	"kpidashboard/handlers"
	"kpidashboard/middlewares"

	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Employees *handlers.EmployeeHandler
	KPIs      *handlers.KPIHandler
	Dashboard *handlers.DashboardHandler
	Reports   *handlers.ReportHandler
}

func SetupRoutes(h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handlers.Health)
	mux.HandleFunc("GET /api/meta", handlers.Meta)

	// Employee routes
	mux.HandleFunc("GET /api/employees", h.Employees.ListEmployees)
	mux.HandleFunc("POST /api/employees", h.Employees.CreateEmployee)
	mux.HandleFunc("GET /api/employees/{id}", h.Employees.GetEmployee)
	mux.HandleFunc("PUT /api/employees/{id}", h.Employees.UpdateEmployee)
	mux.HandleFunc("DELETE /api/employees/{id}", h.Employees.DeleteEmployee)

	// KPI routes
	mux.HandleFunc("GET /api/kpis", h.KPIs.ListKPIs)
	mux.HandleFunc("POST /api/kpis", h.KPIs.CreateKPI)
	mux.HandleFunc("GET /api/kpis/{id}", h.KPIs.GetKPI)
	mux.HandleFunc("PUT /api/kpis/{id}", h.KPIs.UpdateKPI)
	mux.HandleFunc("PATCH /api/kpis/{id}/completion", h.KPIs.UpdateCompletion)
	mux.HandleFunc("DELETE /api/kpis/{id}", h.KPIs.DeleteKPI)

	// Dashboard routes
	mux.HandleFunc("GET /api/dashboard", h.Dashboard.Overview)
	mux.HandleFunc("GET /api/dashboard/annual", h.Dashboard.AnnualTrend)
	mux.HandleFunc("GET /api/dashboard/comparison", h.Dashboard.Comparison)
	mux.HandleFunc("GET /api/dashboard/status", h.Dashboard.StatusDistribution)
	mux.HandleFunc("GET /api/dashboard/summary", h.Dashboard.Summary)

	// Report routes
	mux.HandleFunc("POST /api/reports", h.Reports.RequestReport)
	mux.HandleFunc("GET /api/reports/{id}", h.Reports.GetReport)
	mux.HandleFunc("DELETE /api/reports/{id}", h.Reports.CancelReport)

	var handler http.Handler = mux
	handler = middlewares.LoggingMiddleware(handler)
	handler = middleware.Recoverer(handler)
	handler = middleware.RealIP(handler)
	handler = middleware.RequestID(handler)
	return handler
}
