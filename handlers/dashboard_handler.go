package handlers

import (
	"context"
	"net/http"
	"time"

	"kpidashboard/models"
	"kpidashboard/services"
	"kpidashboard/utils"
)

type DashboardHandler struct {
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

type dashboardQuery struct {
	year  int
	month int
	mode  models.ComparisonMode
	team  string
}

// parseDashboardQuery reads year, month, mode and team. The period defaults
// to the current month and the mode to per employee.
func parseDashboardQuery(w http.ResponseWriter, r *http.Request) (dashboardQuery, bool) {
	year, month, errs := utils.Period(r, time.Now())

	q := dashboardQuery{
		year:  year,
		month: month,
		mode:  models.ComparisonMode(r.URL.Query().Get("mode")),
		team:  r.URL.Query().Get("team"),
	}
	if q.mode == "" {
		q.mode = models.CompareByEmployee
	}
	if !q.mode.IsValid() {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["mode"] = "must be employee or team"
	}

	if errs != nil {
		utils.HandleValidationResponse(w, http.StatusBadRequest, errs)
		return q, false
	}
	return q, true
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	q, ok := parseDashboardQuery(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	overview := h.service.Overview(ctx, q.year, q.month, q.mode, q.team)
	utils.HandleDataResponse(w, "Dashboard retrieved successfully", overview, http.StatusOK)
}

func (h *DashboardHandler) AnnualTrend(w http.ResponseWriter, r *http.Request) {
	q, ok := parseDashboardQuery(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	utils.HandleDataResponse(w, "Annual trend retrieved successfully", h.service.AnnualTrend(ctx, q.year), http.StatusOK)
}

func (h *DashboardHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	q, ok := parseDashboardQuery(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	entries := h.service.Comparison(ctx, q.year, q.month, q.mode, q.team)
	utils.HandleDataResponse(w, "Comparison retrieved successfully", entries, http.StatusOK)
}

func (h *DashboardHandler) StatusDistribution(w http.ResponseWriter, r *http.Request) {
	q, ok := parseDashboardQuery(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	counts := h.service.StatusDistribution(ctx, q.year, q.month, q.team)
	utils.HandleDataResponse(w, "Status distribution retrieved successfully", counts, http.StatusOK)
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q, ok := parseDashboardQuery(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	utils.HandleDataResponse(w, "Summary retrieved successfully", h.service.Headline(ctx, q.year, q.month), http.StatusOK)
}

// Meta lists the fixed choices offered by the dashboard forms.
func Meta(w http.ResponseWriter, r *http.Request) {
	utils.HandleDataResponse(w, "Metadata retrieved successfully", models.NewMeta(), http.StatusOK)
}

func Health(w http.ResponseWriter, r *http.Request) {
	utils.HandleMessageResponse(w, "ok", http.StatusOK)
}
