package handlers

import (
	"context"
	"net/http"

	"kpidashboard/models"
	"kpidashboard/services"
	"kpidashboard/utils"
)

type ReportHandler struct {
	dashboard services.DashboardService
	reports   services.ReportService
}

func NewReportHandler(dashboard services.DashboardService, reports services.ReportService) *ReportHandler {
	return &ReportHandler{
		dashboard: dashboard,
		reports:   reports,
	}
}

// RequestReport snapshots the requested scope and starts generating the
// report in the background. Clients poll GetReport for the result.
func (h *ReportHandler) RequestReport(w http.ResponseWriter, r *http.Request) {
	var req models.ReportRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	input, err := h.dashboard.ReportInput(ctx, req)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	job := h.reports.Request(ctx, input)
	utils.HandleDataResponse(w, "Report requested", job, http.StatusAccepted)
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	job, err := h.reports.GetJob(r.PathValue("id"))
	if err != nil {
		handleServiceError(r.Context(), w, err)
		return
	}

	utils.HandleDataResponse(w, "Report retrieved successfully", job, http.StatusOK)
}

func (h *ReportHandler) CancelReport(w http.ResponseWriter, r *http.Request) {
	job, err := h.reports.CancelJob(r.PathValue("id"))
	if err != nil {
		handleServiceError(r.Context(), w, err)
		return
	}

	utils.HandleDataResponse(w, "Report cancelled", job, http.StatusOK)
}
