package handlers

import (
	"context"
	"net/http"
	"time"

	"kpidashboard/models"
	"kpidashboard/services"
	"kpidashboard/utils"
)

type KPIHandler struct {
	service services.KPIService
}

func NewKPIHandler(service services.KPIService) *KPIHandler {
	return &KPIHandler{
		service: service,
	}
}

// ListKPIs lists the KPIs of one month, the current one unless year and
// month are given.
func (h *KPIHandler) ListKPIs(w http.ResponseWriter, r *http.Request) {
	year, month, errs := utils.Period(r, time.Now())
	filter := models.KPIFilter{
		Year:       year,
		Month:      month,
		AssigneeID: r.URL.Query().Get("assigneeId"),
		Department: r.URL.Query().Get("department"),
		Result:     models.EvaluationResult(r.URL.Query().Get("result")),
	}
	if filter.Result != "" && !filter.Result.IsValid() {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["result"] = "must be one of EXCELLENT GOOD NEEDS_IMPROVEMENT NOT_MET"
	}
	if errs != nil {
		utils.HandleValidationResponse(w, http.StatusBadRequest, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	kpis := h.service.ListKPIs(ctx, filter)
	utils.HandleDataResponse(w, "KPIs retrieved successfully", kpis, http.StatusOK)
}

func (h *KPIHandler) GetKPI(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	kpi, err := h.service.GetKPI(ctx, r.PathValue("id"))
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	utils.HandleDataResponse(w, "KPI retrieved successfully", kpi, http.StatusOK)
}

func (h *KPIHandler) CreateKPI(w http.ResponseWriter, r *http.Request) {
	var in models.KPIInput
	if err := utils.DecodeAndValidate(w, r, &in); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	kpi, err := h.service.CreateKPI(ctx, in)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	utils.HandleDataResponse(w, "KPI created successfully", kpi, http.StatusCreated)
}

func (h *KPIHandler) UpdateKPI(w http.ResponseWriter, r *http.Request) {
	var in models.KPIInput
	if err := utils.DecodeAndValidate(w, r, &in); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	kpi, err := h.service.UpdateKPI(ctx, r.PathValue("id"), in)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	// An unknown id is not an error; nothing was stored, so no record is returned.
	if kpi == nil {
		utils.HandleDataResponse(w, "No KPI with this id, nothing updated", nil, http.StatusOK)
		return
	}

	utils.HandleDataResponse(w, "KPI updated successfully", kpi, http.StatusOK)
}

// UpdateCompletion is the inline completion edit. Negative values are
// clamped to zero rather than rejected.
func (h *KPIHandler) UpdateCompletion(w http.ResponseWriter, r *http.Request) {
	var in models.CompletionInput
	if err := utils.DecodeAndValidate(w, r, &in); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	kpi, err := h.service.UpdateCompletion(ctx, r.PathValue("id"), *in.Completion)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	utils.HandleDataResponse(w, "KPI completion updated successfully", kpi, http.StatusOK)
}

func (h *KPIHandler) DeleteKPI(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.service.DeleteKPI(ctx, r.PathValue("id")); err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	utils.HandleMessageResponse(w, "KPI deleted successfully", http.StatusOK)
}
