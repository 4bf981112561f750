package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"kpidashboard/config"
	"kpidashboard/services"
	"kpidashboard/utils"
)

// requestTimeout bounds every service call made by a handler.
const requestTimeout = 10 * time.Second

// handleServiceError maps service errors onto the response envelopes.
func handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.HandleValidationResponse(w, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrKPINotFound),
		errors.Is(err, services.ErrReportNotFound):
		utils.HandleMessageResponse(w, err.Error(), http.StatusNotFound)
	default:
		config.WithContext(ctx).WithError(err).Error("Request failed")
		utils.HandleMessageResponse(w, "Internal server error", http.StatusInternalServerError)
	}
}
