package handlers

import (
	"context"
	"net/http"

	"kpidashboard/models"
	"kpidashboard/services"
	"kpidashboard/utils"
)

type EmployeeHandler struct {
	service services.EmployeeService
}

func NewEmployeeHandler(service services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
	}
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	active, err := utils.QueryBool(r, "active")
	if err != nil {
		utils.HandleValidationResponse(w, http.StatusBadRequest, map[string]string{"active": "must be a boolean"})
		return
	}
	managers, err := utils.QueryBool(r, "managers")
	if err != nil {
		utils.HandleValidationResponse(w, http.StatusBadRequest, map[string]string{"managers": "must be a boolean"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	employees := h.service.ListEmployees(ctx, models.EmployeeFilter{ActiveOnly: active, ManagersOnly: managers})
	utils.HandleDataResponse(w, "Employees retrieved successfully", employees, http.StatusOK)
}

func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	employee, err := h.service.GetEmployee(ctx, r.PathValue("id"))
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	utils.HandleDataResponse(w, "Employee retrieved successfully", employee, http.StatusOK)
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in models.EmployeeInput
	if err := utils.DecodeAndValidate(w, r, &in); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	employee, err := h.service.CreateEmployee(ctx, in)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	utils.HandleDataResponse(w, "Employee created successfully", employee, http.StatusCreated)
}

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var in models.EmployeeInput
	if err := utils.DecodeAndValidate(w, r, &in); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	employee, err := h.service.UpdateEmployee(ctx, r.PathValue("id"), in)
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	// An unknown id is not an error; nothing was stored, so no record is returned.
	if employee == nil {
		utils.HandleDataResponse(w, "No employee with this id, nothing updated", nil, http.StatusOK)
		return
	}

	utils.HandleDataResponse(w, "Employee updated successfully", employee, http.StatusOK)
}

func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	removed, err := h.service.DeleteEmployee(ctx, r.PathValue("id"))
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	utils.HandleDataResponse(w, "Employee deleted successfully", map[string]int{"removedKpis": removed}, http.StatusOK)
}
