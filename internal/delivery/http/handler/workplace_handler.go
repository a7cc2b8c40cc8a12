package handler

import (
	"encoding/json"
	"net/http"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type WorkplaceHandler struct {
	workplaceUsecase usecase.WorkplaceUsecase
	validator        *validator.CustomValidator
}

func NewWorkplaceHandler(workplaceUsecase usecase.WorkplaceUsecase, validator *validator.CustomValidator) *WorkplaceHandler {
	return &WorkplaceHandler{
		workplaceUsecase: workplaceUsecase,
		validator:        validator,
	}
}

func (h *WorkplaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.CreateWorkplaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	workplace, err := h.workplaceUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create workplace")
		return
	}

	response.Success(w, http.StatusCreated, "Workplace created successfully", workplace)
}

func (h *WorkplaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid workplace ID", nil)
		return
	}

	workplace, err := h.workplaceUsecase.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get workplace")
		return
	}

	response.Success(w, http.StatusOK, "Workplace retrieved successfully", workplace)
}

func (h *WorkplaceHandler) List(w http.ResponseWriter, r *http.Request) {
	workplaces, err := h.workplaceUsecase.FindAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list workplaces")
		return
	}

	response.Success(w, http.StatusOK, "Workplaces retrieved successfully", workplaces)
}

func (h *WorkplaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid workplace ID", nil)
		return
	}

	var req dto.UpdateWorkplaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	workplace, err := h.workplaceUsecase.Update(r.Context(), userID, id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update workplace")
		return
	}

	response.Success(w, http.StatusOK, "Workplace updated successfully", workplace)
}

func (h *WorkplaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid workplace ID", nil)
		return
	}

	if err := h.workplaceUsecase.Delete(r.Context(), userID, id); err != nil {
		h.writeError(w, err, "Failed to delete workplace")
		return
	}

	response.Success(w, http.StatusOK, "Workplace deleted successfully", nil)
}

func (h *WorkplaceHandler) AssignDoctor(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid workplace ID", nil)
		return
	}

	var req dto.AssignDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.workplaceUsecase.AssignDoctor(r.Context(), userID, id, &req); err != nil {
		h.writeError(w, err, "Failed to assign doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor assigned successfully", nil)
}

func (h *WorkplaceHandler) UnassignDoctor(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid workplace ID", nil)
		return
	}
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	if err := h.workplaceUsecase.UnassignDoctor(r.Context(), userID, id, doctorID); err != nil {
		h.writeError(w, err, "Failed to unassign doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor unassigned successfully", nil)
}

func (h *WorkplaceHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrWorkplaceNotFound:
		response.NotFound(w, "Workplace not found")
	case usecase.ErrWorkplaceNameTaken:
		response.Conflict(w, "Workplace name already exists")
	case usecase.ErrWorkplaceInUse:
		response.Conflict(w, "Workplace still has appointments")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrRoleMismatch:
		response.Error(w, http.StatusBadRequest, "Referenced user is not a doctor", nil)
	case usecase.ErrDoctorAlreadyAssigned:
		response.Conflict(w, "Doctor is already assigned to this workplace")
	case usecase.ErrAssignmentNotFound:
		response.NotFound(w, "Doctor is not assigned to this workplace")
	default:
		response.InternalServerError(w, fallback)
	}
}
