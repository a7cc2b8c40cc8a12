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

type SuggestionHandler struct {
	suggestionUsecase usecase.SuggestionUsecase
	validator         *validator.CustomValidator
}

func NewSuggestionHandler(suggestionUsecase usecase.SuggestionUsecase, validator *validator.CustomValidator) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionUsecase: suggestionUsecase,
		validator:         validator,
	}
}

func (h *SuggestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.CreateSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	suggestion, err := h.suggestionUsecase.Create(r.Context(), userID, roleID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create suggestion")
		return
	}

	response.Success(w, http.StatusCreated, "Suggestion created successfully", suggestion)
}

func (h *SuggestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid suggestion ID", nil)
		return
	}

	suggestion, err := h.suggestionUsecase.FindByID(r.Context(), id, userID, roleID)
	if err != nil {
		h.writeError(w, err, "Failed to get suggestion")
		return
	}

	response.Success(w, http.StatusOK, "Suggestion retrieved successfully", suggestion)
}

func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	suggestions, err := h.suggestionUsecase.FindAll(r.Context(), userID, roleID)
	if err != nil {
		h.writeError(w, err, "Failed to list suggestions")
		return
	}

	response.Success(w, http.StatusOK, "Suggestions retrieved successfully", suggestions)
}

func (h *SuggestionHandler) Decide(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid suggestion ID", nil)
		return
	}

	var req dto.DecideSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.suggestionUsecase.Decide(r.Context(), id, userID, roleID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to review suggestion")
		return
	}

	response.Success(w, http.StatusOK, "Suggestion reviewed successfully", result)
}

func (h *SuggestionHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrSuggestionNotFound:
		response.NotFound(w, "Suggestion not found")
	case usecase.ErrSuggestionAlreadyReviewed:
		response.Conflict(w, "Suggestion has already been reviewed")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrRoleMismatch:
		response.Error(w, http.StatusBadRequest, "Referenced user is not a patient", nil)
	case usecase.ErrInvalidTimeRange:
		response.Error(w, http.StatusBadRequest, "Start time must be before end time", nil)
	case usecase.ErrDoctorBusy:
		response.Conflict(w, "Doctor already has an appointment in this time range")
	case usecase.ErrForbidden:
		response.Forbidden(w, "You don't have permission for this operation")
	default:
		response.InternalServerError(w, fallback)
	}
}

// actorFromContext pulls the authenticated user and role out of the request.
func actorFromContext(r *http.Request) (uuid.UUID, int, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, 0, false
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, 0, false
	}
	return userID, roleID, true
}
