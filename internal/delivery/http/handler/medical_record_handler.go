package handler

import (
	"encoding/json"
	"net/http"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MedicalRecordHandler struct {
	recordUsecase usecase.MedicalRecordUsecase
	validator     *validator.CustomValidator
}

func NewMedicalRecordHandler(recordUsecase usecase.MedicalRecordUsecase, validator *validator.CustomValidator) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
	}
}

func (h *MedicalRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.CreateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Create(r.Context(), userID, roleID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create medical record")
		return
	}

	response.Success(w, http.StatusCreated, "Medical record created successfully", record)
}

func (h *MedicalRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medical record ID", nil)
		return
	}

	record, err := h.recordUsecase.FindByID(r.Context(), id, userID, roleID)
	if err != nil {
		h.writeError(w, err, "Failed to get medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record retrieved successfully", record)
}

func (h *MedicalRecordHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	patientID, err := uuid.Parse(mux.Vars(r)["patientId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	records, err := h.recordUsecase.FindByPatient(r.Context(), patientID, userID, roleID)
	if err != nil {
		h.writeError(w, err, "Failed to list medical records")
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved successfully", records)
}

func (h *MedicalRecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medical record ID", nil)
		return
	}

	var req dto.UpdateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Update(r.Context(), userID, id, roleID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record updated successfully", record)
}

func (h *MedicalRecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medical record ID", nil)
		return
	}

	if err := h.recordUsecase.Delete(r.Context(), userID, id, roleID); err != nil {
		h.writeError(w, err, "Failed to delete medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record deleted successfully", nil)
}

func (h *MedicalRecordHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrMedicalRecordNotFound:
		response.NotFound(w, "Medical record not found")
	case usecase.ErrMedicalRecordExists:
		response.Conflict(w, "Appointment already has a medical record")
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrInvalidFileData:
		response.Error(w, http.StatusBadRequest, "File data must be a base64 data URI", nil)
	case usecase.ErrUnsupportedFileType:
		response.Error(w, http.StatusBadRequest, "Only image attachments are allowed", nil)
	case usecase.ErrFileTooLarge:
		response.Error(w, http.StatusBadRequest, "File exceeds the size limit", nil)
	case usecase.ErrForbidden:
		response.Forbidden(w, "You don't have permission for this operation")
	default:
		response.InternalServerError(w, fallback)
	}
}
