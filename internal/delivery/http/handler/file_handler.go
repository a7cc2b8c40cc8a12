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

type FileHandler struct {
	fileUsecase usecase.FileUsecase
	validator   *validator.CustomValidator
}

func NewFileHandler(fileUsecase usecase.FileUsecase, validator *validator.CustomValidator) *FileHandler {
	return &FileHandler{
		fileUsecase: fileUsecase,
		validator:   validator,
	}
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.CreateFileAttachment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	file, err := h.fileUsecase.Upload(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to upload file")
		return
	}

	response.Success(w, http.StatusCreated, "File uploaded successfully", file)
}

func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid file ID", nil)
		return
	}

	file, err := h.fileUsecase.FindByID(r.Context(), id, userID, roleID)
	if err != nil {
		h.writeError(w, err, "Failed to get file")
		return
	}

	response.Success(w, http.StatusOK, "File retrieved successfully", file)
}

func (h *FileHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	files, err := h.fileUsecase.FindByUser(r.Context(), userID, userID, roleID)
	if err != nil {
		h.writeError(w, err, "Failed to list files")
		return
	}

	response.Success(w, http.StatusOK, "Files retrieved successfully", files)
}

func (h *FileHandler) ListByRecord(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	recordID, err := uuid.Parse(mux.Vars(r)["recordId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medical record ID", nil)
		return
	}

	files, err := h.fileUsecase.FindByRecord(r.Context(), recordID, userID, roleID)
	if err != nil {
		h.writeError(w, err, "Failed to list record files")
		return
	}

	response.Success(w, http.StatusOK, "Files retrieved successfully", files)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid file ID", nil)
		return
	}

	if err := h.fileUsecase.Delete(r.Context(), userID, id, roleID); err != nil {
		h.writeError(w, err, "Failed to delete file")
		return
	}

	response.Success(w, http.StatusOK, "File deleted successfully", nil)
}

func (h *FileHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrFileNotFound:
		response.NotFound(w, "File not found")
	case usecase.ErrMedicalRecordNotFound:
		response.NotFound(w, "Medical record not found")
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
