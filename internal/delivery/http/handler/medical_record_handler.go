package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/usecase"
	"university-clinic-api/pkg/response"
	"university-clinic-api/pkg/validator"

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
	var req dto.CreateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create medical record")
		return
	}

	response.Success(w, http.StatusCreated, "Medical record created successfully", record)
}

// ListByPatient returns a patient's record history. Patients can only
// read their own.
func (h *MedicalRecordHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	records, err := h.recordUsecase.ListByPatient(r.Context(), patientID)
	if err != nil {
		h.writeError(w, err, "Failed to list medical records")
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved successfully", records)
}

func (h *MedicalRecordHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	var denied *usecase.AttendanceDeniedError
	if errors.As(err, &denied) {
		response.JSON(w, http.StatusForbidden, response.Response{
			Success: false,
			Message: denied.Reason,
			Data: dto.AttendanceDeniedResponse{
				Message:       denied.Reason,
				CanAttendFrom: denied.CanAttendFrom,
			},
		})
		return
	}

	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrRecordsForbidden:
		response.Forbidden(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
