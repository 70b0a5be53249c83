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

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create prescription")
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created successfully", prescription)
}

func (h *PrescriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	prescription, err := h.prescriptionUsecase.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription retrieved successfully", prescription)
}

// ListMine returns the caller's prescriptions: issued ones for doctors,
// received ones for patients.
func (h *PrescriptionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.prescriptionUsecase.ListMine(r.Context())
	if err != nil {
		h.writeError(w, err, "Failed to list prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

func (h *PrescriptionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	var req dto.UpdatePrescriptionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update prescription status")
		return
	}

	response.Success(w, http.StatusOK, "Prescription status updated successfully", prescription)
}

func (h *PrescriptionHandler) writeError(w http.ResponseWriter, err error, fallback string) {
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
	case usecase.ErrPrescriptionNotFound:
		response.NotFound(w, "Prescription not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrPrescriptionForbidden:
		response.Forbidden(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
