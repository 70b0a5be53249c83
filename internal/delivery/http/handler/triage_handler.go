package handler

import (
	"encoding/json"
	"net/http"

	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/usecase"
	"university-clinic-api/pkg/response"
	"university-clinic-api/pkg/validator"
)

// TriageHandler exposes the clinical-staff side of the appointment
// workflow: review, assign, approve, reject, and walk-in confirmation.
type TriageHandler struct {
	triageUsecase usecase.TriageUsecase
	validator     *validator.CustomValidator
}

func NewTriageHandler(triageUsecase usecase.TriageUsecase, validator *validator.CustomValidator) *TriageHandler {
	return &TriageHandler{
		triageUsecase: triageUsecase,
		validator:     validator,
	}
}

func (h *TriageHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.triageUsecase.Review(r.Context(), id)
	if err != nil {
		writeAppointmentError(w, err, "Failed to move appointment to review")
		return
	}

	response.Success(w, http.StatusOK, "Appointment moved to review", appointment)
}

func (h *TriageHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.AssignAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.triageUsecase.Assign(r.Context(), id, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to assign appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment assigned successfully", appointment)
}

func (h *TriageHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.triageUsecase.Approve(r.Context(), id)
	if err != nil {
		writeAppointmentError(w, err, "Failed to approve appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment approved successfully", appointment)
}

func (h *TriageHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.RejectAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.triageUsecase.Reject(r.Context(), id, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to reject appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment rejected", appointment)
}

func (h *TriageHandler) ConfirmWalkIn(w http.ResponseWriter, r *http.Request) {
	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.ConfirmWalkInRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	appointment, err := h.triageUsecase.ConfirmWalkIn(r.Context(), id, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to confirm walk-in")
		return
	}

	response.Success(w, http.StatusOK, "Walk-in confirmed successfully", appointment)
}
