package handler

import (
	"encoding/json"
	"net/http"

	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/usecase"
	"university-clinic-api/pkg/response"
	"university-clinic-api/pkg/validator"
)

// DoctorAppointmentHandler covers the assigned doctor's actions on an
// appointment: confirmation and the in-progress/completed transitions.
type DoctorAppointmentHandler struct {
	doctorUsecase usecase.DoctorAppointmentUsecase
	validator     *validator.CustomValidator
}

func NewDoctorAppointmentHandler(doctorUsecase usecase.DoctorAppointmentUsecase, validator *validator.CustomValidator) *DoctorAppointmentHandler {
	return &DoctorAppointmentHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorAppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.ConfirmAppointmentRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.doctorUsecase.Confirm(r.Context(), id, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to confirm appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment confirmed successfully", appointment)
}

func (h *DoctorAppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.doctorUsecase.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to update appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", result)
}
