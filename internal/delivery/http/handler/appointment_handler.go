package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"university-clinic-api/internal/converter"
	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/domain/entity"
	"university-clinic-api/internal/service"
	"university-clinic-api/internal/usecase"
	"university-clinic-api/pkg/response"
	"university-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Create books an appointment request for the logged-in patient
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

// CreateWalkIn registers an in-person visit (clinical staff)
func (h *AppointmentHandler) CreateWalkIn(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWalkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateWalkIn(r.Context(), &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to register walk-in")
		return
	}

	response.Success(w, http.StatusCreated, "Walk-in registered successfully", appointment)
}

// List returns appointments visible to the caller, with optional filters
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &entity.AppointmentFilter{
		Date:     r.URL.Query().Get("date"),
		Status:   entity.AppointmentStatus(r.URL.Query().Get("status")),
		Priority: entity.AppointmentPriority(r.URL.Query().Get("priority")),
		Type:     r.URL.Query().Get("type"),
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), id)
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// Cancel cancels (or, for doctors, sends back to triage) an appointment
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CancelAppointmentRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	appointment, err := h.appointmentUsecase.Cancel(r.Context(), id, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

// Delete hard-deletes an appointment (admin)
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		writeAppointmentError(w, err, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func appointmentID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

// writeAppointmentError maps appointment workflow errors onto the HTTP
// taxonomy. Blocked sets get 423 with the blocking list, attendance
// denials 403 with the earliest permitted time.
func writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	var blocked *service.BlockedError
	if errors.As(err, &blocked) {
		response.Locked(w, "Higher-priority appointments must be resolved first", dto.BlockedAppointmentsResponse{
			Message:              blocked.Error(),
			BlockingAppointments: converter.AppointmentsToResponses(blocked.Blocking),
		})
		return
	}

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
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrAppointmentForbidden, usecase.ErrNotAssignedDoctor:
		response.Forbidden(w, err.Error())
	case usecase.ErrInvalidTransition, usecase.ErrAppointmentTerminal,
		usecase.ErrDuplicateActiveAppointment, usecase.ErrSlotUnavailable:
		response.Conflict(w, err.Error())
	case usecase.ErrInvalidTimeSlot, usecase.ErrDateInPast, usecase.ErrInvalidDateFormat,
		usecase.ErrMissingCompletionReport, usecase.ErrDoctorRequired:
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
