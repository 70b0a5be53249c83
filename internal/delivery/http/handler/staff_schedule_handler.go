package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/usecase"
	"university-clinic-api/pkg/response"
	"university-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type StaffScheduleHandler struct {
	scheduleUsecase usecase.StaffScheduleUsecase
	validator       *validator.CustomValidator
}

func NewStaffScheduleHandler(scheduleUsecase usecase.StaffScheduleUsecase, validator *validator.CustomValidator) *StaffScheduleHandler {
	return &StaffScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// Upsert creates or replaces a doctor's working window for one weekday.
func (h *StaffScheduleHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertStaffScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.Upsert(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to save staff schedule")
		return
	}

	response.Success(w, http.StatusOK, "Staff schedule saved successfully", schedule)
}

func (h *StaffScheduleHandler) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	schedules, err := h.scheduleUsecase.ListByDoctor(r.Context(), doctorID)
	if err != nil {
		h.writeError(w, err, "Failed to list staff schedules")
		return
	}

	response.Success(w, http.StatusOK, "Staff schedules retrieved successfully", schedules)
}

func (h *StaffScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	if err := h.scheduleUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete staff schedule")
		return
	}

	response.Success(w, http.StatusOK, "Staff schedule deleted successfully", nil)
}

func (h *StaffScheduleHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrScheduleNotFound:
		response.NotFound(w, "Staff schedule not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrScheduleInvalidWindow:
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
