package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/usecase"
	"university-clinic-api/pkg/response"
	"university-clinic-api/pkg/validator"

	"github.com/gorilla/mux"
)

type HolidayHandler struct {
	holidayUsecase usecase.HolidayUsecase
	validator      *validator.CustomValidator
}

func NewHolidayHandler(holidayUsecase usecase.HolidayUsecase, validator *validator.CustomValidator) *HolidayHandler {
	return &HolidayHandler{
		holidayUsecase: holidayUsecase,
		validator:      validator,
	}
}

func (h *HolidayHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	holiday, err := h.holidayUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create holiday")
		return
	}

	response.Success(w, http.StatusCreated, "Holiday created successfully", holiday)
}

func (h *HolidayHandler) List(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.holidayUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list holidays")
		return
	}

	response.Success(w, http.StatusOK, "Holidays retrieved successfully", holidays)
}

func (h *HolidayHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid holiday ID", nil)
		return
	}

	var req dto.UpdateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	holiday, err := h.holidayUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update holiday")
		return
	}

	response.Success(w, http.StatusOK, "Holiday updated successfully", holiday)
}

func (h *HolidayHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid holiday ID", nil)
		return
	}

	if err := h.holidayUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete holiday")
		return
	}

	response.Success(w, http.StatusOK, "Holiday deleted successfully", nil)
}

func (h *HolidayHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrHolidayNotFound:
		response.NotFound(w, "Holiday not found")
	case usecase.ErrHolidayInvalidRange, usecase.ErrInvalidDateFormat:
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
