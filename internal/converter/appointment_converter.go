package converter

import (
	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(apt *entity.Appointment) *dto.AppointmentResponse {
	if apt == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                apt.ID,
		PatientID:         apt.PatientID,
		DoctorID:          apt.DoctorID,
		Date:              apt.Date.Format("2006-01-02"),
		Time:              slotTime(apt.Time),
		DurationMinutes:   apt.DurationMinutes,
		Type:              apt.Type,
		Reason:            apt.Reason,
		Priority:          string(apt.Priority),
		Status:            string(apt.Status),
		Notes:             apt.Notes,
		NeedsReassignment: apt.NeedsReassignment,
		AssignedAt:        apt.AssignedAt,
		ApprovedAt:        apt.ApprovedAt,
		RejectedAt:        apt.RejectedAt,
		CancelledAt:       apt.CancelledAt,
		CompletedAt:       apt.CompletedAt,
		CreatedAt:         apt.CreatedAt,
		UpdatedAt:         apt.UpdatedAt,
	}

	if apt.Patient.User.FullName != "" {
		response.PatientName = apt.Patient.User.FullName
	}
	if apt.Doctor != nil && apt.Doctor.User.FullName != "" {
		response.DoctorName = apt.Doctor.User.FullName
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// slotTime normalizes a time column value to HH:MM. Postgres time columns
// scan back as HH:MM:SS.
func slotTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
