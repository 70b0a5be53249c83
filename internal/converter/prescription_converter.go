package converter

import (
	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity to PrescriptionResponse DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	medications := make([]dto.MedicationResponse, len(prescription.Medications))
	for i, med := range prescription.Medications {
		medications[i] = dto.MedicationResponse{
			ID:           med.ID,
			Name:         med.Name,
			Dosage:       med.Dosage,
			Instructions: med.Instructions,
			Frequency:    med.Frequency,
			StartDate:    med.StartDate.Format("2006-01-02"),
			Status:       med.Status,
			CreatedAt:    med.CreatedAt,
		}
		if med.EndDate != nil {
			endDate := med.EndDate.Format("2006-01-02")
			medications[i].EndDate = &endDate
		}
	}

	response := &dto.PrescriptionResponse{
		ID:            prescription.ID,
		PatientID:     prescription.PatientID,
		DoctorID:      prescription.DoctorID,
		AppointmentID: prescription.AppointmentID,
		Status:        string(prescription.Status),
		Notes:         prescription.Notes,
		Medications:   medications,
		CreatedAt:     prescription.CreatedAt,
		UpdatedAt:     prescription.UpdatedAt,
	}

	if prescription.Patient.User.FullName != "" {
		response.PatientName = prescription.Patient.User.FullName
	}
	if prescription.Doctor.User.FullName != "" {
		response.DoctorName = prescription.Doctor.User.FullName
	}

	return response
}

// PrescriptionsToResponses converts a slice of Prescription entities to slice of PrescriptionResponse DTOs
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescriptions[i])
	}
	return responses
}
