package converter

import (
	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/domain/entity"
)

// MedicalRecordToResponse converts a MedicalRecord entity to MedicalRecordResponse DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.MedicalRecordResponse{
		ID:               record.ID,
		PatientID:        record.PatientID,
		DoctorID:         record.DoctorID,
		AppointmentID:    record.AppointmentID,
		Type:             record.Type,
		Diagnosis:        record.Diagnosis,
		Treatment:        record.Treatment,
		Notes:            record.Notes,
		BloodPressure:    record.BloodPressure,
		HeartRate:        record.HeartRate,
		Temperature:      record.Temperature,
		RespiratoryRate:  record.RespiratoryRate,
		OxygenSaturation: record.OxygenSaturation,
		Weight:           record.Weight,
		Height:           record.Height,
		BMI:              record.BMI,
		CreatedAt:        record.CreatedAt,
	}

	if record.Doctor != nil && record.Doctor.User.FullName != "" {
		response.DoctorName = record.Doctor.User.FullName
	}

	return response
}

// MedicalRecordsToResponses converts a slice of MedicalRecord entities to slice of MedicalRecordResponse DTOs
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return responses
}
