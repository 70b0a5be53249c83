package dto

// AvailableSlotsResponse lists bookable and occupied 30-minute slots for
// a doctor and date.
type AvailableSlotsResponse struct {
	DoctorID       string   `json:"doctor_id,omitempty"`
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
	BookedSlots    []string `json:"booked_slots"`
	TotalAvailable int      `json:"total_available"`
}
