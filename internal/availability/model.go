package availability

// Slot is an open, unbooked (doctor, date, time) offering, denormalized with
// the doctor's name and specialty for display.
type Slot struct {
	ID         string `json:"id"`
	DoctorID   string `json:"doctor_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	DoctorName string `json:"doctor_name"`
	Specialty  string `json:"specialty"`
}

// SlotTime is a (date, time) pair submitted by the admin slot generator.
type SlotTime struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ListFilter narrows a slot listing. Zero values mean no filtering.
type ListFilter struct {
	DoctorID string
	Date     string
}
