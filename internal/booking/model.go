package booking

import (
	"strings"
	"time"
)

// Booking is a confirmed reservation that has consumed an availability slot.
// DoctorName and Specialty are populated on ledger listings.
type Booking struct {
	ID           string    `json:"id"`
	DoctorID     string    `json:"doctor_id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	PatientName  string    `json:"patient_name"`
	PatientEmail string    `json:"patient_email"`
	Insurer      string    `json:"patient_insurer"`
	InsurerOther string    `json:"patient_insurer_other,omitempty"`
	OutOfNetwork bool      `json:"out_of_network"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
	DoctorName   string    `json:"doctor_name,omitempty"`
	Specialty    string    `json:"specialty,omitempty"`
}

// InsurerLine renders the insurer for human-readable output, e.g. in
// confirmation emails: `OSDE`, or `Other (Luz y Fuerza)`.
func (b *Booking) InsurerLine() string {
	if b.Insurer == OtherInsurer {
		return OtherInsurer + " (" + b.InsurerOther + ")"
	}
	if b.Insurer == "" {
		return "not specified"
	}
	return b.Insurer
}

// BookRequest is the public booking submission.
type BookRequest struct {
	DoctorID     string `json:"doctor_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PatientName  string `json:"patient_name"`
	PatientEmail string `json:"patient_email"`
	Insurer      string `json:"patient_insurer"`
	InsurerOther string `json:"patient_insurer_other"`
	Reason       string `json:"reason"`
}

// Validate trims the request in place and checks every required field.
func (r *BookRequest) Validate() error {
	r.DoctorID = strings.TrimSpace(r.DoctorID)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.PatientName = strings.TrimSpace(r.PatientName)
	r.PatientEmail = strings.TrimSpace(r.PatientEmail)
	r.Insurer = strings.TrimSpace(r.Insurer)
	r.InsurerOther = strings.TrimSpace(r.InsurerOther)
	r.Reason = strings.TrimSpace(r.Reason)

	if r.DoctorID == "" || r.Date == "" || r.Time == "" ||
		r.PatientName == "" || r.PatientEmail == "" || r.Reason == "" {
		return ErrMissingFields
	}
	return nil
}

// ListFilter narrows a ledger listing. Zero values mean no filtering.
type ListFilter struct {
	DoctorID string
	Date     string
}
