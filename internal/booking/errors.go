package booking

import "errors"

var (
	// ErrMissingFields is returned when a required booking field is empty
	// after trimming. Nothing is mutated.
	ErrMissingFields = errors.New("doctor_id, date, time, patient_name, patient_email and reason are required")

	// ErrSlotUnavailable is returned when no open slot matches the requested
	// (doctor, date, time).
	ErrSlotUnavailable = errors.New("slot is no longer available")

	// ErrSlotTaken is returned when a concurrent booking won the slot between
	// our lookup and insert.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrBookingNotFound is returned when a cancellation targets an unknown
	// booking id.
	ErrBookingNotFound = errors.New("booking not found")
)
