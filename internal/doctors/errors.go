package doctors

import "errors"

var (
	// ErrMissingNameOrSpecialty is returned when a doctor is registered without
	// a name or specialty.
	ErrMissingNameOrSpecialty = errors.New("name and specialty are required")
)
