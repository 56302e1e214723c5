package doctors

import (
	"strings"
	"time"
)

// Doctor represents a clinic doctor joined with the insurers they accept.
type Doctor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Insurers  []string  `json:"insurers"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateDoctorRequest represents the request body for registering a doctor
type CreateDoctorRequest struct {
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	Insurers  []string `json:"insurers"`
}

// Validate trims the request in place and checks required fields.
func (r *CreateDoctorRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Specialty = strings.TrimSpace(r.Specialty)
	if r.Name == "" || r.Specialty == "" {
		return ErrMissingNameOrSpecialty
	}
	cleaned := r.Insurers[:0]
	for _, ins := range r.Insurers {
		if ins = strings.TrimSpace(ins); ins != "" {
			cleaned = append(cleaned, ins)
		}
	}
	r.Insurers = cleaned
	return nil
}
