package doctors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clinicasol/turnero/pkg/logging"
)

// Handler handles HTTP requests for the doctor registry
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

// NewHandler creates a new doctors handler
func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /api/doctors requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list doctors", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list doctors")
		return
	}
	if docs == nil {
		docs = []*Doctor{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// ListSpecialties handles GET /api/specialties requests
func (h *Handler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	specs, err := h.repo.ListSpecialties(r.Context())
	if err != nil {
		h.logger.Error("failed to list specialties", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list specialties")
		return
	}
	if specs == nil {
		specs = []string{}
	}
	writeJSON(w, http.StatusOK, specs)
}

// Create handles POST /api/admin/doctors requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrMissingNameOrSpecialty) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to create doctor", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create doctor")
		return
	}

	h.logger.Info("doctor registered", "id", doc.ID, "specialty", doc.Specialty)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "id": doc.ID})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
