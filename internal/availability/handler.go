package availability

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/clinicasol/turnero/internal/observability/metrics"
	"github.com/clinicasol/turnero/pkg/logging"
)

// Handler handles HTTP requests for availability slots
type Handler struct {
	repo    *Repository
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewHandler creates a new availability handler
func NewHandler(repo *Repository, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, metrics: m, logger: logger}
}

// List handles GET /api/availability and GET /api/admin/availability requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		DoctorID: strings.TrimSpace(r.URL.Query().Get("doctor_id")),
		Date:     strings.TrimSpace(r.URL.Query().Get("date")),
	}

	slots, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list availability", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list availability")
		return
	}
	if slots == nil {
		slots = []*Slot{}
	}
	writeJSON(w, http.StatusOK, slots)
}

// SaveSlotsRequest is the body for bulk slot creation.
type SaveSlotsRequest struct {
	DoctorID string     `json:"doctor_id"`
	Slots    []SlotTime `json:"slots"`
}

// Save handles POST /api/admin/availability requests
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.DoctorID = strings.TrimSpace(req.DoctorID)
	if req.DoctorID == "" || len(req.Slots) == 0 {
		writeError(w, http.StatusBadRequest, "doctor_id and slots are required")
		return
	}

	inserted, err := h.repo.GenerateAndSave(r.Context(), req.DoctorID, req.Slots)
	if err != nil {
		h.logger.Error("failed to save slots", "error", err, "doctor_id", req.DoctorID)
		writeError(w, http.StatusInternalServerError, "failed to save slots")
		return
	}

	h.metrics.ObserveSlotsGenerated(inserted)
	h.logger.Info("slots saved", "doctor_id", req.DoctorID, "submitted", len(req.Slots), "inserted", inserted)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "inserted": inserted})
}

// Delete handles DELETE /api/admin/availability/{slotID} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "slotID")
	deleted, err := h.repo.Delete(r.Context(), slotID)
	if err != nil {
		h.logger.Error("failed to delete slot", "error", err, "slot_id", slotID)
		writeError(w, http.StatusInternalServerError, "failed to delete slot")
		return
	}

	if deleted > 0 {
		h.metrics.ObserveSlotDeleted()
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "deleted": deleted})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
