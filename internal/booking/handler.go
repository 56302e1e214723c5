package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/clinicasol/turnero/pkg/logging"
)

// Handler handles HTTP requests for booking and the admin ledger
type Handler struct {
	engine *Engine
	ledger *Ledger
	logger *logging.Logger
}

// NewHandler creates a new booking handler
func NewHandler(engine *Engine, ledger *Ledger, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{engine: engine, ledger: ledger, logger: logger}
}

// Book handles POST /api/book requests
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.engine.Book(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrSlotTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("booking failed", "error", err)
			writeError(w, http.StatusInternalServerError, "booking failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"booking_id": b.ID,
		"message":    "booking confirmed",
	})
}

// List handles GET /api/admin/bookings requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		DoctorID: strings.TrimSpace(r.URL.Query().Get("doctor_id")),
		Date:     strings.TrimSpace(r.URL.Query().Get("date")),
	}

	bookings, err := h.ledger.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list bookings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	if bookings == nil {
		bookings = []*Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// Cancel handles DELETE /api/admin/bookings/{bookingID} requests
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingID")

	if err := h.engine.Cancel(r.Context(), bookingID); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("cancellation failed", "error", err, "booking_id", bookingID)
		writeError(w, http.StatusInternalServerError, "cancellation failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
