package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/clinicasol/turnero/internal/session"
	"github.com/clinicasol/turnero/pkg/logging"
)

// AdminLoginHandler exchanges the shared admin password for a session token.
type AdminLoginHandler struct {
	password string
	sessions session.Manager
	logger   *logging.Logger
}

// NewAdminLoginHandler creates the login handler. An empty password disables
// admin login entirely.
func NewAdminLoginHandler(password string, sessions session.Manager, logger *logging.Logger) *AdminLoginHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminLoginHandler{password: password, sessions: sessions, logger: logger}
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/admin/login requests
func (h *AdminLoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if h.password == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
		writeError(w, http.StatusUnauthorized, "wrong password")
		return
	}

	token, err := h.sessions.Issue(r.Context())
	if err != nil {
		h.logger.Error("failed to issue session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to issue session")
		return
	}

	h.logger.Info("admin session issued")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
