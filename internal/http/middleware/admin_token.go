package middleware

import (
	"net/http"
	"strings"

	"github.com/clinicasol/turnero/internal/session"
	"github.com/clinicasol/turnero/pkg/logging"
)

const (
	adminTokenHeader = "X-Admin-Token"
	adminTokenQuery  = "token"
)

// AdminToken guards admin endpoints with a session token taken from the
// X-Admin-Token header or the token query parameter. Absent, unknown or
// expired tokens get a 401.
func AdminToken(sessions session.Manager, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(adminTokenHeader))
			if token == "" {
				token = strings.TrimSpace(r.URL.Query().Get(adminTokenQuery))
			}
			if token == "" {
				unauthorized(w)
				return
			}

			ok, err := sessions.Validate(r.Context(), token)
			if err != nil {
				logger.Error("session validation failed", "error", err)
				unauthorized(w)
				return
			}
			if !ok {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
