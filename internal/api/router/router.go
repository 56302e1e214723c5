package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clinicasol/turnero/internal/availability"
	"github.com/clinicasol/turnero/internal/booking"
	"github.com/clinicasol/turnero/internal/doctors"
	"github.com/clinicasol/turnero/internal/http/handlers"
	httpmiddleware "github.com/clinicasol/turnero/internal/http/middleware"
	"github.com/clinicasol/turnero/internal/session"
	"github.com/clinicasol/turnero/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	DoctorsHandler      *doctors.Handler
	AvailabilityHandler *availability.Handler
	BookingHandler      *booking.Handler
	AdminLogin          *handlers.AdminLoginHandler
	Sessions            session.Manager
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		public.Get("/api/doctors", cfg.DoctorsHandler.List)
		public.Get("/api/specialties", cfg.DoctorsHandler.ListSpecialties)
		public.Get("/api/availability", cfg.AvailabilityHandler.List)
		public.Post("/api/book", cfg.BookingHandler.Book)
	})

	// Admin endpoints. Login is open; everything else requires a session token.
	if cfg.Sessions != nil {
		r.Route("/api/admin", func(admin chi.Router) {
			if cfg.AdminLogin != nil {
				admin.Post("/login", cfg.AdminLogin.Login)
			}

			admin.Group(func(protected chi.Router) {
				protected.Use(httpmiddleware.AdminToken(cfg.Sessions, cfg.Logger))

				protected.Post("/doctors", cfg.DoctorsHandler.Create)

				protected.Get("/availability", cfg.AvailabilityHandler.List)
				protected.Post("/availability", cfg.AvailabilityHandler.Save)
				protected.Delete("/availability/{slotID}", cfg.AvailabilityHandler.Delete)

				protected.Get("/bookings", cfg.BookingHandler.List)
				protected.Delete("/bookings/{bookingID}", cfg.BookingHandler.Cancel)
			})
		})
	}

	return r
}
