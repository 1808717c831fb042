package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/config"
)

// NewRouter builds the chi router with the global middleware stack.
// limit guards the write routes; nil means no rate limiting.
func NewRouter(h *Handler, cfg config.HTTPConfig, logger *slog.Logger, limit func(http.Handler) http.Handler) http.Handler {
	if limit == nil {
		limit = passthrough
	}

	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(logger))          // structured access log
	r.Use(CORS(cfg.AllowedOrigins))
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", HealthCheck)

	r.Route("/users", func(r chi.Router) {
		r.With(limit).Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
		r.Get("/{id}/bookings", h.ListUserBookings)
	})

	r.Route("/events", func(r chi.Router) {
		r.With(limit).Post("/", h.CreateEvent)
		r.Get("/", h.ListEvents)
		r.Get("/{id}", h.GetEvent)
		r.Get("/{id}/bookings", h.ListEventBookings)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.With(limit).Post("/", h.CreateBooking)
		r.Get("/", h.ListBookings)
	})

	return r
}

func passthrough(next http.Handler) http.Handler { return next }
