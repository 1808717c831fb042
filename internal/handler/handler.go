// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
	"github.com/Shivanand-hulikatti/ticket-booking/internal/repository"
	"github.com/Shivanand-hulikatti/ticket-booking/internal/service"
)

// UserService is the user workflow the handlers call.
type UserService interface {
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// EventService is the event workflow the handlers call.
type EventService interface {
	CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	GetEvent(ctx context.Context, id int64) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
}

// BookingService is the booking workflow the handlers call.
type BookingService interface {
	CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error)
	ListBookings(ctx context.Context) ([]model.Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]model.Booking, error)
	ListEventBookings(ctx context.Context, eventID int64) ([]model.Booking, error)
}

// Handler holds all HTTP handlers for the booking API.
type Handler struct {
	users    UserService
	events   EventService
	bookings BookingService
	logger   *slog.Logger
}

// New constructs a Handler.
func New(users UserService, events EventService, bookings BookingService, logger *slog.Logger) *Handler {
	return &Handler{users: users, events: events, bookings: bookings, logger: logger}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// pathID parses the {id} URL parameter. Ids that parse but match no
// record are left to the lookup, which reports them as not found.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errors.New("id must be an integer")
	}
	return id, nil
}

// statusFor maps a service or repository error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, repository.ErrDuplicateUser):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrCapacityExceeded),
		errors.Is(err, repository.ErrDuplicateBooking):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the status it maps to. Unexpected failures
// are logged and reported with a generic message. Once the request deadline
// has passed nothing is written: the Timeout middleware answers 504.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		h.logger.WarnContext(r.Context(), msg,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), msg,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
		writeError(w, status, msg)
		return
	}
	writeError(w, status, err.Error())
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
