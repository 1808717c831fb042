// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
)

// ErrInvalidInput is returned when a request fails validation.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidState is returned when a request is well formed but the
// records it refers to do not allow it.
var ErrInvalidState = errors.New("invalid state")

// ErrEventInPast is returned when booking an event whose date has passed.
var ErrEventInPast = fmt.Errorf("%w: event in the past", ErrInvalidState)

const (
	maxUserNameLen  = 100
	maxEmailLen     = 100
	maxEventNameLen = 200
	maxCapacity     = 100_000
)

// UserStore is the user persistence the services depend on.
type UserStore interface {
	Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// EventStore is the event persistence the services depend on.
type EventStore interface {
	Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
}

// BookingStore is the booking persistence the Booking Service depends on.
// Book must enforce capacity and uniqueness atomically.
type BookingStore interface {
	Book(ctx context.Context, userID, eventID int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	List(ctx context.Context) ([]model.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Booking, error)
	ListByEvent(ctx context.Context, eventID int64) ([]model.Booking, error)
	Exists(ctx context.Context, userID, eventID int64) (bool, error)
	CountByEvent(ctx context.Context, eventID int64) (int, error)
}

// BookingPublisher announces bookings to interested parties.
type BookingPublisher interface {
	PublishBookingCreated(ctx context.Context, b *model.Booking) error
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateName(field, name string, maxLen int) error {
	if name == "" {
		return invalid("%s is required", field)
	}
	if utf8.RuneCountInString(name) > maxLen {
		return invalid("%s cannot exceed %d characters", field, maxLen)
	}
	return nil
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || len(parts[0]) == 0 {
		return false
	}
	domain := parts[1]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
