// Package repository implements all database queries for the ticket booking system.
// It uses pgx directly (no ORM); goqu only builds the joined booking reads.
package repository

import (
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is the parent of every "record does not exist" error.
var ErrNotFound = errors.New("not found")

var (
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrEventNotFound   = fmt.Errorf("event %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
)

// ErrDuplicateUser is returned when the email is already registered.
var ErrDuplicateUser = errors.New("email already registered")

// ErrDuplicateBooking is returned when the user already booked the event.
var ErrDuplicateBooking = errors.New("user has already booked this event")

// ErrCapacityExceeded is returned when an event has no remaining places.
var ErrCapacityExceeded = errors.New("event is at full capacity")

// ErrTransient marks storage failures (connectivity, timeouts, unexpected
// SQL errors) that may succeed when retried.
var ErrTransient = errors.New("storage unavailable")

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// constraintErrors maps the constraint names declared in the migrations
// to the domain error a violation of that constraint means.
var constraintErrors = map[string]error{
	"users_email_key":               ErrDuplicateUser,
	"bookings_user_id_event_id_key": ErrDuplicateBooking,
	"bookings_user_id_fkey":         ErrUserNotFound,
	"bookings_event_id_fkey":        ErrEventNotFound,
}

// classify turns a storage error into a domain error. Known constraint
// violations are identified by SQLSTATE and constraint name; everything
// else is wrapped as ErrTransient with the original error kept in the chain.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			if domainErr, ok := constraintErrors[pgErr.ConstraintName]; ok {
				return domainErr
			}
		}
	}
	return fmt.Errorf("%s: %w: %w", op, ErrTransient, err)
}

var dialect = goqu.Dialect("postgres")
