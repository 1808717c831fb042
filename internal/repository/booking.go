package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
)

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Book atomically inserts a booking for (userID, eventID) and returns its id.
//
// The transaction first locks the event row with SELECT ... FOR UPDATE, so
// concurrent Book calls for the same event run one at a time and the count
// read under the lock is exact. A violation of the UNIQUE (user_id, event_id)
// constraint is reported as ErrDuplicateBooking as well.
func (r *BookingRepository) Book(ctx context.Context, userID, eventID int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, classify("begin transaction", err)
	}
	// No-op once the transaction is committed.
	defer func() { _ = tx.Rollback(ctx) }()

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity
		 FROM events
		 WHERE id = $1
		 FOR UPDATE`,
		eventID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrEventNotFound
		}
		return 0, classify("lock event row", err)
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE user_id = $1 AND event_id = $2)`,
		userID, eventID,
	).Scan(&exists)
	if err != nil {
		return 0, classify("check duplicate", err)
	}
	if exists {
		return 0, ErrDuplicateBooking
	}

	var booked int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE event_id = $1`,
		eventID,
	).Scan(&booked)
	if err != nil {
		return 0, classify("count bookings", err)
	}
	if booked >= capacity {
		return 0, ErrCapacityExceeded
	}

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO bookings (user_id, event_id)
		 VALUES ($1, $2)
		 RETURNING id`,
		userID, eventID,
	).Scan(&id)
	if err != nil {
		return 0, classify("insert booking", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, classify("commit transaction", err)
	}
	return id, nil
}

// GetByID returns a booking joined with its user and event names,
// or ErrBookingNotFound.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	bookings, err := r.list(ctx, "get booking", goqu.I("b.id").Eq(id))
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}
	return &bookings[0], nil
}

// List returns all bookings.
func (r *BookingRepository) List(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx, "list bookings")
}

// ListByUser returns the bookings made by userID.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	return r.list(ctx, "list bookings by user", goqu.I("b.user_id").Eq(userID))
}

// ListByEvent returns the bookings held for eventID.
func (r *BookingRepository) ListByEvent(ctx context.Context, eventID int64) ([]model.Booking, error) {
	return r.list(ctx, "list bookings by event", goqu.I("b.event_id").Eq(eventID))
}

func (r *BookingRepository) list(ctx context.Context, op string, where ...goqu.Expression) ([]model.Booking, error) {
	query, args, err := buildBookingQuery(where...)
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.EventID, &b.CreatedAt,
			&b.UserName, &b.EventName, &b.EventDate.Time,
		); err != nil {
			return nil, classify("scan booking", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return bookings, nil
}

// buildBookingQuery selects bookings joined with user and event display
// fields, filtered by the given expressions and ordered by booking id.
func buildBookingQuery(where ...goqu.Expression) (string, []any, error) {
	ds := dialect.
		From(goqu.T("bookings").As("b")).
		InnerJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.user_id")))).
		InnerJoin(goqu.T("events").As("e"), goqu.On(goqu.I("e.id").Eq(goqu.I("b.event_id")))).
		Select(
			goqu.I("b.id"), goqu.I("b.user_id"), goqu.I("b.event_id"), goqu.I("b.created_at"),
			goqu.I("u.name"), goqu.I("e.name"), goqu.I("e.date"),
		).
		Order(goqu.I("b.id").Asc()).
		Prepared(true)
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	return ds.ToSQL()
}

// Exists reports whether userID already booked eventID.
func (r *BookingRepository) Exists(ctx context.Context, userID, eventID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE user_id = $1 AND event_id = $2)`,
		userID, eventID,
	).Scan(&exists)
	if err != nil {
		return false, classify("check booking exists", err)
	}
	return exists, nil
}

// CountByEvent returns the number of bookings currently held for eventID.
func (r *BookingRepository) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE event_id = $1`,
		eventID,
	).Scan(&n)
	if err != nil {
		return 0, classify("count bookings by event", err)
	}
	return n, nil
}

// Count returns the total number of bookings.
func (r *BookingRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n); err != nil {
		return 0, classify("count bookings", err)
	}
	return n, nil
}
