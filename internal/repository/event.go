package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
)

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event and returns it with its generated id.
func (r *EventRepository) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	e := &model.Event{Name: req.Name, Date: req.Date, Capacity: req.Capacity}
	err := r.db.QueryRow(ctx,
		`INSERT INTO events (name, date, capacity)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		e.Name, e.Date.Time, e.Capacity,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, classify("insert event", err)
	}
	return e, nil
}

// GetByID returns a single event or ErrEventNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	var e model.Event
	err := r.db.QueryRow(ctx,
		`SELECT id, name, date, capacity, created_at
		 FROM events WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Name, &e.Date.Time, &e.Capacity, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, classify("get event", err)
	}
	return &e, nil
}

// List returns all events ordered by id.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, date, capacity, created_at
		 FROM events
		 ORDER BY id`,
	)
	if err != nil {
		return nil, classify("list events", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date.Time, &e.Capacity, &e.CreatedAt); err != nil {
			return nil, classify("scan event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list events", err)
	}
	return events, nil
}

// Count returns the number of events.
func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, classify("count events", err)
	}
	return n, nil
}
