package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
)

// EventService orchestrates event creation and lookup.
type EventService struct {
	events EventStore
	logger *slog.Logger
}

// NewEventService constructs an EventService.
func NewEventService(events EventStore, logger *slog.Logger) *EventService {
	return &EventService{events: events, logger: logger}
}

// CreateEvent validates the request and delegates to the repository.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateName("event name", req.Name, maxEventNameLen); err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, invalid("date is required")
	}
	if req.Capacity < 0 {
		return nil, invalid("capacity cannot be negative")
	}
	if req.Capacity > maxCapacity {
		return nil, invalid("capacity cannot exceed 100,000")
	}

	e, err := s.events.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "event created",
		"event_id", e.ID,
		"date", e.Date.String(),
		"capacity", e.Capacity,
	)
	return e, nil
}

// GetEvent returns a single event by id.
func (s *EventService) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	return s.events.GetByID(ctx, id)
}

// ListEvents returns all events.
func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}
