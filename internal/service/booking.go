package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
	"github.com/Shivanand-hulikatti/ticket-booking/internal/repository"
)

const publishTimeout = 5 * time.Second

// BookingService runs the booking workflow: validate the request against
// the stored user and event, then commit the booking atomically.
type BookingService struct {
	users     UserStore
	events    EventStore
	bookings  BookingStore
	publisher BookingPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewBookingService constructs a BookingService. publisher may be nil.
func NewBookingService(
	users UserStore,
	events EventStore,
	bookings BookingStore,
	publisher BookingPublisher,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		users:     users,
		events:    events,
		bookings:  bookings,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateBooking books a place at an event for a user and returns the stored
// booking with user and event display fields.
//
// The checks before Book reject obviously invalid requests with a precise
// error without opening a transaction. They can race with concurrent
// bookings, so Book re-checks capacity and uniqueness under a row lock and
// the store's unique constraint has the final word.
func (s *BookingService) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if event.IsPast(s.now()) {
		return nil, ErrEventInPast
	}

	booked, err := s.bookings.Exists(ctx, req.UserID, req.EventID)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, repository.ErrDuplicateBooking
	}

	count, err := s.bookings.CountByEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if count >= event.Capacity {
		return nil, repository.ErrCapacityExceeded
	}

	id, err := s.bookings.Book(ctx, req.UserID, req.EventID)
	if err != nil {
		s.logger.DebugContext(ctx, "booking rejected by store",
			"user_id", req.UserID,
			"event_id", req.EventID,
			"err", err,
		)
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "booking created",
		"booking_id", booking.ID,
		"user_id", booking.UserID,
		"event_id", booking.EventID,
	)

	if s.publisher != nil {
		go s.publish(context.WithoutCancel(ctx), booking)
	}
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, b *model.Booking) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.publisher.PublishBookingCreated(ctx, b); err != nil {
		s.logger.WarnContext(ctx, "failed to publish booking notification",
			"booking_id", b.ID,
			"err", err,
		)
	}
}

// ListBookings returns all bookings.
func (s *BookingService) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.List(ctx)
}

// ListUserBookings returns the bookings of an existing user.
func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]model.Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.bookings.ListByUser(ctx, userID)
}

// ListEventBookings returns the bookings held for an existing event.
func (s *BookingService) ListEventBookings(ctx context.Context, eventID int64) ([]model.Booking, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.bookings.ListByEvent(ctx, eventID)
}
