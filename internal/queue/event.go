// Package queue publishes booking notifications to a RabbitMQ broker.
package queue

import (
	"time"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
)

// BookingCreatedEvent is published once a booking has been committed.
// It carries enough for downstream consumers to notify the user without
// querying the primary database.
type BookingCreatedEvent struct {
	BookingID int64  `json:"booking_id"`
	UserID    int64  `json:"user_id"`
	EventID   int64  `json:"event_id"`
	UserName  string `json:"user_name"`
	EventName string `json:"event_name"`
	EventDate string `json:"event_date"`
	CreatedAt string `json:"created_at"`
}

// NewBookingCreatedEvent builds the message payload for b.
func NewBookingCreatedEvent(b *model.Booking) BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID: b.ID,
		UserID:    b.UserID,
		EventID:   b.EventID,
		UserName:  b.UserName,
		EventName: b.EventName,
		EventDate: b.EventDate.String(),
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
