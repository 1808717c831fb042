// Package model defines the core domain types for the ticket booking system.
package model

import "time"

// User is a person who books events.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Event represents a bookable occurrence with a fixed number of places.
type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Date      Date      `json:"date"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// IsPast reports whether the event, taken to start at midnight UTC on its
// date, lies strictly before now.
func (e *Event) IsPast(now time.Time) bool {
	return e.Date.Time.Before(now)
}

// Booking is a confirmed reservation linking one user to one event.
// Reads fill in the user and event display fields.
type Booking struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	EventID   int64     `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
	EventName string    `json:"event_name"`
	EventDate Date      `json:"event_date"`
}

// CreateUserRequest is the payload for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Name     string `json:"name"`
	Date     Date   `json:"date"`
	Capacity int    `json:"capacity"`
}

// CreateBookingRequest is the payload for booking a place at an event.
type CreateBookingRequest struct {
	UserID  int64 `json:"user_id"`
	EventID int64 `json:"event_id"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
