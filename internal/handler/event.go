package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
)

// CreateEvent handles POST /events
// Creates a new event with the given name, date and capacity.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.CreateEvent(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err, "failed to create event")
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /events
// Returns a JSON array of all events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context())
	if err != nil {
		h.respondError(w, r, err, "failed to list events")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /events/{id}
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id: "+err.Error())
		return
	}

	event, err := h.events.GetEvent(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "failed to get event")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// ListEventBookings handles GET /events/{id}/bookings
// Returns all bookings held for a given event.
func (h *Handler) ListEventBookings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id: "+err.Error())
		return
	}

	bookings, err := h.bookings.ListEventBookings(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "failed to list event bookings")
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}
