package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
)

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.CreateUser(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err, "failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.respondError(w, r, err, "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id: "+err.Error())
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "failed to get user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ListUserBookings handles GET /users/{id}/bookings
func (h *Handler) ListUserBookings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id: "+err.Error())
		return
	}

	bookings, err := h.bookings.ListUserBookings(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "failed to list user bookings")
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}
