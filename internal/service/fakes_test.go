package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
	"github.com/Shivanand-hulikatti/ticket-booking/internal/repository"
)

// memStore is an in-memory UserStore, EventStore and BookingStore.
// A single mutex makes Book atomic, mirroring the row lock of the
// PostgreSQL implementation.
type memStore struct {
	mu       sync.Mutex
	users    []model.User
	events   []model.Event
	bookings []model.Booking
	err      error // returned by every call when set
}

func (m *memStore) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == req.Email {
			return nil, repository.ErrDuplicateUser
		}
	}
	u := model.User{ID: int64(len(m.users) + 1), Name: req.Name, Email: req.Email, CreatedAt: time.Now()}
	m.users = append(m.users, u)
	return &u, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) user(id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) event(id int64) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, e := range m.events {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, repository.ErrEventNotFound
}

func (m *memStore) addEvent(name string, date model.Date, capacity int) model.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := model.Event{ID: int64(len(m.events) + 1), Name: name, Date: date, Capacity: capacity}
	m.events = append(m.events, e)
	return e
}

func (m *memStore) addUser(name, email string) model.User {
	u, err := m.Create(context.Background(), model.CreateUserRequest{Name: name, Email: email})
	if err != nil {
		panic(err)
	}
	return *u
}

// userStore and eventStore adapt memStore to the interfaces whose method
// names collide (GetByID, List, Create).
type userStore struct{ *memStore }

func (s userStore) GetByID(ctx context.Context, id int64) (*model.User, error) { return s.user(id) }
func (s userStore) List(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.User{}, s.users...), s.err
}

type eventStore struct{ *memStore }

func (s eventStore) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	e := s.addEvent(req.Name, req.Date, req.Capacity)
	return &e, nil
}
func (s eventStore) GetByID(ctx context.Context, id int64) (*model.Event, error) { return s.event(id) }
func (s eventStore) List(ctx context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Event{}, s.events...), s.err
}

type bookingStore struct {
	*memStore
	bookCalls int
}

func (s *bookingStore) Book(ctx context.Context, userID, eventID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookCalls++
	if s.err != nil {
		return 0, s.err
	}
	var event *model.Event
	for i := range s.events {
		if s.events[i].ID == eventID {
			event = &s.events[i]
		}
	}
	if event == nil {
		return 0, repository.ErrEventNotFound
	}
	count := 0
	for _, b := range s.bookings {
		if b.EventID != eventID {
			continue
		}
		if b.UserID == userID {
			return 0, repository.ErrDuplicateBooking
		}
		count++
	}
	if count >= event.Capacity {
		return 0, repository.ErrCapacityExceeded
	}
	var user *model.User
	for i := range s.users {
		if s.users[i].ID == userID {
			user = &s.users[i]
		}
	}
	if user == nil {
		return 0, repository.ErrUserNotFound
	}
	b := model.Booking{
		ID:        int64(len(s.bookings) + 1),
		UserID:    userID,
		EventID:   eventID,
		CreatedAt: time.Now(),
		UserName:  user.Name,
		EventName: event.Name,
		EventDate: event.Date,
	}
	s.bookings = append(s.bookings, b)
	return b.ID, nil
}

func (s *bookingStore) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (s *bookingStore) filter(keep func(model.Booking) bool) []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Booking{}
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (s *bookingStore) List(ctx context.Context) ([]model.Booking, error) {
	return s.filter(func(model.Booking) bool { return true }), nil
}

func (s *bookingStore) ListByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	return s.filter(func(b model.Booking) bool { return b.UserID == userID }), nil
}

func (s *bookingStore) ListByEvent(ctx context.Context, eventID int64) ([]model.Booking, error) {
	return s.filter(func(b model.Booking) bool { return b.EventID == eventID }), nil
}

func (s *bookingStore) Exists(ctx context.Context, userID, eventID int64) (bool, error) {
	return len(s.filter(func(b model.Booking) bool { return b.UserID == userID && b.EventID == eventID })) > 0, nil
}

func (s *bookingStore) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	return len(s.filter(func(b model.Booking) bool { return b.EventID == eventID })), nil
}

// recordingPublisher captures published bookings on a channel.
type recordingPublisher struct {
	published chan *model.Booking
	err       error
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{published: make(chan *model.Booking, 16)}
}

func (p *recordingPublisher) PublishBookingCreated(ctx context.Context, b *model.Booking) error {
	p.published <- b
	return p.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
