// Command seed creates demo users, events and bookings.
// It is safe to run more than once: existing users and events are reused
// and duplicate bookings are skipped.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/config"
	"github.com/Shivanand-hulikatti/ticket-booking/internal/database"
	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
	"github.com/Shivanand-hulikatti/ticket-booking/internal/repository"
	"github.com/Shivanand-hulikatti/ticket-booking/internal/service"
)

var seedUsers = []model.CreateUserRequest{
	{Name: "John Doe", Email: "john@example.com"},
	{Name: "Jane Smith", Email: "jane@example.com"},
	{Name: "Bob Johnson", Email: "bob@example.com"},
	{Name: "Alice Brown", Email: "alice@example.com"},
	{Name: "Charlie Wilson", Email: "charlie@example.com"},
}

var seedEvents = []struct {
	name     string
	daysOut  int
	capacity int
}{
	{"Rock Concert", 7, 100},
	{"Jazz Festival", 14, 200},
	{"Comedy Show", 21, 50},
	{"Theater Play", 28, 75},
	{"Dance Performance", 35, 150},
}

// seedBookings pairs indexes into seedUsers and seedEvents.
var seedBookings = [][2]int{
	{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2},
	{0, 3}, {1, 4}, {2, 2}, {3, 3}, {4, 4},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("seeding failed", "err", err)
		os.Exit(1)
	}
	logger.Info("database seeded successfully")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	userSvc := service.NewUserService(userRepo, logger)
	eventSvc := service.NewEventService(eventRepo, logger)
	bookingSvc := service.NewBookingService(userRepo, eventRepo, bookingRepo, nil, logger)

	userIDs := make([]int64, len(seedUsers))
	for i, req := range seedUsers {
		u, err := userSvc.GetUserByEmail(ctx, req.Email)
		if errors.Is(err, repository.ErrUserNotFound) {
			u, err = userSvc.CreateUser(ctx, req)
		}
		if err != nil {
			return fmt.Errorf("user %s: %w", req.Email, err)
		}
		userIDs[i] = u.ID
	}
	logger.Info("users ready", "count", len(userIDs))

	existing, err := eventSvc.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	byName := make(map[string]int64, len(existing))
	for _, e := range existing {
		byName[e.Name] = e.ID
	}

	today := model.DateOf(time.Now())
	eventIDs := make([]int64, len(seedEvents))
	for i, se := range seedEvents {
		if id, ok := byName[se.name]; ok {
			eventIDs[i] = id
			continue
		}
		e, err := eventSvc.CreateEvent(ctx, model.CreateEventRequest{
			Name:     se.name,
			Date:     today.AddDays(se.daysOut),
			Capacity: se.capacity,
		})
		if err != nil {
			return fmt.Errorf("event %s: %w", se.name, err)
		}
		eventIDs[i] = e.ID
	}
	logger.Info("events ready", "count", len(eventIDs))

	created := 0
	for _, pair := range seedBookings {
		_, err := bookingSvc.CreateBooking(ctx, model.CreateBookingRequest{
			UserID:  userIDs[pair[0]],
			EventID: eventIDs[pair[1]],
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, repository.ErrDuplicateBooking):
		default:
			return fmt.Errorf("booking user=%d event=%d: %w", userIDs[pair[0]], eventIDs[pair[1]], err)
		}
	}
	logger.Info("bookings ready", "created", created, "requested", len(seedBookings))
	return nil
}
