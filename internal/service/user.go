package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
)

// UserService orchestrates user registration and lookup.
type UserService struct {
	users  UserStore
	logger *slog.Logger
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// CreateUser validates and registers a new user. The email is stored
// trimmed and lower-cased; a taken email yields repository.ErrDuplicateUser.
func (s *UserService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validateName("name", req.Name, maxUserNameLen); err != nil {
		return nil, err
	}
	if req.Email == "" {
		return nil, invalid("email is required")
	}
	if len(req.Email) > maxEmailLen {
		return nil, invalid("email cannot exceed %d characters", maxEmailLen)
	}
	if !isValidEmail(req.Email) {
		return nil, invalid("email is not a valid email address")
	}

	u, err := s.users.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user created", "user_id", u.ID)
	return u, nil
}

// GetUser returns a single user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetUserByEmail returns the user registered with email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, invalid("email is required")
	}
	return s.users.GetByEmail(ctx, email)
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
