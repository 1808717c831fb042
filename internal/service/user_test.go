package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
	"github.com/Shivanand-hulikatti/ticket-booking/internal/repository"
)

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name      string
		req       model.CreateUserRequest
		wantErr   error
		wantEmail string
	}{
		{
			name:      "normalises email",
			req:       model.CreateUserRequest{Name: "  John Doe ", Email: " John@Example.COM "},
			wantEmail: "john@example.com",
		},
		{
			name:    "missing name",
			req:     model.CreateUserRequest{Name: "   ", Email: "john@example.com"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "name too long",
			req:     model.CreateUserRequest{Name: strings.Repeat("a", 101), Email: "john@example.com"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing email",
			req:     model.CreateUserRequest{Name: "John"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "email without domain dot",
			req:     model.CreateUserRequest{Name: "John", Email: "john@localhost"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "email with two at signs",
			req:     model.CreateUserRequest{Name: "John", Email: "john@@example.com"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "email too long",
			req:     model.CreateUserRequest{Name: "John", Email: strings.Repeat("j", 95) + "@example.com"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(userStore{&memStore{}}, discardLogger())
			u, err := svc.CreateUser(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmail, u.Email)
			assert.Equal(t, "John Doe", u.Name)
		})
	}
}

func TestUserService_DuplicateEmail(t *testing.T) {
	svc := NewUserService(userStore{&memStore{}}, discardLogger())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, model.CreateUserRequest{Name: "John", Email: "john@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, model.CreateUserRequest{Name: "Johnny", Email: "JOHN@example.com"})
	require.ErrorIs(t, err, repository.ErrDuplicateUser)
}

func TestUserService_Lookups(t *testing.T) {
	store := &memStore{}
	svc := NewUserService(userStore{store}, discardLogger())
	ctx := context.Background()
	john := store.addUser("John", "john@example.com")

	got, err := svc.GetUser(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, john.Email, got.Email)

	got, err = svc.GetUserByEmail(ctx, " JOHN@example.com")
	require.NoError(t, err)
	assert.Equal(t, john.ID, got.ID)

	_, err = svc.GetUser(ctx, 999)
	require.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = svc.GetUser(ctx, 0)
	require.ErrorIs(t, err, repository.ErrUserNotFound)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
