package service

import (
	"context"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListUsers returns all users, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// SetActive enables or disables an account. Disabling does not revoke issued
// tokens; they are refused at resolution time instead.
func (s *UserService) SetActive(ctx context.Context, userID string, active bool) error {
	return s.Store.Users().SetUserActive(ctx, userID, active)
}
