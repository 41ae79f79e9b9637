package user

import "context"

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
	SetActive(ctx context.Context, id string, active bool) error

	// EnsureAdmin creates the first admin account when no users exist yet.
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
}
