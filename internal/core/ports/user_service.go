package ports

import (
	"context"

	"github.com/userdesk/user-management/internal/core/domain"
)

// CreateUserInput carries all data needed to create a user. Fields arrive
// already validated; the service normalizes them before persisting.
type CreateUserInput struct {
	Name    string
	Email   string
	Contact string
	Avatar  *string
}

// UpdateUserInput carries a partial update. Nil fields are left untouched;
// supplied fields are re-normalized and re-checked.
type UpdateUserInput struct {
	Name    *string
	Email   *string
	Contact *string
	Avatar  *string
}

// ListUsersInput carries all parameters for the list endpoint. Zero values
// are replaced with defaults by the service (page 1, limit 10, createdAt desc).
type ListUsersInput struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// ListUsersResult is returned by ListUsers.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines the use-case operations of the user pipeline.
type UserService interface {
	// CreateUser persists a new active user. Retrying an identical create
	// fails with domain.ErrEmailExists rather than creating a duplicate.
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	// GetUser returns an active user, domain.ErrInvalidUserID on a
	// malformed id, or domain.ErrUserNotFound otherwise.
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// UpdateUser applies a partial update to an active user.
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	// DeleteUser soft-deletes an active user.
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context, input ListUsersInput) (*ListUsersResult, error)
	// UserStats reports aggregate counts; "recent" means created within
	// the trailing seven days at call time.
	UserStats(ctx context.Context) (*domain.UserStats, error)
}
