package ports

import (
	"context"
	"time"

	"github.com/userdesk/user-management/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users. The
// repository only ever returns active records for list queries.
type ListUsersFilter struct {
	Search    string // optional: case-insensitive substring match on Name, Email or Contact
	SortBy    string // one of: name, email, contact, createdAt, updatedAt
	SortOrder string // "asc" or "desc"
	Page      int    // 1-based
	Limit     int    // max rows per page (capped at 100 by the handler)
}

// UserPatch holds the fields of a partial update. Nil pointers mean
// "leave the stored value untouched".
type UserPatch struct {
	Name    *string
	Email   *string
	Contact *string
	Avatar  *string
}

// IsEmpty reports whether the patch carries no changes at all.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Contact == nil && p.Avatar == nil
}

// UserRepository defines persistence operations for user records.
//
// ID-taking methods return domain.ErrInvalidUserID when the id is not a
// well-formed document id, and domain.ErrUserNotFound when no active
// record matches. Insert and Update return domain.ErrEmailExists on a
// duplicate-key rejection from the store's unique email index — the
// authoritative uniqueness guard.
type UserRepository interface {
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	// FindByID retrieves an active user by id.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail retrieves a user (active or soft-deleted) by normalized
	// email. When excludeID is non-empty that record is skipped, so an
	// update can re-check uniqueness against other records only.
	FindByEmail(ctx context.Context, email string, excludeID string) (*domain.User, error)
	// Update applies the non-nil patch fields to an active user and
	// returns the updated record.
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	// SoftDelete marks an active user inactive. The record itself survives.
	SoftDelete(ctx context.Context, id string) error
	// List returns a page of active users matching filter plus the total
	// match count before pagination.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	// Stats aggregates total, active and created-since counters in one pass.
	Stats(ctx context.Context, recentSince time.Time) (*domain.UserStats, error)
}
