package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailExists = errors.New("email already exists")
var ErrInvalidUserID = errors.New("invalid user id")

// User is the sole aggregate of the system. Name, Email and Contact keep
// their historical capitalised field names on the wire and in Mongo.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"Name"`
	Email     string     `json:"Email"`
	Contact   string     `json:"Contact"`
	Avatar    *string    `json:"avatar"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NormalizeEmail produces the uniqueness key for an email address:
// surrounding whitespace stripped, lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeText trims surrounding whitespace from free-text fields (Name, Contact).
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}

// UserStats carries the aggregate counters served by the stats endpoint.
// TotalUsers includes soft-deleted records; ActiveUsers does not.
type UserStats struct {
	TotalUsers  int64 `json:"totalUsers"`
	ActiveUsers int64 `json:"activeUsers"`
	RecentUsers int64 `json:"recentUsers"`
}
