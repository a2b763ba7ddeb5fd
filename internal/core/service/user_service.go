package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/userdesk/user-management/internal/core/domain"
	"github.com/userdesk/user-management/internal/core/ports"
)

const (
	defaultPage      = 1
	defaultLimit     = 10
	defaultSortBy    = "createdAt"
	defaultSortOrder = "desc"

	recentWindow = 7 * 24 * time.Hour
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger, now: time.Now}
}

// CreateUser normalizes the input, pre-checks email uniqueness against both
// active and soft-deleted records, and inserts a new active user. The
// pre-check only exists to produce an early, friendly Conflict; the unique
// index on the store is the authoritative guard, so a racing insert that
// slips past the pre-check still surfaces as domain.ErrEmailExists.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)

	existing, err := s.repo.FindByEmail(ctx, email, "")
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		s.logger.Error().Err(err).Msg("email pre-check failed")
		return nil, err
	}
	if existing != nil {
		s.logger.Info().Str("email", email).Msg("create rejected, email taken")
		return nil, domain.ErrEmailExists
	}

	now := s.now().UTC()
	user := &domain.User{
		Name:      domain.NormalizeText(input.Name),
		Email:     email,
		Contact:   domain.NormalizeText(input.Contact),
		Avatar:    input.Avatar,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			// Lost the race against a concurrent create with the same email.
			s.logger.Info().Str("email", email).Msg("create rejected by unique index")
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to insert user")
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user created")
	return created, nil
}

// GetUser returns the active user for id. A malformed id and a lookup miss
// are distinct errors internally (the former is logged as such) even though
// the router maps them to different HTTP statuses.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidUserID) {
			s.logger.Debug().Str("user_id", id).Msg("malformed user id")
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update: only supplied fields change, each
// re-normalized. A supplied email that differs from the stored value is
// re-checked for uniqueness against every record except the user itself.
func (s *UserService) UpdateUser(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := ports.UserPatch{Avatar: input.Avatar}
	if input.Name != nil {
		name := domain.NormalizeText(*input.Name)
		patch.Name = &name
	}
	if input.Contact != nil {
		contact := domain.NormalizeText(*input.Contact)
		patch.Contact = &contact
	}
	if input.Email != nil {
		email := domain.NormalizeEmail(*input.Email)
		if email != current.Email {
			other, err := s.repo.FindByEmail(ctx, email, current.ID)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				s.logger.Error().Err(err).Msg("email pre-check failed")
				return nil, err
			}
			if other != nil {
				s.logger.Info().Str("user_id", id).Str("email", email).Msg("update rejected, email taken")
				return nil, domain.ErrEmailExists
			}
		}
		patch.Email = &email
	}

	if patch.IsEmpty() {
		return current, nil
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			s.logger.Info().Str("user_id", id).Msg("update rejected by unique index")
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

// DeleteUser soft-deletes: the record stays in the collection with
// isActive=false so its email keeps occupying the uniqueness space.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidUserID) {
			return err
		}
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to soft-delete user")
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user soft-deleted")
	return nil
}

// ListUsers pages through active users. Ties on the sort key fall back to
// the store's natural order, so pagination across ties is only as stable
// as insertion order — a known limitation at low timestamp resolution.
func (s *UserService) ListUsers(ctx context.Context, input ports.ListUsersInput) (*ports.ListUsersResult, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	sortBy := input.SortBy
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	sortOrder := input.SortOrder
	if sortOrder == "" {
		sortOrder = defaultSortOrder
	}

	users, total, err := s.repo.List(ctx, ports.ListUsersFilter{
		Search:    domain.NormalizeText(input.Search),
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, err
	}

	return &ports.ListUsersResult{
		Items:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// UserStats aggregates counts at call time; nothing is cached.
func (s *UserService) UserStats(ctx context.Context) (*domain.UserStats, error) {
	stats, err := s.repo.Stats(ctx, s.now().UTC().Add(-recentWindow))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to aggregate user stats")
		return nil, err
	}
	return stats, nil
}
