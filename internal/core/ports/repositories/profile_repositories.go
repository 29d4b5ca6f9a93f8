package repositories

import (
	"context"

	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
)

// ProfileRepositoryFacade defines persistence operations for identity profiles.
type ProfileRepositoryFacade interface {
	// FindProfileByID returns the profile or apperrors.ErrNotFound.
	FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error)
	// FindProfilesByIDs returns profiles keyed by ID for the given set.
	FindProfilesByIDs(ctx context.Context, profileIDs []string) (map[string]domain.Profile, error)
	// SaveProfile inserts a new profile. A duplicate ID returns apperrors.ErrDuplicate.
	SaveProfile(ctx context.Context, profile domain.Profile) error
}
