package services

import (
	"context"

	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
)

// ProfileSvcFacade resolves caller roles and bootstraps profiles.
type ProfileSvcFacade interface {
	// ResolveRole evaluates the profile role column first, then the
	// configured admin allow-list as an explicit secondary rule. This is the
	// single capability resolution step for the whole service.
	ResolveRole(ctx context.Context, profileID string) (domain.Role, error)
	// EnsureProfile returns the caller's profile, creating it when missing.
	// A failed bootstrap yields a Degraded outcome with an in-memory default
	// profile rather than an error, so the session stays auditable.
	EnsureProfile(ctx context.Context, profileID string, email string) (*domain.Profile, domain.ProvisionOutcome, error)
	// ProfilesByIDs batch-fetches profiles for display purposes.
	ProfilesByIDs(ctx context.Context, profileIDs []string) (map[string]domain.Profile, error)
}
