package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	portsrepo "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/repositories"
	portssvc "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/services"
	"github.com/Ernest01982/tuktukeazyadmin/internal/middleware"
)

// profileService resolves caller capabilities and bootstraps profile rows.
// All role decisions in the service flow through ResolveRole; nothing else
// inspects the role column or the allow-list.
type profileService struct {
	profileRepo    portsrepo.ProfileRepositoryFacade
	adminAllowlist map[string]struct{}
}

// NewProfileService creates a new ProfileService. adminEmails is the
// configured allow-list of addresses granted admin capability when their
// profile row does not carry the admin role.
func NewProfileService(profileRepo portsrepo.ProfileRepositoryFacade, adminEmails []string) portssvc.ProfileSvcFacade {
	allowlist := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allowlist[email] = struct{}{}
		}
	}
	return &profileService{
		profileRepo:    profileRepo,
		adminAllowlist: allowlist,
	}
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

// ResolveRole returns the caller's effective role. The profile role column
// is authoritative; the allow-list is a secondary rule that can only widen
// the result to admin, never narrow it.
func (s *profileService) ResolveRole(ctx context.Context, profileID string) (domain.Role, error) {
	if profileID == "" {
		return "", fmt.Errorf("%w: profile ID is required", apperrors.ErrValidation)
	}

	profile, err := s.profileRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.RoleRider, nil
		}
		return "", err
	}

	if profile.Role == domain.RoleAdmin {
		return domain.RoleAdmin, nil
	}
	if s.isAllowlisted(profile.Email) {
		middleware.GetLoggerFromCtx(ctx).Info("Admin capability granted via allow-list", slog.String("profile_id", profileID))
		return domain.RoleAdmin, nil
	}
	if profile.Role.Valid() {
		return profile.Role, nil
	}
	return domain.RoleRider, nil
}

// EnsureProfile returns the caller's profile, creating the row on first
// contact. When the store cannot serve or create it, the session continues
// on an in-memory default profile and the outcome reports Degraded with the
// reason, so the condition is observable rather than a hard failure.
func (s *profileService) EnsureProfile(ctx context.Context, profileID string, email string) (*domain.Profile, domain.ProvisionOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if profileID == "" {
		return nil, domain.ProvisionOutcome{}, fmt.Errorf("%w: profile ID is required", apperrors.ErrValidation)
	}

	profile, err := s.profileRepo.FindProfileByID(ctx, profileID)
	if err == nil {
		return profile, domain.ProvisionOutcome{State: domain.Provisioned}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Profile lookup failed, continuing with default profile", slog.String("profile_id", profileID), slog.String("error", err.Error()))
		return s.defaultProfile(profileID, email), domain.ProvisionOutcome{
			State:  domain.Degraded,
			Reason: fmt.Sprintf("profile lookup failed: %v", err),
		}, nil
	}

	now := time.Now()
	fresh := domain.Profile{
		ProfileID: profileID,
		Email:     strings.ToLower(email),
		Role:      s.initialRole(email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.profileRepo.SaveProfile(ctx, fresh); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a bootstrap race; the winner's row is the real one.
			if existing, findErr := s.profileRepo.FindProfileByID(ctx, profileID); findErr == nil {
				return existing, domain.ProvisionOutcome{State: domain.Provisioned}, nil
			}
		}
		logger.Error("Profile bootstrap failed, continuing with default profile", slog.String("profile_id", profileID), slog.String("error", err.Error()))
		return s.defaultProfile(profileID, email), domain.ProvisionOutcome{
			State:  domain.Degraded,
			Reason: fmt.Sprintf("profile bootstrap failed: %v", err),
		}, nil
	}

	logger.Info("Profile bootstrapped on first contact", slog.String("profile_id", profileID), slog.String("role", string(fresh.Role)))
	return &fresh, domain.ProvisionOutcome{State: domain.Provisioned}, nil
}

func (s *profileService) ProfilesByIDs(ctx context.Context, profileIDs []string) (map[string]domain.Profile, error) {
	if len(profileIDs) == 0 {
		return map[string]domain.Profile{}, nil
	}
	profiles, err := s.profileRepo.FindProfilesByIDs(ctx, profileIDs)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Batch profile fetch failed", slog.String("error", err.Error()))
		return nil, err
	}
	return profiles, nil
}

func (s *profileService) isAllowlisted(email string) bool {
	_, ok := s.adminAllowlist[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

func (s *profileService) initialRole(email string) domain.Role {
	if s.isAllowlisted(email) {
		return domain.RoleAdmin
	}
	return domain.RoleRider
}

func (s *profileService) defaultProfile(profileID string, email string) *domain.Profile {
	now := time.Now()
	return &domain.Profile{
		ProfileID: profileID,
		Email:     strings.ToLower(email),
		Role:      s.initialRole(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
