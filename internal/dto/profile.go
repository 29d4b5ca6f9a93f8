package dto

import "github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"

// ProfileResponse defines the data returned for the caller's own profile,
// including the provisioning outcome so degraded sessions stay observable.
type ProfileResponse struct {
	ProfileID      string `json:"profileID"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	ProvisionState string `json:"provisionState"`
	DegradedReason string `json:"degradedReason,omitempty"`
}

// ToProfileResponse converts a domain.Profile plus bootstrap outcome to ProfileResponse.
func ToProfileResponse(p *domain.Profile, outcome domain.ProvisionOutcome) ProfileResponse {
	return ProfileResponse{
		ProfileID:      p.ProfileID,
		Email:          p.Email,
		Role:           string(p.Role),
		ProvisionState: string(outcome.State),
		DegradedReason: outcome.Reason,
	}
}
