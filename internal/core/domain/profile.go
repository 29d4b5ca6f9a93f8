package domain

import "time"

// Role is the platform role attached to a profile.
type Role string

const (
	RoleRider  Role = "rider"
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleRider, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// Profile is the identity record for an authenticated user.
type Profile struct {
	ProfileID string    `json:"profileID"` // Matches the auth subject (UUID)
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProvisionState describes the outcome of a profile bootstrap. A Degraded
// session runs on a substituted default profile and must be observable, never
// silently indistinguishable from a fully provisioned one.
type ProvisionState string

const (
	Provisioned ProvisionState = "provisioned"
	Degraded    ProvisionState = "degraded"
)

// ProvisionOutcome pairs a bootstrap state with the reason when degraded.
type ProvisionOutcome struct {
	State  ProvisionState `json:"state"`
	Reason string         `json:"reason,omitempty"`
}
