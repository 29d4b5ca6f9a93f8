package models

import "time"

// Profile mirrors the profiles table.
type Profile struct {
	ProfileID string
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
