package models

import "time"

// Driver mirrors the drivers table.
type Driver struct {
	DriverID      string
	Name          string
	Phone         string
	LicenseNumber string
	VehicleType   string
	VehiclePlate  string
	IsVerified    bool
	Online        bool
	Rating        float64
	TotalRides    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
