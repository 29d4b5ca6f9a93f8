package dto

import (
	"time"

	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
)

// CreateDriverRequest is the provisioning payload. Email is the only
// mandatory field; when password is omitted the primary path generates one
// server-side.
type CreateDriverRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password,omitempty"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"licenseNumber"`
	VehicleType   string `json:"vehicleType"`
	VehiclePlate  string `json:"vehiclePlate"`
	IsVerified    *bool  `json:"isVerified"` // Defaults to true when absent
}

// CreateDriverResponse reports the uniform dual-path outcome.
type CreateDriverResponse struct {
	Success   bool   `json:"success"`
	Path      string `json:"path"`
	CreatedID string `json:"createdID,omitempty"`
}

// DriverResponse defines the data returned for a driver record.
type DriverResponse struct {
	DriverID      string    `json:"driverID"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"licenseNumber"`
	VehicleType   string    `json:"vehicleType"`
	VehiclePlate  string    `json:"vehiclePlate"`
	IsVerified    bool      `json:"isVerified"`
	Online        bool      `json:"online"`
	Rating        float64   `json:"rating"`
	TotalRides    int       `json:"totalRides"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToDriverResponse converts a domain.Driver to DriverResponse.
func ToDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		DriverID:      d.DriverID,
		Name:          d.Name,
		Phone:         d.Phone,
		LicenseNumber: d.LicenseNumber,
		VehicleType:   d.VehicleType,
		VehiclePlate:  d.VehiclePlate,
		IsVerified:    d.IsVerified,
		Online:        d.Online,
		Rating:        d.Rating,
		TotalRides:    d.TotalRides,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDriverResponses converts a slice of domain.Driver to []DriverResponse.
func ToDriverResponses(drivers []domain.Driver) []DriverResponse {
	responses := make([]DriverResponse, len(drivers))
	for i := range drivers {
		responses[i] = ToDriverResponse(&drivers[i])
	}
	return responses
}
