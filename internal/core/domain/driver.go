package domain

import "time"

// Driver is the operational driver record, distinct from the ledger.
// Referenced by payouts via its ID.
type Driver struct {
	DriverID      string    `json:"driverID"` // Primary Key (UUID), shared with the identity record
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"licenseNumber"`
	VehicleType   string    `json:"vehicleType"`
	VehiclePlate  string    `json:"vehiclePlate"`
	IsVerified    bool      `json:"isVerified"`
	Online        bool      `json:"online"`
	Rating        float64   `json:"rating"`
	TotalRides    int       `json:"totalRides"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
