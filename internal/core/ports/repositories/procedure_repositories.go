package repositories

import "context"

// AdminCreateDriverParams carries the arguments of the admin_create_driver
// stored procedure. The procedure attaches the driver role and driver row to
// an existing identity, creating the profile when necessary; it has no
// password parameter since identity credentials never cross this path.
type AdminCreateDriverParams struct {
	Email         string
	Name          string
	Phone         string
	LicenseNumber string
	VehicleType   string
	VehiclePlate  string
	IsVerified    bool
}

// ProcedureRepositoryFacade invokes named stored procedures against the
// store with service privilege. It is the secondary channel of the dual-path
// command executor.
type ProcedureRepositoryFacade interface {
	// AdminCreateDriver runs the admin_create_driver procedure and returns
	// the driver identity ID.
	AdminCreateDriver(ctx context.Context, params AdminCreateDriverParams) (string, error)
}
