package pgsql

import (
	"context"
	"strings"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
	portsrepo "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProcedureRepository struct {
	pool *pgxpool.Pool
}

// NewPgxProcedureRepository creates the stored-procedure caller used as the
// dual-path executor's secondary channel. The pool it runs on carries service
// privilege; caller authorization happens before commands reach this layer.
func NewPgxProcedureRepository(pool *pgxpool.Pool) portsrepo.ProcedureRepositoryFacade {
	return &PgxProcedureRepository{pool: pool}
}

var _ portsrepo.ProcedureRepositoryFacade = (*PgxProcedureRepository)(nil)

// AdminCreateDriver invokes the admin_create_driver procedure. The procedure
// treats an existing identity for the email as "attach role and driver row",
// so retrying the same email is not an error.
func (r *PgxProcedureRepository) AdminCreateDriver(ctx context.Context, params portsrepo.AdminCreateDriverParams) (string, error) {
	query := `SELECT admin_create_driver($1, $2, $3, $4, $5, $6, $7);`

	var driverID string
	err := r.pool.QueryRow(ctx, query,
		strings.ToLower(params.Email),
		nullable(params.Name),
		nullable(params.Phone),
		nullable(params.LicenseNumber),
		nullable(params.VehicleType),
		nullable(params.VehiclePlate),
		params.IsVerified,
	).Scan(&driverID)
	if err != nil {
		return "", apperrors.NewAppError(500, "admin_create_driver procedure failed", err)
	}

	return driverID, nil
}

// nullable maps an empty string to a SQL NULL argument.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
