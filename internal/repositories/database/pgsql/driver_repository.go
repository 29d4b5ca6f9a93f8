package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	portsrepo "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/repositories"
	"github.com/Ernest01982/tuktukeazyadmin/internal/models"
	"github.com/Ernest01982/tuktukeazyadmin/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDriverRepository struct {
	pool *pgxpool.Pool
}

// NewPgxDriverRepository creates a new repository for driver records.
func NewPgxDriverRepository(pool *pgxpool.Pool) portsrepo.DriverRepositoryFacade {
	return &PgxDriverRepository{pool: pool}
}

var _ portsrepo.DriverRepositoryFacade = (*PgxDriverRepository)(nil)

const driverColumns = `id, name, phone, license_number, vehicle_type, vehicle_plate, is_verified, online, rating, total_rides, created_at, updated_at`

func scanDriver(row pgx.Row) (models.Driver, error) {
	var m models.Driver
	err := row.Scan(
		&m.DriverID,
		&m.Name,
		&m.Phone,
		&m.LicenseNumber,
		&m.VehicleType,
		&m.VehiclePlate,
		&m.IsVerified,
		&m.Online,
		&m.Rating,
		&m.TotalRides,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// FindDriverByID retrieves a driver by its ID.
func (r *PgxDriverRepository) FindDriverByID(ctx context.Context, driverID string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1;`

	m, err := scanDriver(r.pool.QueryRow(ctx, query, driverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find driver "+driverID, err)
	}

	driver := mapping.ToDomainDriver(m)
	return &driver, nil
}

// SearchDrivers matches query against driver name and vehicle plate,
// ordered by created_at descending. An empty query returns all drivers.
func (r *PgxDriverRepository) SearchDrivers(ctx context.Context, query string) ([]domain.Driver, error) {
	baseQuery := `SELECT ` + driverColumns + ` FROM drivers`
	orderClause := ` ORDER BY created_at DESC;`

	var rows pgx.Rows
	var err error
	if q := strings.TrimSpace(query); q != "" {
		pattern := "%" + q + "%"
		rows, err = r.pool.Query(ctx, baseQuery+` WHERE name ILIKE $1 OR vehicle_plate ILIKE $1`+orderClause, pattern)
	} else {
		rows, err = r.pool.Query(ctx, baseQuery+orderClause)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to search drivers", err)
	}
	defer rows.Close()

	drivers := []models.Driver{}
	for rows.Next() {
		m, err := scanDriver(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan driver row", err)
		}
		drivers = append(drivers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating driver rows", err)
	}

	return mapping.ToDomainDriverSlice(drivers), nil
}
