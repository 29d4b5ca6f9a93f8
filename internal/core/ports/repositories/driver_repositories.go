package repositories

import (
	"context"

	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
)

// DriverRepositoryFacade defines persistence operations for driver records.
type DriverRepositoryFacade interface {
	// FindDriverByID returns the driver or apperrors.ErrNotFound.
	FindDriverByID(ctx context.Context, driverID string) (*domain.Driver, error)
	// SearchDrivers matches query against name and vehicle plate
	// (case-insensitive substring), ordered by created_at descending.
	// An empty query returns all drivers.
	SearchDrivers(ctx context.Context, query string) ([]domain.Driver, error)
}
