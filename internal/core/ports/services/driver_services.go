package services

import (
	"context"

	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	"github.com/Ernest01982/tuktukeazyadmin/internal/dto"
)

// DriverSvcFacade exposes driver provisioning and directory reads.
type DriverSvcFacade interface {
	// CreateDriver executes the dual-path provisioning command. The result
	// reports which channel satisfied it; a missing email fails fast before
	// any network call.
	CreateDriver(ctx context.Context, req dto.CreateDriverRequest) (*domain.CommandResult, error)
	SearchDrivers(ctx context.Context, query string) ([]domain.Driver, error)
}
