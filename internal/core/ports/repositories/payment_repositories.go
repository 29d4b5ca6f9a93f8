package repositories

import (
	"context"

	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
)

// PaymentRepositoryFacade defines read operations over captured payments.
type PaymentRepositoryFacade interface {
	// FindPaymentByRideID returns the payment for a ride or apperrors.ErrNotFound.
	FindPaymentByRideID(ctx context.Context, rideID string) (*domain.Payment, error)
	// ListPaymentsByRideIDs returns payments keyed by ride ID for the given set.
	ListPaymentsByRideIDs(ctx context.Context, rideIDs []string) (map[string]domain.Payment, error)
}
