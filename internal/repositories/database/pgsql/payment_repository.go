package pgsql

import (
	"context"
	"errors"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	portsrepo "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/repositories"
	"github.com/Ernest01982/tuktukeazyadmin/internal/models"
	"github.com/Ernest01982/tuktukeazyadmin/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPaymentRepository creates a new repository for captured payments.
func NewPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{pool: pool}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `id, ride_id, amount, currency, processor_fee, processor_ref, status, created_at`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.RideID,
		&m.Amount,
		&m.Currency,
		&m.ProcessorFee,
		&m.ProcessorRef,
		&m.Status,
		&m.CreatedAt,
	)
	return m, err
}

// FindPaymentByRideID retrieves the payment captured for a ride.
func (r *PgxPaymentRepository) FindPaymentByRideID(ctx context.Context, rideID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE ride_id = $1;`

	m, err := scanPayment(r.pool.QueryRow(ctx, query, rideID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment for ride "+rideID, err)
	}

	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

// ListPaymentsByRideIDs retrieves payments for a set of rides, keyed by ride ID.
func (r *PgxPaymentRepository) ListPaymentsByRideIDs(ctx context.Context, rideIDs []string) (map[string]domain.Payment, error) {
	if len(rideIDs) == 0 {
		return map[string]domain.Payment{}, nil
	}

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE ride_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, rideIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments by ride ids", err)
	}
	defer rows.Close()

	payments := make(map[string]domain.Payment, len(rideIDs))
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments[m.RideID] = mapping.ToDomainPayment(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}

	return payments, nil
}
