package services

import (
	"context"

	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the accounting engine surface exposed to handlers. It is
// the only component permitted to create ledger transactions and entries.
type LedgerSvcFacade interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListTransactions(ctx context.Context, page, limit int) ([]domain.LedgerTransaction, error)
	EntriesFor(ctx context.Context, txnID string) ([]domain.LedgerEntry, error)
	TotalsFor(ctx context.Context, txnIDs []string) (map[string]domain.EntryTotals, error)
	// PaymentsForRides returns captured payments keyed by ride ID. Rides
	// without a payment are absent from the map.
	PaymentsForRides(ctx context.Context, rideIDs []string) (map[string]domain.Payment, error)
	// PostPayment posts the captured payment of rideID as one balanced
	// transaction. Posting the same ride twice returns
	// apperrors.ErrAlreadyPosted together with the winning transaction.
	PostPayment(ctx context.Context, rideID string, postedBy string) (*domain.LedgerTransaction, error)
	// PostPayout posts a driver payout. An empty currency falls back to the
	// configured default. Fails with apperrors.ErrValidation on a
	// non-positive amount and apperrors.ErrNotFound when the driver does
	// not exist.
	PostPayout(ctx context.Context, driverID string, amount decimal.Decimal, currency string, note string, postedBy string) (*domain.LedgerTransaction, error)
}
