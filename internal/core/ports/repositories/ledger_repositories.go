package repositories

import (
	"context"

	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for the chart of accounts.
type AccountRepositoryFacade interface {
	// ListAccounts returns every account ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// FindAccountsByCodes returns the accounts matching the given codes,
	// keyed by code. Missing codes are simply absent from the map.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)
}

// LedgerRepositoryFacade defines persistence operations for ledger
// transactions and their entries. It carries no business logic; the
// accounting engine is the only caller of CreateTransaction.
type LedgerRepositoryFacade interface {
	// CreateTransaction atomically inserts the transaction row and every
	// entry, or nothing at all. A duplicate external reference returns
	// apperrors.ErrAlreadyPosted.
	CreateTransaction(ctx context.Context, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error
	// ListTransactions returns one page ordered by occurrence timestamp
	// descending, created_at descending as tiebreak.
	ListTransactions(ctx context.Context, offset, limit int) ([]domain.LedgerTransaction, error)
	// FindEntriesByTransactionID returns the entries of one transaction
	// ordered by debit descending, then credit descending.
	FindEntriesByTransactionID(ctx context.Context, txnID string) ([]domain.LedgerEntry, error)
	// TotalsForTransactions aggregates debit and credit sums per transaction.
	TotalsForTransactions(ctx context.Context, txnIDs []string) (map[string]domain.EntryTotals, error)
	// FindTransactionByExternalRef returns the transaction carrying the
	// given idempotency reference, or apperrors.ErrNotFound.
	FindTransactionByExternalRef(ctx context.Context, externalRef string) (*domain.LedgerTransaction, error)
}
