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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type PgxLedgerRepository struct {
	BaseRepository
}

// NewPgxLedgerRepository creates a new repository for ledger transaction and entry data.
func NewPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// CreateTransaction inserts the transaction row and all of its entries within
// one database transaction. Either everything commits or nothing does; an
// entry is never visible before its owning transaction.
func (r *PgxLedgerRepository) CreateTransaction(ctx context.Context, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	modelTxn := mapping.ToModelLedgerTransaction(txn)
	txnQuery := `
		INSERT INTO ledger_transactions (id, occurred_at, created_by, ride_id, description, external_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, txnQuery,
		modelTxn.TransactionID,
		modelTxn.OccurredAt,
		modelTxn.CreatedBy,
		modelTxn.RideID,
		modelTxn.Description,
		modelTxn.ExternalRef,
		modelTxn.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			// The unique external_ref index serializes concurrent postings
			// of the same domain id: exactly one winner.
			return apperrors.ErrAlreadyPosted
		}
		return apperrors.NewAppError(500, "failed to insert ledger transaction "+modelTxn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (id, txn_id, account_id, debit, credit, currency)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, entry := range entries {
		modelEntry := mapping.ToModelLedgerEntry(entry)
		batch.Queue(entryQuery,
			modelEntry.EntryID,
			modelEntry.TransactionID,
			modelEntry.AccountID,
			modelEntry.Debit,
			modelEntry.Credit,
			modelEntry.Currency,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert entries for transaction "+modelTxn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// ListTransactions retrieves one page of ledger transactions ordered by
// occurrence timestamp descending, creation time descending as tiebreak.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, offset, limit int) ([]domain.LedgerTransaction, error) {
	query := `
		SELECT id, occurred_at, created_by, ride_id, description, external_ref, created_at
		FROM ledger_transactions
		ORDER BY occurred_at DESC, created_at DESC
		OFFSET $1 LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger transactions", err)
	}
	defer rows.Close()

	txns := []models.LedgerTransaction{}
	for rows.Next() {
		var m models.LedgerTransaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.OccurredAt,
			&m.CreatedBy,
			&m.RideID,
			&m.Description,
			&m.ExternalRef,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger transaction row", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger transaction rows", err)
	}

	return mapping.ToDomainLedgerTransactionSlice(txns), nil
}

// FindEntriesByTransactionID retrieves the entries of one transaction ordered
// by debit descending, then credit descending.
func (r *PgxLedgerRepository) FindEntriesByTransactionID(ctx context.Context, txnID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT id, txn_id, account_id, debit, credit, currency
		FROM ledger_entries
		WHERE txn_id = $1
		ORDER BY debit DESC, credit DESC;
	`
	rows, err := r.Pool.Query(ctx, query, txnID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for transaction "+txnID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.TransactionID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.Currency,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for transaction "+txnID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for transaction "+txnID, err)
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// TotalsForTransactions aggregates debit and credit sums per transaction id.
// Transactions without entries are absent from the result map.
func (r *PgxLedgerRepository) TotalsForTransactions(ctx context.Context, txnIDs []string) (map[string]domain.EntryTotals, error) {
	if len(txnIDs) == 0 {
		return map[string]domain.EntryTotals{}, nil
	}

	query := `
		SELECT txn_id, COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM ledger_entries
		WHERE txn_id = ANY($1)
		GROUP BY txn_id;
	`
	rows, err := r.Pool.Query(ctx, query, txnIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate entry totals", err)
	}
	defer rows.Close()

	totals := make(map[string]domain.EntryTotals, len(txnIDs))
	for rows.Next() {
		var txnID string
		var t domain.EntryTotals
		if err := rows.Scan(&txnID, &t.Debit, &t.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry totals row", err)
		}
		totals[txnID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry totals rows", err)
	}

	return totals, nil
}

// FindTransactionByExternalRef retrieves the transaction carrying an
// idempotency reference.
func (r *PgxLedgerRepository) FindTransactionByExternalRef(ctx context.Context, externalRef string) (*domain.LedgerTransaction, error) {
	query := `
		SELECT id, occurred_at, created_by, ride_id, description, external_ref, created_at
		FROM ledger_transactions
		WHERE external_ref = $1;
	`
	var m models.LedgerTransaction
	err := r.Pool.QueryRow(ctx, query, externalRef).Scan(
		&m.TransactionID,
		&m.OccurredAt,
		&m.CreatedBy,
		&m.RideID,
		&m.Description,
		&m.ExternalRef,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by external ref", err)
	}

	domainTxn := mapping.ToDomainLedgerTransaction(m)
	return &domainTxn, nil
}
