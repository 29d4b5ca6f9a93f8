package pgsql

import (
	"context"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	portsrepo "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/repositories"
	"github.com/Ernest01982/tuktukeazyadmin/internal/models"
	"github.com/Ernest01982/tuktukeazyadmin/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPgxAccountRepository creates a new repository for chart-of-accounts data.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// ListAccounts retrieves every account ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT id, code, name, type, is_active
		FROM accounts
		ORDER BY code;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(&m.AccountID, &m.Code, &m.Name, &m.Type, &m.IsActive); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}

// FindAccountsByCodes retrieves the accounts matching the given codes, keyed by code.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT id, code, name, type, is_active
		FROM accounts
		WHERE code = ANY($1);
	`
	rows, err := r.pool.Query(ctx, query, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by codes", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(codes))
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(&m.AccountID, &m.Code, &m.Name, &m.Type, &m.IsActive); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.Code] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	return result, nil
}
