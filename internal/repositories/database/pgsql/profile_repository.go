package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	portsrepo "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/repositories"
	"github.com/Ernest01982/tuktukeazyadmin/internal/models"
	"github.com/Ernest01982/tuktukeazyadmin/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPgxProfileRepository creates a new repository for identity profiles.
func NewPgxProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &PgxProfileRepository{pool: pool}
}

var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

// FindProfileByID retrieves a profile by its ID.
func (r *PgxProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	query := `
		SELECT id, email, role, created_at, updated_at
		FROM profiles
		WHERE id = $1;
	`
	var m models.Profile
	err := r.pool.QueryRow(ctx, query, profileID).Scan(
		&m.ProfileID,
		&m.Email,
		&m.Role,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find profile "+profileID, err)
	}

	profile := mapping.ToDomainProfile(m)
	return &profile, nil
}

// FindProfilesByIDs retrieves profiles for a set of IDs, keyed by ID.
func (r *PgxProfileRepository) FindProfilesByIDs(ctx context.Context, profileIDs []string) (map[string]domain.Profile, error) {
	if len(profileIDs) == 0 {
		return map[string]domain.Profile{}, nil
	}

	query := `
		SELECT id, email, role, created_at, updated_at
		FROM profiles
		WHERE id = ANY($1);
	`
	rows, err := r.pool.Query(ctx, query, profileIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query profiles by ids", err)
	}
	defer rows.Close()

	profiles := make(map[string]domain.Profile, len(profileIDs))
	for rows.Next() {
		var m models.Profile
		if err := rows.Scan(&m.ProfileID, &m.Email, &m.Role, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan profile row", err)
		}
		profiles[m.ProfileID] = mapping.ToDomainProfile(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating profile rows", err)
	}

	return profiles, nil
}

// SaveProfile inserts a new profile.
func (r *PgxProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	query := `
		INSERT INTO profiles (id, email, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ProfileID,
		profile.Email,
		string(profile.Role),
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: profile %s already exists", apperrors.ErrDuplicate, profile.ProfileID)
		}
		return apperrors.NewAppError(500, "failed to save profile "+profile.ProfileID, err)
	}
	return nil
}
