// Package repository provides data persistence implementations for authority records.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/allisson/carbonledger/internal/authority/domain"
	"github.com/allisson/carbonledger/internal/database"
	apperrors "github.com/allisson/carbonledger/internal/errors"
)

// PostgreSQLAuthorityRepository handles authority record persistence for PostgreSQL.
type PostgreSQLAuthorityRepository struct {
	db *sql.DB
}

// NewPostgreSQLAuthorityRepository creates a new PostgreSQLAuthorityRepository.
func NewPostgreSQLAuthorityRepository(db *sql.DB) *PostgreSQLAuthorityRepository {
	return &PostgreSQLAuthorityRepository{
		db: db,
	}
}

// Create inserts a new authority record. The unique constraint on address is
// the database-level guard against double issuance at a derived address.
func (r *PostgreSQLAuthorityRepository) Create(ctx context.Context, rec *domain.Record) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO authority_records (id, address, role, resource, owner_principal, credit_mint, transfer_hook, bump, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`

	_, err := querier.ExecContext(
		ctx, query,
		rec.ID, rec.Address, string(rec.Role), rec.Resource,
		rec.Owner, rec.CreditMint, rec.TransferHook, rec.Bump,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrRecordAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create authority record")
	}
	return nil
}

// GetByAddress retrieves an authority record by its derived address.
func (r *PostgreSQLAuthorityRepository) GetByAddress(ctx context.Context, address string) (*domain.Record, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, address, role, resource, owner_principal, credit_mint, transfer_hook, bump, created_at
			  FROM authority_records WHERE address = $1`

	return r.scanRecord(querier.QueryRowContext(ctx, query, address))
}

// GetByRoleAndResource retrieves the authority record for a (role, resource) pair.
func (r *PostgreSQLAuthorityRepository) GetByRoleAndResource(
	ctx context.Context, role domain.Role, resource string,
) (*domain.Record, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, address, role, resource, owner_principal, credit_mint, transfer_hook, bump, created_at
			  FROM authority_records WHERE role = $1 AND resource = $2`

	return r.scanRecord(querier.QueryRowContext(ctx, query, string(role), resource))
}

// GetByRoleAndOwner retrieves the authority record a principal owns for a role.
func (r *PostgreSQLAuthorityRepository) GetByRoleAndOwner(
	ctx context.Context, role domain.Role, owner string,
) (*domain.Record, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, address, role, resource, owner_principal, credit_mint, transfer_hook, bump, created_at
			  FROM authority_records WHERE role = $1 AND owner_principal = $2`

	return r.scanRecord(querier.QueryRowContext(ctx, query, string(role), owner))
}

func (r *PostgreSQLAuthorityRepository) scanRecord(row *sql.Row) (*domain.Record, error) {
	var rec domain.Record
	var role string

	err := row.Scan(
		&rec.ID, &rec.Address, &role, &rec.Resource,
		&rec.Owner, &rec.CreditMint, &rec.TransferHook, &rec.Bump, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get authority record")
	}
	rec.Role = domain.Role(role)

	return &rec, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
