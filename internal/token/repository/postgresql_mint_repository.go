// Package repository provides data persistence implementations for the token service.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/allisson/carbonledger/internal/database"
	apperrors "github.com/allisson/carbonledger/internal/errors"
	"github.com/allisson/carbonledger/internal/token/domain"
)

// PostgreSQLMintRepository handles mint persistence for PostgreSQL.
type PostgreSQLMintRepository struct {
	db *sql.DB
}

// NewPostgreSQLMintRepository creates a new PostgreSQLMintRepository.
func NewPostgreSQLMintRepository(db *sql.DB) *PostgreSQLMintRepository {
	return &PostgreSQLMintRepository{
		db: db,
	}
}

// Create inserts a new mint.
func (r *PostgreSQLMintRepository) Create(ctx context.Context, mint *domain.Mint) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO mints (id, address, decimals, supply, status, mint_authority, close_authority,
			  metadata_pointer, transfer_hook, transfer_fee_bps, permanent_delegate, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())`

	_, err := querier.ExecContext(
		ctx, query,
		mint.ID, mint.Address, mint.Decimals, mint.Supply, string(mint.Status),
		mint.MintAuthority, mint.CloseAuthority, mint.MetadataPointer,
		mint.TransferHook, mint.TransferFeeBasisPoints, mint.PermanentDelegate,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrMintAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create mint")
	}
	return nil
}

// GetByAddress retrieves a mint by address.
func (r *PostgreSQLMintRepository) GetByAddress(ctx context.Context, address string) (*domain.Mint, error) {
	return r.getByAddress(ctx, address, false)
}

// GetByAddressForUpdate retrieves a mint by address, locking the row for the
// duration of the enclosing transaction. Mint and burn use it so two
// transactions cannot interleave supply updates on the same mint.
func (r *PostgreSQLMintRepository) GetByAddressForUpdate(ctx context.Context, address string) (*domain.Mint, error) {
	return r.getByAddress(ctx, address, true)
}

func (r *PostgreSQLMintRepository) getByAddress(ctx context.Context, address string, forUpdate bool) (*domain.Mint, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, address, decimals, supply, status, mint_authority, close_authority,
			  metadata_pointer, transfer_hook, transfer_fee_bps, permanent_delegate, created_at
			  FROM mints WHERE address = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var mint domain.Mint
	var status string

	err := querier.QueryRowContext(ctx, query, address).Scan(
		&mint.ID, &mint.Address, &mint.Decimals, &mint.Supply, &status,
		&mint.MintAuthority, &mint.CloseAuthority, &mint.MetadataPointer,
		&mint.TransferHook, &mint.TransferFeeBasisPoints, &mint.PermanentDelegate,
		&mint.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMintNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get mint")
	}
	mint.Status = domain.MintStatus(status)

	return &mint, nil
}

// AddSupply increments the mint supply.
func (r *PostgreSQLMintRepository) AddSupply(ctx context.Context, address string, amount uint64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE mints SET supply = supply + $1 WHERE address = $2`

	result, err := querier.ExecContext(ctx, query, amount, address)
	if err != nil {
		return apperrors.Wrap(err, "failed to add mint supply")
	}
	return requireOneRow(result, domain.ErrMintNotFound)
}

// SubSupply decrements the mint supply, guarding against underflow.
func (r *PostgreSQLMintRepository) SubSupply(ctx context.Context, address string, amount uint64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE mints SET supply = supply - $1 WHERE address = $2 AND supply >= $1`

	result, err := querier.ExecContext(ctx, query, amount, address)
	if err != nil {
		return apperrors.Wrap(err, "failed to sub mint supply")
	}
	return requireOneRow(result, domain.ErrInsufficientBalance)
}

// RevokeMintAuthority clears the mint authority and freezes the mint.
func (r *PostgreSQLMintRepository) RevokeMintAuthority(ctx context.Context, address string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE mints SET mint_authority = NULL, status = $1 WHERE address = $2`

	result, err := querier.ExecContext(ctx, query, string(domain.MintStatusFrozen), address)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke mint authority")
	}
	return requireOneRow(result, domain.ErrMintNotFound)
}

// requireOneRow converts a zero-row update into the provided domain error.
func requireOneRow(result sql.Result, notMatched error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return notMatched
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
