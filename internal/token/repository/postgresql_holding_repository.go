package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/carbonledger/internal/database"
	apperrors "github.com/allisson/carbonledger/internal/errors"
	"github.com/allisson/carbonledger/internal/token/domain"
)

// PostgreSQLHoldingRepository handles holding persistence for PostgreSQL.
type PostgreSQLHoldingRepository struct {
	db *sql.DB
}

// NewPostgreSQLHoldingRepository creates a new PostgreSQLHoldingRepository.
func NewPostgreSQLHoldingRepository(db *sql.DB) *PostgreSQLHoldingRepository {
	return &PostgreSQLHoldingRepository{
		db: db,
	}
}

// GetByMintAndOwner retrieves the holding for a (mint, owner) pair.
func (r *PostgreSQLHoldingRepository) GetByMintAndOwner(
	ctx context.Context, mintAddress, owner string,
) (*domain.Holding, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, mint_address, owner_principal, balance, created_at, updated_at
			  FROM holdings WHERE mint_address = $1 AND owner_principal = $2`

	var h domain.Holding
	err := querier.QueryRowContext(ctx, query, mintAddress, owner).Scan(
		&h.ID, &h.MintAddress, &h.Owner, &h.Balance, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHoldingNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get holding")
	}

	return &h, nil
}

// Credit adds amount to the (mint, owner) holding, creating it when absent.
func (r *PostgreSQLHoldingRepository) Credit(ctx context.Context, mintAddress, owner string, amount uint64) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO holdings (id, mint_address, owner_principal, balance, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  ON CONFLICT (mint_address, owner_principal)
			  DO UPDATE SET balance = holdings.balance + EXCLUDED.balance, updated_at = NOW()`

	_, err := querier.ExecContext(ctx, query, uuid.Must(uuid.NewV7()), mintAddress, owner, amount)
	if err != nil {
		return apperrors.Wrap(err, "failed to credit holding")
	}
	return nil
}

// Debit subtracts amount from the (mint, owner) holding. The balance guard in
// the WHERE clause makes the debit atomic: a concurrent debit cannot drive
// the balance negative.
func (r *PostgreSQLHoldingRepository) Debit(ctx context.Context, mintAddress, owner string, amount uint64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE holdings SET balance = balance - $1, updated_at = NOW()
			  WHERE mint_address = $2 AND owner_principal = $3 AND balance >= $1`

	result, err := querier.ExecContext(ctx, query, amount, mintAddress, owner)
	if err != nil {
		return apperrors.Wrap(err, "failed to debit holding")
	}
	return requireOneRow(result, domain.ErrInsufficientBalance)
}
