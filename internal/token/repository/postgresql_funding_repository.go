package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/carbonledger/internal/database"
	apperrors "github.com/allisson/carbonledger/internal/errors"
	"github.com/allisson/carbonledger/internal/token/domain"
)

// PostgreSQLFundingRepository handles storage funding account persistence for PostgreSQL.
type PostgreSQLFundingRepository struct {
	db *sql.DB
}

// NewPostgreSQLFundingRepository creates a new PostgreSQLFundingRepository.
func NewPostgreSQLFundingRepository(db *sql.DB) *PostgreSQLFundingRepository {
	return &PostgreSQLFundingRepository{
		db: db,
	}
}

// GetBalance returns the funding balance for an account, zero when the
// account has never been funded.
func (r *PostgreSQLFundingRepository) GetBalance(ctx context.Context, address string) (uint64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT balance FROM funding_accounts WHERE address = $1`

	var balance uint64
	err := querier.QueryRowContext(ctx, query, address).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, apperrors.Wrap(err, "failed to get funding balance")
	}
	return balance, nil
}

// Credit adds amount to an account's funding balance, creating it when absent.
func (r *PostgreSQLFundingRepository) Credit(ctx context.Context, address string, amount uint64) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO funding_accounts (address, balance, updated_at)
			  VALUES ($1, $2, NOW())
			  ON CONFLICT (address)
			  DO UPDATE SET balance = funding_accounts.balance + EXCLUDED.balance, updated_at = NOW()`

	if _, err := querier.ExecContext(ctx, query, address, amount); err != nil {
		return apperrors.Wrap(err, "failed to credit funding account")
	}
	return nil
}

// Debit subtracts amount from an account's funding balance, failing when the
// balance cannot cover it.
func (r *PostgreSQLFundingRepository) Debit(ctx context.Context, address string, amount uint64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE funding_accounts SET balance = balance - $1, updated_at = NOW()
			  WHERE address = $2 AND balance >= $1`

	result, err := querier.ExecContext(ctx, query, amount, address)
	if err != nil {
		return apperrors.Wrap(err, "failed to debit funding account")
	}
	return requireOneRow(result, domain.ErrInsufficientFunding)
}
