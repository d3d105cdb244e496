package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/carbonledger/internal/database"
	apperrors "github.com/allisson/carbonledger/internal/errors"
	"github.com/allisson/carbonledger/internal/token/domain"
)

// MySQLFundingRepository handles storage funding account persistence for MySQL.
type MySQLFundingRepository struct {
	db *sql.DB
}

// NewMySQLFundingRepository creates a new MySQLFundingRepository.
func NewMySQLFundingRepository(db *sql.DB) *MySQLFundingRepository {
	return &MySQLFundingRepository{
		db: db,
	}
}

// GetBalance returns the funding balance for an account, zero when the
// account has never been funded.
func (r *MySQLFundingRepository) GetBalance(ctx context.Context, address string) (uint64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT balance FROM funding_accounts WHERE address = ?`

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
func (r *MySQLFundingRepository) Credit(ctx context.Context, address string, amount uint64) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO funding_accounts (address, balance, updated_at)
			  VALUES (?, ?, NOW())
			  ON DUPLICATE KEY UPDATE balance = balance + VALUES(balance), updated_at = NOW()`

	if _, err := querier.ExecContext(ctx, query, address, amount); err != nil {
		return apperrors.Wrap(err, "failed to credit funding account")
	}
	return nil
}

// Debit subtracts amount from an account's funding balance.
func (r *MySQLFundingRepository) Debit(ctx context.Context, address string, amount uint64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE funding_accounts SET balance = balance - ?, updated_at = NOW()
			  WHERE address = ? AND balance >= ?`

	result, err := querier.ExecContext(ctx, query, amount, address, amount)
	if err != nil {
		return apperrors.Wrap(err, "failed to debit funding account")
	}
	return requireOneRow(result, domain.ErrInsufficientFunding)
}
