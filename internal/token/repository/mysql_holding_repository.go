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

// MySQLHoldingRepository handles holding persistence for MySQL.
type MySQLHoldingRepository struct {
	db *sql.DB
}

// NewMySQLHoldingRepository creates a new MySQLHoldingRepository.
func NewMySQLHoldingRepository(db *sql.DB) *MySQLHoldingRepository {
	return &MySQLHoldingRepository{
		db: db,
	}
}

// GetByMintAndOwner retrieves the holding for a (mint, owner) pair.
func (r *MySQLHoldingRepository) GetByMintAndOwner(
	ctx context.Context, mintAddress, owner string,
) (*domain.Holding, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, mint_address, owner_principal, balance, created_at, updated_at
			  FROM holdings WHERE mint_address = ? AND owner_principal = ?`

	var h domain.Holding
	var id string
	err := querier.QueryRowContext(ctx, query, mintAddress, owner).Scan(
		&id, &h.MintAddress, &h.Owner, &h.Balance, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHoldingNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get holding")
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse holding id")
	}
	h.ID = parsedID

	return &h, nil
}

// Credit adds amount to the (mint, owner) holding, creating it when absent.
func (r *MySQLHoldingRepository) Credit(ctx context.Context, mintAddress, owner string, amount uint64) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO holdings (id, mint_address, owner_principal, balance, created_at, updated_at)
			  VALUES (?, ?, ?, ?, NOW(), NOW())
			  ON DUPLICATE KEY UPDATE balance = balance + VALUES(balance), updated_at = NOW()`

	_, err := querier.ExecContext(ctx, query, uuid.Must(uuid.NewV7()).String(), mintAddress, owner, amount)
	if err != nil {
		return apperrors.Wrap(err, "failed to credit holding")
	}
	return nil
}

// Debit subtracts amount from the (mint, owner) holding.
func (r *MySQLHoldingRepository) Debit(ctx context.Context, mintAddress, owner string, amount uint64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE holdings SET balance = balance - ?, updated_at = NOW()
			  WHERE mint_address = ? AND owner_principal = ? AND balance >= ?`

	result, err := querier.ExecContext(ctx, query, amount, mintAddress, owner, amount)
	if err != nil {
		return apperrors.Wrap(err, "failed to debit holding")
	}
	return requireOneRow(result, domain.ErrInsufficientBalance)
}
