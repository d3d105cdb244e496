package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/carbonledger/internal/database"
	apperrors "github.com/allisson/carbonledger/internal/errors"
	"github.com/allisson/carbonledger/internal/token/domain"
)

// MySQLMintRepository handles mint persistence for MySQL.
type MySQLMintRepository struct {
	db *sql.DB
}

// NewMySQLMintRepository creates a new MySQLMintRepository.
func NewMySQLMintRepository(db *sql.DB) *MySQLMintRepository {
	return &MySQLMintRepository{
		db: db,
	}
}

// Create inserts a new mint.
func (r *MySQLMintRepository) Create(ctx context.Context, mint *domain.Mint) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO mints (id, address, decimals, supply, status, mint_authority, close_authority,
			  metadata_pointer, transfer_hook, transfer_fee_bps, permanent_delegate, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	_, err := querier.ExecContext(
		ctx, query,
		mint.ID.String(), mint.Address, mint.Decimals, mint.Supply, string(mint.Status),
		mint.MintAuthority, mint.CloseAuthority, mint.MetadataPointer,
		mint.TransferHook, mint.TransferFeeBasisPoints, mint.PermanentDelegate,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrMintAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create mint")
	}
	return nil
}

// GetByAddress retrieves a mint by address.
func (r *MySQLMintRepository) GetByAddress(ctx context.Context, address string) (*domain.Mint, error) {
	return r.getByAddress(ctx, address, false)
}

// GetByAddressForUpdate retrieves a mint by address with a row lock.
func (r *MySQLMintRepository) GetByAddressForUpdate(ctx context.Context, address string) (*domain.Mint, error) {
	return r.getByAddress(ctx, address, true)
}

func (r *MySQLMintRepository) getByAddress(ctx context.Context, address string, forUpdate bool) (*domain.Mint, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, address, decimals, supply, status, mint_authority, close_authority,
			  metadata_pointer, transfer_hook, transfer_fee_bps, permanent_delegate, created_at
			  FROM mints WHERE address = ?`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var mint domain.Mint
	var status string
	var id string

	err := querier.QueryRowContext(ctx, query, address).Scan(
		&id, &mint.Address, &mint.Decimals, &mint.Supply, &status,
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

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse mint id")
	}
	mint.ID = parsedID
	mint.Status = domain.MintStatus(status)

	return &mint, nil
}

// AddSupply increments the mint supply.
func (r *MySQLMintRepository) AddSupply(ctx context.Context, address string, amount uint64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE mints SET supply = supply + ? WHERE address = ?`

	result, err := querier.ExecContext(ctx, query, amount, address)
	if err != nil {
		return apperrors.Wrap(err, "failed to add mint supply")
	}
	return requireOneRow(result, domain.ErrMintNotFound)
}

// SubSupply decrements the mint supply, guarding against underflow.
func (r *MySQLMintRepository) SubSupply(ctx context.Context, address string, amount uint64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE mints SET supply = supply - ? WHERE address = ? AND supply >= ?`

	result, err := querier.ExecContext(ctx, query, amount, address, amount)
	if err != nil {
		return apperrors.Wrap(err, "failed to sub mint supply")
	}
	return requireOneRow(result, domain.ErrInsufficientBalance)
}

// RevokeMintAuthority clears the mint authority and freezes the mint.
func (r *MySQLMintRepository) RevokeMintAuthority(ctx context.Context, address string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE mints SET mint_authority = NULL, status = ? WHERE address = ?`

	result, err := querier.ExecContext(ctx, query, string(domain.MintStatusFrozen), address)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke mint authority")
	}
	return requireOneRow(result, domain.ErrMintNotFound)
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
