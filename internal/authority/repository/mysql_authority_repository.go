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

// MySQLAuthorityRepository handles authority record persistence for MySQL.
type MySQLAuthorityRepository struct {
	db *sql.DB
}

// NewMySQLAuthorityRepository creates a new MySQLAuthorityRepository.
func NewMySQLAuthorityRepository(db *sql.DB) *MySQLAuthorityRepository {
	return &MySQLAuthorityRepository{
		db: db,
	}
}

// Create inserts a new authority record.
func (r *MySQLAuthorityRepository) Create(ctx context.Context, rec *domain.Record) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO authority_records (id, address, role, resource, owner_principal, credit_mint, transfer_hook, bump, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	_, err := querier.ExecContext(
		ctx, query,
		rec.ID.String(), rec.Address, string(rec.Role), rec.Resource,
		rec.Owner, rec.CreditMint, rec.TransferHook, rec.Bump,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrRecordAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create authority record")
	}
	return nil
}

// GetByAddress retrieves an authority record by its derived address.
func (r *MySQLAuthorityRepository) GetByAddress(ctx context.Context, address string) (*domain.Record, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, address, role, resource, owner_principal, credit_mint, transfer_hook, bump, created_at
			  FROM authority_records WHERE address = ?`

	return r.scanRecord(querier.QueryRowContext(ctx, query, address))
}

// GetByRoleAndResource retrieves the authority record for a (role, resource) pair.
func (r *MySQLAuthorityRepository) GetByRoleAndResource(
	ctx context.Context, role domain.Role, resource string,
) (*domain.Record, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, address, role, resource, owner_principal, credit_mint, transfer_hook, bump, created_at
			  FROM authority_records WHERE role = ? AND resource = ?`

	return r.scanRecord(querier.QueryRowContext(ctx, query, string(role), resource))
}

// GetByRoleAndOwner retrieves the authority record a principal owns for a role.
func (r *MySQLAuthorityRepository) GetByRoleAndOwner(
	ctx context.Context, role domain.Role, owner string,
) (*domain.Record, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, address, role, resource, owner_principal, credit_mint, transfer_hook, bump, created_at
			  FROM authority_records WHERE role = ? AND owner_principal = ?`

	return r.scanRecord(querier.QueryRowContext(ctx, query, string(role), owner))
}

func (r *MySQLAuthorityRepository) scanRecord(row *sql.Row) (*domain.Record, error) {
	var rec domain.Record
	var role string
	var id string

	err := row.Scan(
		&id, &rec.Address, &role, &rec.Resource,
		&rec.Owner, &rec.CreditMint, &rec.TransferHook, &rec.Bump, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get authority record")
	}

	parsedID, err := parseRecordID(id)
	if err != nil {
		return nil, err
	}
	rec.ID = parsedID
	rec.Role = domain.Role(role)

	return &rec, nil
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
