package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/carbonledger/internal/database"
	apperrors "github.com/allisson/carbonledger/internal/errors"
	"github.com/allisson/carbonledger/internal/token/domain"
)

// MySQLMetadataRepository handles token metadata persistence for MySQL.
type MySQLMetadataRepository struct {
	db *sql.DB
}

// NewMySQLMetadataRepository creates a new MySQLMetadataRepository.
func NewMySQLMetadataRepository(db *sql.DB) *MySQLMetadataRepository {
	return &MySQLMetadataRepository{
		db: db,
	}
}

// Create initializes metadata for a mint.
func (r *MySQLMetadataRepository) Create(ctx context.Context, md *domain.Metadata) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO token_metadata (mint_address, name, symbol, uri, update_authority, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, md.MintAddress, md.Name, md.Symbol, md.URI, md.UpdateAuthority)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrMetadataAlreadyInitialized
		}
		return apperrors.Wrap(err, "failed to create token metadata")
	}
	return nil
}

// GetByMint retrieves metadata (without locking) for a mint.
func (r *MySQLMetadataRepository) GetByMint(ctx context.Context, mintAddress string) (*domain.Metadata, error) {
	return r.getByMint(ctx, mintAddress, false)
}

// GetByMintForUpdate retrieves metadata and locks the metadata row for the
// enclosing transaction.
func (r *MySQLMetadataRepository) GetByMintForUpdate(ctx context.Context, mintAddress string) (*domain.Metadata, error) {
	return r.getByMint(ctx, mintAddress, true)
}

func (r *MySQLMetadataRepository) getByMint(ctx context.Context, mintAddress string, forUpdate bool) (*domain.Metadata, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT mint_address, name, symbol, uri, update_authority, created_at, updated_at
			  FROM token_metadata WHERE mint_address = ?`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var md domain.Metadata
	err := querier.QueryRowContext(ctx, query, mintAddress).Scan(
		&md.MintAddress, &md.Name, &md.Symbol, &md.URI, &md.UpdateAuthority,
		&md.CreatedAt, &md.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMetadataNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token metadata")
	}

	fields, err := r.getFields(ctx, mintAddress)
	if err != nil {
		return nil, err
	}
	md.Fields = fields

	return &md, nil
}

func (r *MySQLMetadataRepository) getFields(ctx context.Context, mintAddress string) (map[string]string, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT field_key, field_value FROM token_metadata_fields WHERE mint_address = ?`

	rows, err := querier.QueryContext(ctx, query, mintAddress)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get token metadata fields")
	}
	defer rows.Close()

	fields := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan token metadata field")
		}
		fields[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate token metadata fields")
	}

	return fields, nil
}

// UpsertField writes one key/value into the metadata map.
func (r *MySQLMetadataRepository) UpsertField(ctx context.Context, mintAddress, key, value string) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO token_metadata_fields (mint_address, field_key, field_value)
			  VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE field_value = VALUES(field_value)`

	if _, err := querier.ExecContext(ctx, query, mintAddress, key, value); err != nil {
		return apperrors.Wrap(err, "failed to upsert token metadata field")
	}

	touch := `UPDATE token_metadata SET updated_at = NOW() WHERE mint_address = ?`
	if _, err := querier.ExecContext(ctx, touch, mintAddress); err != nil {
		return apperrors.Wrap(err, "failed to touch token metadata")
	}
	return nil
}
