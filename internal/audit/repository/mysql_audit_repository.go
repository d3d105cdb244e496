package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/allisson/carbonledger/internal/audit/domain"
	"github.com/allisson/carbonledger/internal/database"
	apperrors "github.com/allisson/carbonledger/internal/errors"
)

// MySQLAuditRepository handles audit entry persistence for MySQL.
type MySQLAuditRepository struct {
	db *sql.DB
}

// NewMySQLAuditRepository creates a new MySQLAuditRepository.
func NewMySQLAuditRepository(db *sql.DB) *MySQLAuditRepository {
	return &MySQLAuditRepository{
		db: db,
	}
}

// Create inserts a new audit entry.
func (r *MySQLAuditRepository) Create(ctx context.Context, entry *domain.Entry) error {
	querier := database.GetTx(ctx, r.db)

	details, err := json.Marshal(entry.Details)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit details")
	}

	query := `INSERT INTO audit_entries (id, sequence, action, actor_principal, resource, details, prev_hash, signature, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx, query,
		entry.ID.String(), entry.Sequence, entry.Action, entry.Actor,
		entry.Resource, details, entry.PrevHash, entry.Signature, entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit entry")
	}
	return nil
}

// GetLastForUpdate retrieves the newest entry, locking it so concurrent
// appends serialize and the chain never forks.
func (r *MySQLAuditRepository) GetLastForUpdate(ctx context.Context) (*domain.Entry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, sequence, action, actor_principal, resource, details, prev_hash, signature, created_at
			  FROM audit_entries ORDER BY sequence DESC LIMIT 1 FOR UPDATE`

	entry, err := scanMySQLEntryColumns(querier.QueryRowContext(ctx, query).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// List retrieves entries in chain order starting at fromSequence.
func (r *MySQLAuditRepository) List(ctx context.Context, fromSequence uint64, limit int) ([]*domain.Entry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, sequence, action, actor_principal, resource, details, prev_hash, signature, created_at
			  FROM audit_entries WHERE sequence >= ? ORDER BY sequence ASC LIMIT ?`

	rows, err := querier.QueryContext(ctx, query, fromSequence, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit entries")
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanMySQLEntryColumns(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit entries")
	}
	return entries, nil
}

func scanMySQLEntryColumns(scan func(dest ...any) error) (*domain.Entry, error) {
	var entry domain.Entry
	var rawID string
	var details []byte

	err := scan(
		&rawID, &entry.Sequence, &entry.Action, &entry.Actor,
		&entry.Resource, &details, &entry.PrevHash, &entry.Signature, &entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to scan audit entry")
	}
	if entry.ID, err = parseEntryID(rawID); err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &entry.Details); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit details")
		}
	}
	return &entry, nil
}
