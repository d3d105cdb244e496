package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/carbonledger/internal/authority/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func recordColumns() []string {
	return []string{
		"id", "address", "role", "resource", "owner_principal",
		"credit_mint", "transfer_hook", "bump", "created_at",
	}
}

func testRecord() *domain.Record {
	addr, bump, _ := domain.FindAddress(domain.RoleMinter, "cert-mint")
	return &domain.Record{
		ID:         uuid.Must(uuid.NewV7()),
		Address:    addr,
		Role:       domain.RoleMinter,
		Resource:   "cert-mint",
		Owner:      "minter-principal-1",
		CreditMint: "credit-mint",
		Bump:       bump,
		CreatedAt:  time.Now(),
	}
}

func TestPostgreSQLAuthorityRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAuthorityRepository(db)
		rec := testRecord()

		mock.ExpectExec(`INSERT INTO authority_records`).
			WithArgs(
				rec.ID, rec.Address, string(rec.Role), rec.Resource,
				rec.Owner, rec.CreditMint, rec.TransferHook, rec.Bump,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, rec)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate address", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAuthorityRepository(db)
		rec := testRecord()

		mock.ExpectExec(`INSERT INTO authority_records`).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "authority_records_address_key"`))

		err := repo.Create(ctx, rec)
		assert.ErrorIs(t, err, domain.ErrRecordAlreadyExists)
	})
}

func TestPostgreSQLAuthorityRepository_GetByAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAuthorityRepository(db)
		rec := testRecord()

		rows := sqlmock.NewRows(recordColumns()).AddRow(
			rec.ID, rec.Address, string(rec.Role), rec.Resource,
			rec.Owner, rec.CreditMint, nil, rec.Bump, rec.CreatedAt,
		)
		mock.ExpectQuery(`SELECT .+ FROM authority_records WHERE address`).
			WithArgs(rec.Address).
			WillReturnRows(rows)

		got, err := repo.GetByAddress(ctx, rec.Address)
		require.NoError(t, err)
		assert.Equal(t, rec.Address, got.Address)
		assert.Equal(t, domain.RoleMinter, got.Role)
		assert.Equal(t, rec.Owner, got.Owner)
		assert.Nil(t, got.TransferHook)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAuthorityRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM authority_records WHERE address`).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.GetByAddress(ctx, "missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})
}

func TestPostgreSQLAuthorityRepository_GetByRoleAndResource(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewPostgreSQLAuthorityRepository(db)
	rec := testRecord()

	rows := sqlmock.NewRows(recordColumns()).AddRow(
		rec.ID, rec.Address, string(rec.Role), rec.Resource,
		rec.Owner, rec.CreditMint, nil, rec.Bump, rec.CreatedAt,
	)
	mock.ExpectQuery(`SELECT .+ FROM authority_records WHERE role = \$1 AND resource`).
		WithArgs(string(rec.Role), rec.Resource).
		WillReturnRows(rows)

	got, err := repo.GetByRoleAndResource(ctx, rec.Role, rec.Resource)
	require.NoError(t, err)
	assert.Equal(t, rec.Resource, got.Resource)
}

func TestPostgreSQLAuthorityRepository_GetByRoleAndOwner(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewPostgreSQLAuthorityRepository(db)
	rec := testRecord()

	rows := sqlmock.NewRows(recordColumns()).AddRow(
		rec.ID, rec.Address, string(rec.Role), rec.Resource,
		rec.Owner, rec.CreditMint, nil, rec.Bump, rec.CreatedAt,
	)
	mock.ExpectQuery(`SELECT .+ FROM authority_records WHERE role = \$1 AND owner_principal`).
		WithArgs(string(rec.Role), rec.Owner).
		WillReturnRows(rows)

	got, err := repo.GetByRoleAndOwner(ctx, rec.Role, rec.Owner)
	require.NoError(t, err)
	assert.Equal(t, rec.Owner, got.Owner)
}
