package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/carbonledger/internal/audit/domain"
	auditService "github.com/allisson/carbonledger/internal/audit/service"
)

type mockEntryRepository struct {
	mock.Mock
}

func (m *mockEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockEntryRepository) GetLastForUpdate(ctx context.Context) (*domain.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *mockEntryRepository) List(ctx context.Context, fromSequence uint64, limit int) ([]*domain.Entry, error) {
	args := m.Called(ctx, fromSequence, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entry), args.Error(1)
}

// memoryEntryRepository is an in-memory chain store for end-to-end
// record/verify tests.
type memoryEntryRepository struct {
	entries []*domain.Entry
}

func (m *memoryEntryRepository) Create(_ context.Context, entry *domain.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryEntryRepository) GetLastForUpdate(_ context.Context) (*domain.Entry, error) {
	if len(m.entries) == 0 {
		return nil, domain.ErrEntryNotFound
	}
	return m.entries[len(m.entries)-1], nil
}

func (m *memoryEntryRepository) List(_ context.Context, fromSequence uint64, limit int) ([]*domain.Entry, error) {
	var out []*domain.Entry
	for _, entry := range m.entries {
		if entry.Sequence >= fromSequence && len(out) < limit {
			out = append(out, entry)
		}
	}
	return out, nil
}

func TestAuditRecord(t *testing.T) {
	ctx := context.Background()
	signer := auditService.NewSigner([]byte("test-signing-secret"))

	t.Run("anchors the first entry with an empty prev hash", func(t *testing.T) {
		repo := &mockEntryRepository{}
		uc := NewAuditUseCase(repo, signer)
		repo.On("GetLastForUpdate", ctx).Return(nil, domain.ErrEntryNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(entry *domain.Entry) bool {
			return entry.Sequence == 1 && len(entry.PrevHash) == 0 && signer.Verify(entry) == nil
		})).Return(nil)

		err := uc.Record(ctx, "governance.initialize", "governance-root", "", nil)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("links each entry to the previous signature", func(t *testing.T) {
		repo := &memoryEntryRepository{}
		uc := NewAuditUseCase(repo, signer)

		require.NoError(t, uc.Record(ctx, "governance.initialize", "governance-root", "", nil))
		require.NoError(t, uc.Record(ctx, "ledger.set_quota", "governance-root", "cert-mint", map[string]string{"available_credits": "100"}))
		require.NoError(t, uc.Record(ctx, "ledger.mint_credits", "minter-principal", "cert-mint", map[string]string{"amount": "30"}))

		require.Len(t, repo.entries, 3)
		assert.Equal(t, repo.entries[0].Signature, repo.entries[1].PrevHash)
		assert.Equal(t, repo.entries[1].Signature, repo.entries[2].PrevHash)
	})
}

func TestAuditVerifyChain(t *testing.T) {
	ctx := context.Background()
	signer := auditService.NewSigner([]byte("test-signing-secret"))

	buildChain := func(t *testing.T, n int) *memoryEntryRepository {
		repo := &memoryEntryRepository{}
		uc := NewAuditUseCase(repo, signer)
		for i := 0; i < n; i++ {
			require.NoError(t, uc.Record(ctx, "ledger.mint_credits", "minter-principal", "cert-mint", map[string]string{"n": seqLabel(i)}))
		}
		return repo
	}

	t.Run("verifies an intact chain", func(t *testing.T) {
		repo := buildChain(t, 5)
		uc := NewAuditUseCase(repo, signer)

		result, err := uc.VerifyChain(ctx)
		require.NoError(t, err)
		assert.True(t, result.Verified)
		assert.Equal(t, 5, result.Entries)
		assert.Equal(t, uint64(5), result.LastSeq)
	})

	t.Run("verifies an empty chain", func(t *testing.T) {
		uc := NewAuditUseCase(&memoryEntryRepository{}, signer)

		result, err := uc.VerifyChain(ctx)
		require.NoError(t, err)
		assert.True(t, result.Verified)
		assert.Equal(t, 0, result.Entries)
	})

	t.Run("detects a tampered entry", func(t *testing.T) {
		repo := buildChain(t, 5)
		repo.entries[2].Details["n"] = "tampered"
		uc := NewAuditUseCase(repo, signer)

		_, err := uc.VerifyChain(ctx)
		assert.ErrorIs(t, err, domain.ErrSignatureInvalid)
	})

	t.Run("detects a dropped entry", func(t *testing.T) {
		repo := buildChain(t, 5)
		repo.entries = append(repo.entries[:2], repo.entries[3:]...)
		uc := NewAuditUseCase(repo, signer)

		_, err := uc.VerifyChain(ctx)
		assert.ErrorIs(t, err, domain.ErrChainBroken)
	})

	t.Run("detects a relinked chain", func(t *testing.T) {
		repo := buildChain(t, 3)
		repo.entries[2].PrevHash = repo.entries[0].Signature
		uc := NewAuditUseCase(repo, signer)

		_, err := uc.VerifyChain(ctx)
		assert.ErrorIs(t, err, domain.ErrChainBroken)
	})
}

func seqLabel(i int) string {
	return string(rune('0' + i))
}
