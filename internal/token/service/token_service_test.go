package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/carbonledger/internal/token/domain"
)

type mockMintRepository struct {
	mock.Mock
}

func (m *mockMintRepository) Create(ctx context.Context, mint *domain.Mint) error {
	args := m.Called(ctx, mint)
	return args.Error(0)
}

func (m *mockMintRepository) GetByAddress(ctx context.Context, address string) (*domain.Mint, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mint), args.Error(1)
}

func (m *mockMintRepository) GetByAddressForUpdate(ctx context.Context, address string) (*domain.Mint, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mint), args.Error(1)
}

func (m *mockMintRepository) AddSupply(ctx context.Context, address string, amount uint64) error {
	args := m.Called(ctx, address, amount)
	return args.Error(0)
}

func (m *mockMintRepository) SubSupply(ctx context.Context, address string, amount uint64) error {
	args := m.Called(ctx, address, amount)
	return args.Error(0)
}

func (m *mockMintRepository) RevokeMintAuthority(ctx context.Context, address string) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

type mockMetadataRepository struct {
	mock.Mock
}

func (m *mockMetadataRepository) Create(ctx context.Context, md *domain.Metadata) error {
	args := m.Called(ctx, md)
	return args.Error(0)
}

func (m *mockMetadataRepository) GetByMint(ctx context.Context, mintAddress string) (*domain.Metadata, error) {
	args := m.Called(ctx, mintAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Metadata), args.Error(1)
}

func (m *mockMetadataRepository) GetByMintForUpdate(ctx context.Context, mintAddress string) (*domain.Metadata, error) {
	args := m.Called(ctx, mintAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Metadata), args.Error(1)
}

func (m *mockMetadataRepository) UpsertField(ctx context.Context, mintAddress, key, value string) error {
	args := m.Called(ctx, mintAddress, key, value)
	return args.Error(0)
}

type mockHoldingRepository struct {
	mock.Mock
}

func (m *mockHoldingRepository) GetByMintAndOwner(ctx context.Context, mintAddress, owner string) (*domain.Holding, error) {
	args := m.Called(ctx, mintAddress, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *mockHoldingRepository) Credit(ctx context.Context, mintAddress, owner string, amount uint64) error {
	args := m.Called(ctx, mintAddress, owner, amount)
	return args.Error(0)
}

func (m *mockHoldingRepository) Debit(ctx context.Context, mintAddress, owner string, amount uint64) error {
	args := m.Called(ctx, mintAddress, owner, amount)
	return args.Error(0)
}

type mockFundingRepository struct {
	mock.Mock
}

func (m *mockFundingRepository) GetBalance(ctx context.Context, address string) (uint64, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockFundingRepository) Credit(ctx context.Context, address string, amount uint64) error {
	args := m.Called(ctx, address, amount)
	return args.Error(0)
}

func (m *mockFundingRepository) Debit(ctx context.Context, address string, amount uint64) error {
	args := m.Called(ctx, address, amount)
	return args.Error(0)
}

func newServiceWithMocks() (TokenService, *mockMintRepository, *mockMetadataRepository, *mockHoldingRepository) {
	mintRepo := &mockMintRepository{}
	metadataRepo := &mockMetadataRepository{}
	holdingRepo := &mockHoldingRepository{}
	svc := NewTokenService(mintRepo, metadataRepo, holdingRepo)
	return svc, mintRepo, metadataRepo, holdingRepo
}

func mintableMint(address, authority string) *domain.Mint {
	return domain.NewMint(address, 0, authority, domain.Extensions{MetadataPointer: true})
}

func TestTokenServiceCreateMint(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a mintable mint with extensions", func(t *testing.T) {
		svc, mintRepo, _, _ := newServiceWithMocks()
		mintRepo.On("Create", ctx, mock.AnythingOfType("*domain.Mint")).Return(nil)

		mint, err := svc.CreateMint(ctx, CreateMintInput{
			Address:       "mint-1",
			Decimals:      0,
			MintAuthority: "authority-1",
			Extensions:    domain.Extensions{MetadataPointer: true, CloseAuthority: true, PermanentDelegate: true},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.MintStatusMintable, mint.Status)
		assert.Equal(t, uint64(0), mint.Supply)
		require.NotNil(t, mint.MintAuthority)
		assert.Equal(t, "authority-1", *mint.MintAuthority)
		require.NotNil(t, mint.CloseAuthority)
		assert.Equal(t, "authority-1", *mint.CloseAuthority)
		require.NotNil(t, mint.PermanentDelegate)
		assert.Equal(t, "authority-1", *mint.PermanentDelegate)
		assert.True(t, mint.MetadataPointer)
		mintRepo.AssertExpectations(t)
	})

	t.Run("propagates duplicate mint error", func(t *testing.T) {
		svc, mintRepo, _, _ := newServiceWithMocks()
		mintRepo.On("Create", ctx, mock.AnythingOfType("*domain.Mint")).Return(domain.ErrMintAlreadyExists)

		_, err := svc.CreateMint(ctx, CreateMintInput{Address: "mint-1", MintAuthority: "authority-1"})
		assert.ErrorIs(t, err, domain.ErrMintAlreadyExists)
	})
}

func TestTokenServiceInitializeMetadata(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a signer that is not the mint authority", func(t *testing.T) {
		svc, mintRepo, _, _ := newServiceWithMocks()
		mintRepo.On("GetByAddress", ctx, "mint-1").Return(mintableMint("mint-1", "authority-1"), nil)

		err := svc.InitializeMetadata(ctx, "mint-1", "intruder", "Cert", "CCT", "https://example.com/cert")
		assert.ErrorIs(t, err, domain.ErrNotMintAuthority)
	})

	t.Run("rejects double initialization", func(t *testing.T) {
		svc, mintRepo, metadataRepo, _ := newServiceWithMocks()
		mintRepo.On("GetByAddress", ctx, "mint-1").Return(mintableMint("mint-1", "authority-1"), nil)
		metadataRepo.On("GetByMint", ctx, "mint-1").Return(domain.NewMetadata("mint-1", "Cert", "CCT", "", "authority-1"), nil)

		err := svc.InitializeMetadata(ctx, "mint-1", "authority-1", "Cert", "CCT", "")
		assert.ErrorIs(t, err, domain.ErrMetadataAlreadyInitialized)
	})

	t.Run("creates metadata with the authority as update authority", func(t *testing.T) {
		svc, mintRepo, metadataRepo, _ := newServiceWithMocks()
		mintRepo.On("GetByAddress", ctx, "mint-1").Return(mintableMint("mint-1", "authority-1"), nil)
		metadataRepo.On("GetByMint", ctx, "mint-1").Return(nil, domain.ErrMetadataNotFound)
		metadataRepo.On("Create", ctx, mock.MatchedBy(func(md *domain.Metadata) bool {
			return md.MintAddress == "mint-1" && md.UpdateAuthority == "authority-1" && md.Symbol == "CCT"
		})).Return(nil)

		err := svc.InitializeMetadata(ctx, "mint-1", "authority-1", "Cert", "CCT", "https://example.com/cert")
		require.NoError(t, err)
		metadataRepo.AssertExpectations(t)
	})
}

func TestTokenServiceUpdateMetadataField(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a signer that is not the update authority", func(t *testing.T) {
		svc, _, metadataRepo, _ := newServiceWithMocks()
		metadataRepo.On("GetByMint", ctx, "mint-1").Return(domain.NewMetadata("mint-1", "Cert", "CCT", "", "authority-1"), nil)

		err := svc.UpdateMetadataField(ctx, "mint-1", "intruder", "available_credits", "100")
		assert.ErrorIs(t, err, domain.ErrNotUpdateAuthority)
	})

	t.Run("upserts the field", func(t *testing.T) {
		svc, _, metadataRepo, _ := newServiceWithMocks()
		metadataRepo.On("GetByMint", ctx, "mint-1").Return(domain.NewMetadata("mint-1", "Cert", "CCT", "", "authority-1"), nil)
		metadataRepo.On("UpsertField", ctx, "mint-1", "available_credits", "100").Return(nil)

		err := svc.UpdateMetadataField(ctx, "mint-1", "authority-1", "available_credits", "100")
		require.NoError(t, err)
		metadataRepo.AssertExpectations(t)
	})
}

func TestTokenServiceMint(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a frozen mint", func(t *testing.T) {
		svc, mintRepo, _, _ := newServiceWithMocks()
		frozen := mintableMint("mint-1", "authority-1")
		frozen.Status = domain.MintStatusFrozen
		mintRepo.On("GetByAddressForUpdate", ctx, "mint-1").Return(frozen, nil)

		err := svc.Mint(ctx, "mint-1", "authority-1", "owner-1", 1)
		assert.ErrorIs(t, err, domain.ErrMintFrozen)
	})

	t.Run("rejects the wrong authority", func(t *testing.T) {
		svc, mintRepo, _, _ := newServiceWithMocks()
		mintRepo.On("GetByAddressForUpdate", ctx, "mint-1").Return(mintableMint("mint-1", "authority-1"), nil)

		err := svc.Mint(ctx, "mint-1", "intruder", "owner-1", 1)
		assert.ErrorIs(t, err, domain.ErrNotMintAuthority)
	})

	t.Run("rejects supply overflow", func(t *testing.T) {
		svc, mintRepo, _, _ := newServiceWithMocks()
		full := mintableMint("mint-1", "authority-1")
		full.Supply = math.MaxUint64
		mintRepo.On("GetByAddressForUpdate", ctx, "mint-1").Return(full, nil)

		err := svc.Mint(ctx, "mint-1", "authority-1", "owner-1", 1)
		assert.ErrorIs(t, err, domain.ErrSupplyOverflow)
	})

	t.Run("adds supply and credits the destination", func(t *testing.T) {
		svc, mintRepo, _, holdingRepo := newServiceWithMocks()
		mintRepo.On("GetByAddressForUpdate", ctx, "mint-1").Return(mintableMint("mint-1", "authority-1"), nil)
		mintRepo.On("AddSupply", ctx, "mint-1", uint64(25)).Return(nil)
		holdingRepo.On("Credit", ctx, "mint-1", "owner-1", uint64(25)).Return(nil)

		err := svc.Mint(ctx, "mint-1", "authority-1", "owner-1", 25)
		require.NoError(t, err)
		mintRepo.AssertExpectations(t)
		holdingRepo.AssertExpectations(t)
	})
}

func TestTokenServiceBurn(t *testing.T) {
	ctx := context.Background()

	t.Run("propagates insufficient balance", func(t *testing.T) {
		svc, mintRepo, _, holdingRepo := newServiceWithMocks()
		mintRepo.On("GetByAddressForUpdate", ctx, "mint-1").Return(mintableMint("mint-1", "authority-1"), nil)
		holdingRepo.On("Debit", ctx, "mint-1", "owner-1", uint64(10)).Return(domain.ErrInsufficientBalance)

		err := svc.Burn(ctx, "mint-1", "owner-1", 10)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})

	t.Run("debits the holder then reduces supply", func(t *testing.T) {
		svc, mintRepo, _, holdingRepo := newServiceWithMocks()
		mintRepo.On("GetByAddressForUpdate", ctx, "mint-1").Return(mintableMint("mint-1", "authority-1"), nil)
		holdingRepo.On("Debit", ctx, "mint-1", "owner-1", uint64(10)).Return(nil)
		mintRepo.On("SubSupply", ctx, "mint-1", uint64(10)).Return(nil)

		err := svc.Burn(ctx, "mint-1", "owner-1", 10)
		require.NoError(t, err)
		mintRepo.AssertExpectations(t)
		holdingRepo.AssertExpectations(t)
	})
}

func TestTokenServiceRevokeMintAuthority(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an already frozen mint", func(t *testing.T) {
		svc, mintRepo, _, _ := newServiceWithMocks()
		frozen := mintableMint("mint-1", "authority-1")
		frozen.MintAuthority = nil
		mintRepo.On("GetByAddressForUpdate", ctx, "mint-1").Return(frozen, nil)

		err := svc.RevokeMintAuthority(ctx, "mint-1", "authority-1")
		assert.ErrorIs(t, err, domain.ErrMintFrozen)
	})

	t.Run("rejects the wrong authority", func(t *testing.T) {
		svc, mintRepo, _, _ := newServiceWithMocks()
		mintRepo.On("GetByAddressForUpdate", ctx, "mint-1").Return(mintableMint("mint-1", "authority-1"), nil)

		err := svc.RevokeMintAuthority(ctx, "mint-1", "intruder")
		assert.ErrorIs(t, err, domain.ErrNotMintAuthority)
	})

	t.Run("revokes the authority", func(t *testing.T) {
		svc, mintRepo, _, _ := newServiceWithMocks()
		mintRepo.On("GetByAddressForUpdate", ctx, "mint-1").Return(mintableMint("mint-1", "authority-1"), nil)
		mintRepo.On("RevokeMintAuthority", ctx, "mint-1").Return(nil)

		err := svc.RevokeMintAuthority(ctx, "mint-1", "authority-1")
		require.NoError(t, err)
		mintRepo.AssertExpectations(t)
	})
}

func TestTokenServiceBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("returns zero for a missing holding", func(t *testing.T) {
		svc, _, _, holdingRepo := newServiceWithMocks()
		holdingRepo.On("GetByMintAndOwner", ctx, "mint-1", "owner-1").Return(nil, domain.ErrHoldingNotFound)

		balance, err := svc.Balance(ctx, "mint-1", "owner-1")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), balance)
	})

	t.Run("returns the holding balance", func(t *testing.T) {
		svc, _, _, holdingRepo := newServiceWithMocks()
		holdingRepo.On("GetByMintAndOwner", ctx, "mint-1", "owner-1").Return(&domain.Holding{Balance: 42}, nil)

		balance, err := svc.Balance(ctx, "mint-1", "owner-1")
		require.NoError(t, err)
		assert.Equal(t, uint64(42), balance)
	})
}

func TestStorageFundingEnsureMinimumBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("leaves a funded account untouched", func(t *testing.T) {
		fundingRepo := &mockFundingRepository{}
		svc := NewStorageFundingService(fundingRepo, 7)
		fundingRepo.On("GetBalance", ctx, "account-1").Return(uint64(700), nil)

		err := svc.EnsureMinimumBalance(ctx, "account-1", "payer-1", 100)
		require.NoError(t, err)
		fundingRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("moves only the shortfall from the payer", func(t *testing.T) {
		fundingRepo := &mockFundingRepository{}
		svc := NewStorageFundingService(fundingRepo, 7)
		fundingRepo.On("GetBalance", ctx, "account-1").Return(uint64(300), nil)
		fundingRepo.On("Debit", ctx, "payer-1", uint64(400)).Return(nil)
		fundingRepo.On("Credit", ctx, "account-1", uint64(400)).Return(nil)

		err := svc.EnsureMinimumBalance(ctx, "account-1", "payer-1", 100)
		require.NoError(t, err)
		fundingRepo.AssertExpectations(t)
	})

	t.Run("propagates a payer that cannot cover the shortfall", func(t *testing.T) {
		fundingRepo := &mockFundingRepository{}
		svc := NewStorageFundingService(fundingRepo, 7)
		fundingRepo.On("GetBalance", ctx, "account-1").Return(uint64(0), nil)
		fundingRepo.On("Debit", ctx, "payer-1", uint64(700)).Return(domain.ErrInsufficientFunding)

		err := svc.EnsureMinimumBalance(ctx, "account-1", "payer-1", 100)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunding)
	})
}
