package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
	"github.com/allisson/carbonledger/internal/certificate/domain"
	governanceDomain "github.com/allisson/carbonledger/internal/governance/domain"
	governanceUseCase "github.com/allisson/carbonledger/internal/governance/usecase"
	ledgerDomain "github.com/allisson/carbonledger/internal/ledger/domain"
	tokenService "github.com/allisson/carbonledger/internal/token/service"
	tokenMocks "github.com/allisson/carbonledger/internal/token/service/mocks"
)

type fakeTxManager struct{}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockAuthorityRepository struct {
	mock.Mock
}

func (m *mockAuthorityRepository) Create(ctx context.Context, record *authorityDomain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockAuthorityRepository) GetByRoleAndOwner(ctx context.Context, role authorityDomain.Role, owner string) (*authorityDomain.Record, error) {
	args := m.Called(ctx, role, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authorityDomain.Record), args.Error(1)
}

type mockGovernance struct {
	mock.Mock
}

func (m *mockGovernance) Initialize(ctx context.Context, input governanceUseCase.InitializeInput) (*authorityDomain.Record, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authorityDomain.Record), args.Error(1)
}

func (m *mockGovernance) Get(ctx context.Context) (*authorityDomain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authorityDomain.Record), args.Error(1)
}

func (m *mockGovernance) RequireAuthority(ctx context.Context, principal string) (*authorityDomain.Record, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authorityDomain.Record), args.Error(1)
}

type mockAuditRecorder struct {
	mock.Mock
}

func (m *mockAuditRecorder) Record(ctx context.Context, action, actor, resource string, details map[string]string) error {
	args := m.Called(ctx, action, actor, resource, details)
	return args.Error(0)
}

type certFixture struct {
	uc            UseCase
	authorityRepo *mockAuthorityRepository
	tokenSvc      *tokenMocks.MockTokenService
	funding       *tokenMocks.MockStorageFunding
	governance    *mockGovernance
	audit         *mockAuditRecorder
}

func newCertFixture() *certFixture {
	f := &certFixture{
		authorityRepo: &mockAuthorityRepository{},
		tokenSvc:      &tokenMocks.MockTokenService{},
		funding:       &tokenMocks.MockStorageFunding{},
		governance:    &mockGovernance{},
		audit:         &mockAuditRecorder{},
	}
	f.uc = NewCertificateUseCase(&fakeTxManager{}, f.authorityRepo, f.tokenSvc, f.funding, f.governance, f.audit)
	return f
}

const (
	governancePrincipal = "governance-root"
	minterPrincipal     = "minter-principal"
	consumerPrincipal   = "consumer-principal"
)

func minterRecordFor(certMint string) *authorityDomain.Record {
	address, bump, _ := authorityDomain.FindAddress(authorityDomain.RoleMinter, certMint)
	creditMint, _, _ := authorityDomain.FindAddress(authorityDomain.RoleCreditToken, certMint)
	return &authorityDomain.Record{
		Address:    address,
		Role:       authorityDomain.RoleMinter,
		Resource:   certMint,
		Owner:      minterPrincipal,
		CreditMint: creditMint,
		Bump:       bump,
	}
}

func TestIssueMinterCert(t *testing.T) {
	ctx := context.Background()

	input := IssueMinterCertInput{
		Authority: governancePrincipal,
		Receiver:  minterPrincipal,
		Name:      "Carbon Minter Certificate",
		Symbol:    "CMC",
		URI:       "https://example.com/cmc",
	}

	t.Run("issues a frozen single-supply certificate", func(t *testing.T) {
		f := newCertFixture()
		f.governance.On("RequireAuthority", ctx, governancePrincipal).Return(&authorityDomain.Record{Owner: governancePrincipal}, nil)
		f.authorityRepo.On("Create", ctx, mock.MatchedBy(func(rec *authorityDomain.Record) bool {
			derivedCredit, _, _ := authorityDomain.FindAddress(authorityDomain.RoleCreditToken, rec.Resource)
			return rec.Role == authorityDomain.RoleMinter &&
				rec.Owner == minterPrincipal &&
				rec.CreditMint == derivedCredit &&
				authorityDomain.VerifyRecord(rec) == nil
		})).Return(nil)
		f.tokenSvc.On("CreateMint", ctx, mock.MatchedBy(func(in tokenService.CreateMintInput) bool {
			return in.Decimals == domain.CertDecimals && in.Extensions.MetadataPointer &&
				in.Extensions.CloseAuthority && in.Extensions.PermanentDelegate
		})).Return(nil, nil)
		f.funding.On("EnsureMinimumBalance", ctx, mock.AnythingOfType("string"), governancePrincipal, mock.AnythingOfType("int")).Return(nil)
		f.tokenSvc.On("InitializeMetadata", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), input.Name, input.Symbol, input.URI).Return(nil)
		f.tokenSvc.On("UpdateMetadataField", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), ledgerDomain.AvailableCreditsKey, "0").Return(nil)
		f.tokenSvc.On("UpdateMetadataField", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), ledgerDomain.MintedCreditsKey, "0").Return(nil)
		f.tokenSvc.On("Mint", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), minterPrincipal, uint64(1)).Return(nil)
		f.tokenSvc.On("RevokeMintAuthority", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
		f.audit.On("Record", ctx, "certificate.issue_minter", governancePrincipal, mock.AnythingOfType("string"), mock.Anything).Return(nil)

		cert, err := f.uc.IssueMinterCert(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, minterPrincipal, cert.Receiver)
		assert.Equal(t, cert.Record.CreditMint, cert.CreditMint)
		f.tokenSvc.AssertExpectations(t)
		f.audit.AssertExpectations(t)
	})

	t.Run("rejects a non-governance caller", func(t *testing.T) {
		f := newCertFixture()
		f.governance.On("RequireAuthority", ctx, governancePrincipal).Return(nil, governanceDomain.ErrNotGovernanceAuthority)

		_, err := f.uc.IssueMinterCert(ctx, input)
		assert.ErrorIs(t, err, governanceDomain.ErrNotGovernanceAuthority)
		f.authorityRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("propagates duplicate issuance", func(t *testing.T) {
		f := newCertFixture()
		f.governance.On("RequireAuthority", ctx, governancePrincipal).Return(&authorityDomain.Record{Owner: governancePrincipal}, nil)
		f.authorityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Record")).Return(authorityDomain.ErrRecordAlreadyExists)

		_, err := f.uc.IssueMinterCert(ctx, input)
		assert.ErrorIs(t, err, authorityDomain.ErrRecordAlreadyExists)
		f.tokenSvc.AssertNotCalled(t, "CreateMint", mock.Anything, mock.Anything)
	})

	t.Run("rejects an invalid symbol", func(t *testing.T) {
		f := newCertFixture()
		bad := input
		bad.Symbol = "lower case"

		_, err := f.uc.IssueMinterCert(ctx, bad)
		require.Error(t, err)
		f.governance.AssertNotCalled(t, "RequireAuthority", mock.Anything, mock.Anything)
	})

	t.Run("derives the certificate mint from the receiver", func(t *testing.T) {
		f := newCertFixture()
		f.governance.On("RequireAuthority", ctx, governancePrincipal).Return(&authorityDomain.Record{Owner: governancePrincipal}, nil)

		var createdAddresses []string
		f.authorityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Record")).Run(func(args mock.Arguments) {
			createdAddresses = append(createdAddresses, args.Get(1).(*authorityDomain.Record).Address)
		}).Return(nil).Once()
		// The record store's unique constraint rejects the second identical address
		f.authorityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Record")).Run(func(args mock.Arguments) {
			createdAddresses = append(createdAddresses, args.Get(1).(*authorityDomain.Record).Address)
		}).Return(authorityDomain.ErrRecordAlreadyExists)

		f.tokenSvc.On("CreateMint", ctx, mock.AnythingOfType("service.CreateMintInput")).Return(nil, nil)
		f.funding.On("EnsureMinimumBalance", ctx, mock.AnythingOfType("string"), governancePrincipal, mock.AnythingOfType("int")).Return(nil)
		f.tokenSvc.On("InitializeMetadata", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), input.Name, input.Symbol, input.URI).Return(nil)
		f.tokenSvc.On("UpdateMetadataField", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("string"), "0").Return(nil)
		f.tokenSvc.On("Mint", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), minterPrincipal, uint64(1)).Return(nil)
		f.tokenSvc.On("RevokeMintAuthority", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
		f.audit.On("Record", ctx, "certificate.issue_minter", governancePrincipal, mock.AnythingOfType("string"), mock.Anything).Return(nil)

		first, err := f.uc.IssueMinterCert(ctx, input)
		require.NoError(t, err)

		expectedMint, _, derr := authorityDomain.FindAddress(authorityDomain.RoleMinter, minterPrincipal)
		require.NoError(t, derr)
		assert.Equal(t, expectedMint, first.CertMint)

		// A second issuance to the same receiver lands on the same record address
		// and fails, never reaching the token service again
		_, err = f.uc.IssueMinterCert(ctx, input)
		assert.ErrorIs(t, err, authorityDomain.ErrRecordAlreadyExists)

		require.Len(t, createdAddresses, 2)
		assert.Equal(t, createdAddresses[0], createdAddresses[1])
		f.tokenSvc.AssertNumberOfCalls(t, "CreateMint", 1)
	})
}

func TestIssueConsumerCert(t *testing.T) {
	ctx := context.Background()

	input := IssueConsumerCertInput{
		Minter:   minterPrincipal,
		Receiver: consumerPrincipal,
		Name:     "Carbon Consumer Certificate",
		Symbol:   "CCC",
		URI:      "",
	}

	t.Run("binds the consumer cert to the minter's credit mint", func(t *testing.T) {
		f := newCertFixture()
		minterRecord := minterRecordFor("minter-cert-mint")
		f.authorityRepo.On("GetByRoleAndOwner", ctx, authorityDomain.RoleMinter, minterPrincipal).Return(minterRecord, nil)
		f.tokenSvc.On("Balance", ctx, "minter-cert-mint", minterPrincipal).Return(uint64(1), nil)
		f.authorityRepo.On("Create", ctx, mock.MatchedBy(func(rec *authorityDomain.Record) bool {
			return rec.Role == authorityDomain.RoleConsumer &&
				rec.Owner == consumerPrincipal &&
				rec.CreditMint == minterRecord.CreditMint &&
				authorityDomain.VerifyRecord(rec) == nil
		})).Return(nil)
		f.tokenSvc.On("CreateMint", ctx, mock.AnythingOfType("service.CreateMintInput")).Return(nil, nil)
		f.funding.On("EnsureMinimumBalance", ctx, mock.AnythingOfType("string"), minterPrincipal, mock.AnythingOfType("int")).Return(nil)
		f.tokenSvc.On("InitializeMetadata", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), input.Name, input.Symbol, input.URI).Return(nil)
		f.tokenSvc.On("Mint", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), consumerPrincipal, uint64(1)).Return(nil)
		f.tokenSvc.On("RevokeMintAuthority", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
		f.audit.On("Record", ctx, "certificate.issue_consumer", minterPrincipal, mock.AnythingOfType("string"), mock.Anything).Return(nil)

		cert, err := f.uc.IssueConsumerCert(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, minterRecord.CreditMint, cert.CreditMint)
		// Consumer certificates carry no ledger counters.
		f.tokenSvc.AssertNotCalled(t, "UpdateMetadataField", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a caller without a minter certificate", func(t *testing.T) {
		f := newCertFixture()
		f.authorityRepo.On("GetByRoleAndOwner", ctx, authorityDomain.RoleMinter, minterPrincipal).Return(nil, authorityDomain.ErrRecordNotFound)

		_, err := f.uc.IssueConsumerCert(ctx, input)
		assert.ErrorIs(t, err, domain.ErrNotCertificateHolder)
	})

	t.Run("rejects a caller that gave the certificate away", func(t *testing.T) {
		f := newCertFixture()
		f.authorityRepo.On("GetByRoleAndOwner", ctx, authorityDomain.RoleMinter, minterPrincipal).Return(minterRecordFor("minter-cert-mint"), nil)
		f.tokenSvc.On("Balance", ctx, "minter-cert-mint", minterPrincipal).Return(uint64(0), nil)

		_, err := f.uc.IssueConsumerCert(ctx, input)
		assert.ErrorIs(t, err, domain.ErrNotCertificateHolder)
	})

	t.Run("derives the certificate mint from the credit mint and receiver", func(t *testing.T) {
		f := newCertFixture()
		minterRecord := minterRecordFor("minter-cert-mint")
		f.authorityRepo.On("GetByRoleAndOwner", ctx, authorityDomain.RoleMinter, minterPrincipal).Return(minterRecord, nil)
		f.tokenSvc.On("Balance", ctx, "minter-cert-mint", minterPrincipal).Return(uint64(1), nil)
		f.authorityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Record")).Return(nil).Once()
		f.authorityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Record")).Return(authorityDomain.ErrRecordAlreadyExists)
		f.tokenSvc.On("CreateMint", ctx, mock.AnythingOfType("service.CreateMintInput")).Return(nil, nil)
		f.funding.On("EnsureMinimumBalance", ctx, mock.AnythingOfType("string"), minterPrincipal, mock.AnythingOfType("int")).Return(nil)
		f.tokenSvc.On("InitializeMetadata", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), input.Name, input.Symbol, input.URI).Return(nil)
		f.tokenSvc.On("Mint", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), consumerPrincipal, uint64(1)).Return(nil)
		f.tokenSvc.On("RevokeMintAuthority", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
		f.audit.On("Record", ctx, "certificate.issue_consumer", minterPrincipal, mock.AnythingOfType("string"), mock.Anything).Return(nil)

		first, err := f.uc.IssueConsumerCert(ctx, input)
		require.NoError(t, err)

		expectedMint, _, derr := authorityDomain.FindAddress(
			authorityDomain.RoleConsumer,
			authorityDomain.Seed(minterRecord.CreditMint, consumerPrincipal),
		)
		require.NoError(t, derr)
		assert.Equal(t, expectedMint, first.CertMint)

		// Re-certifying the same receiver for the same credit mint fails
		_, err = f.uc.IssueConsumerCert(ctx, input)
		assert.ErrorIs(t, err, authorityDomain.ErrRecordAlreadyExists)
		f.tokenSvc.AssertNumberOfCalls(t, "CreateMint", 1)
	})
}

func TestInitCreditToken(t *testing.T) {
	ctx := context.Background()

	hook := "transfer-hook-program"
	input := InitCreditTokenInput{
		Creator:      minterPrincipal,
		Decimals:     6,
		Name:         "Carbon Credit Token",
		Symbol:       "CCT",
		URI:          "https://example.com/cct",
		TransferHook: &hook,
	}

	t.Run("creates the credit mint at its pre-derived address", func(t *testing.T) {
		f := newCertFixture()
		minterRecord := minterRecordFor("minter-cert-mint")
		maAddress, maBump, _ := authorityDomain.FindAddress(authorityDomain.RoleMintAuthority, minterRecord.CreditMint)
		f.authorityRepo.On("GetByRoleAndOwner", ctx, authorityDomain.RoleMinter, minterPrincipal).Return(minterRecord, nil)
		f.tokenSvc.On("Balance", ctx, "minter-cert-mint", minterPrincipal).Return(uint64(1), nil)
		f.authorityRepo.On("Create", ctx, mock.MatchedBy(func(rec *authorityDomain.Record) bool {
			return rec.Role == authorityDomain.RoleMintAuthority &&
				rec.Address == maAddress && rec.Bump == maBump &&
				rec.Resource == minterRecord.CreditMint &&
				rec.TransferHook != nil && *rec.TransferHook == hook
		})).Return(nil)
		f.tokenSvc.On("CreateMint", ctx, mock.MatchedBy(func(in tokenService.CreateMintInput) bool {
			return in.Address == minterRecord.CreditMint &&
				in.Decimals == uint8(6) &&
				in.MintAuthority == maAddress &&
				in.Extensions.TransferHook != nil && *in.Extensions.TransferHook == hook &&
				!in.Extensions.PermanentDelegate
		})).Return(nil, nil)
		f.funding.On("EnsureMinimumBalance", ctx, minterRecord.CreditMint, minterPrincipal, mock.AnythingOfType("int")).Return(nil)
		f.tokenSvc.On("InitializeMetadata", ctx, minterRecord.CreditMint, maAddress, input.Name, input.Symbol, input.URI).Return(nil)
		f.audit.On("Record", ctx, "certificate.init_credit_token", minterPrincipal, minterRecord.CreditMint, mock.Anything).Return(nil)

		token, err := f.uc.InitCreditToken(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, minterRecord.CreditMint, token.CreditMint)
		assert.Equal(t, uint8(6), token.Decimals)
		f.tokenSvc.AssertExpectations(t)
	})

	t.Run("keeps the credit mint mintable", func(t *testing.T) {
		f := newCertFixture()
		minterRecord := minterRecordFor("minter-cert-mint")
		f.authorityRepo.On("GetByRoleAndOwner", ctx, authorityDomain.RoleMinter, minterPrincipal).Return(minterRecord, nil)
		f.tokenSvc.On("Balance", ctx, "minter-cert-mint", minterPrincipal).Return(uint64(1), nil)
		f.authorityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Record")).Return(nil)
		f.tokenSvc.On("CreateMint", ctx, mock.AnythingOfType("service.CreateMintInput")).Return(nil, nil)
		f.funding.On("EnsureMinimumBalance", ctx, mock.AnythingOfType("string"), minterPrincipal, mock.AnythingOfType("int")).Return(nil)
		f.tokenSvc.On("InitializeMetadata", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), input.Name, input.Symbol, input.URI).Return(nil)
		f.audit.On("Record", ctx, "certificate.init_credit_token", minterPrincipal, mock.AnythingOfType("string"), mock.Anything).Return(nil)

		_, err := f.uc.InitCreditToken(ctx, input)
		require.NoError(t, err)
		f.tokenSvc.AssertNotCalled(t, "RevokeMintAuthority", mock.Anything, mock.Anything, mock.Anything)
		f.tokenSvc.AssertNotCalled(t, "Mint", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("propagates a duplicate initialization", func(t *testing.T) {
		f := newCertFixture()
		minterRecord := minterRecordFor("minter-cert-mint")
		f.authorityRepo.On("GetByRoleAndOwner", ctx, authorityDomain.RoleMinter, minterPrincipal).Return(minterRecord, nil)
		f.tokenSvc.On("Balance", ctx, "minter-cert-mint", minterPrincipal).Return(uint64(1), nil)
		f.authorityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Record")).Return(authorityDomain.ErrRecordAlreadyExists)

		_, err := f.uc.InitCreditToken(ctx, input)
		assert.ErrorIs(t, err, authorityDomain.ErrRecordAlreadyExists)
		f.tokenSvc.AssertNotCalled(t, "CreateMint", mock.Anything, mock.Anything)
	})
}
