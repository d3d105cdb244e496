// Package usecase implements credit retirement. A retirement burns the
// consumer's credit tokens and issues a frozen retirement certificate
// recording the amount; the minter's ledger counters are never touched.
package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
	"github.com/allisson/carbonledger/internal/database"
	apperrors "github.com/allisson/carbonledger/internal/errors"
	ledgerDomain "github.com/allisson/carbonledger/internal/ledger/domain"
	"github.com/allisson/carbonledger/internal/retirement/domain"
	tokenDomain "github.com/allisson/carbonledger/internal/token/domain"
	tokenService "github.com/allisson/carbonledger/internal/token/service"
	appValidation "github.com/allisson/carbonledger/internal/validation"
)

// RetireInput contains the input data for retiring credits.
type RetireInput struct {
	Consumer   string `json:"consumer"`
	CreditMint string `json:"credit_mint"`
	Amount     uint64 `json:"amount"`
}

// UseCase defines the interface for retirement business logic operations
type UseCase interface {
	Retire(ctx context.Context, input RetireInput) (*domain.Receipt, error)
}

// AuthorityRepository interface defines the authority record operations
// retirement needs.
type AuthorityRepository interface {
	GetByRoleAndOwner(ctx context.Context, role authorityDomain.Role, owner string) (*authorityDomain.Record, error)
}

// AuditRecorder appends a signed audit entry for a privileged mutation.
type AuditRecorder interface {
	Record(ctx context.Context, action, actor, resource string, details map[string]string) error
}

// RetirementUseCase handles retirement-related business logic
type RetirementUseCase struct {
	txManager     database.TxManager
	authorityRepo AuthorityRepository
	tokenSvc      tokenService.TokenService
	funding       tokenService.StorageFunding
	audit         AuditRecorder
}

// NewRetirementUseCase creates a new RetirementUseCase
func NewRetirementUseCase(
	txManager database.TxManager,
	authorityRepo AuthorityRepository,
	tokenSvc tokenService.TokenService,
	funding tokenService.StorageFunding,
	audit AuditRecorder,
) UseCase {
	return &RetirementUseCase{
		txManager:     txManager,
		authorityRepo: authorityRepo,
		tokenSvc:      tokenSvc,
		funding:       funding,
		audit:         audit,
	}
}

func (uc *RetirementUseCase) validateRetireInput(input RetireInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Consumer,
			validation.Required.Error("consumer is required"),
			appValidation.NotBlank,
			appValidation.Principal,
		),
		validation.Field(&input.CreditMint,
			validation.Required.Error("credit_mint is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}

// consumerRecord loads and verifies the consumer controller the principal
// owns and checks it still holds the single consumer certificate unit.
func (uc *RetirementUseCase) consumerRecord(ctx context.Context, consumer, creditMint string) (*authorityDomain.Record, error) {
	record, err := uc.authorityRepo.GetByRoleAndOwner(ctx, authorityDomain.RoleConsumer, consumer)
	if err != nil {
		if apperrors.Is(err, authorityDomain.ErrRecordNotFound) {
			return nil, authorityDomain.ErrAuthorityMismatch
		}
		return nil, err
	}
	if err := authorityDomain.VerifyRecord(record); err != nil {
		return nil, err
	}
	if record.CreditMint != creditMint {
		return nil, authorityDomain.ErrAuthorityMismatch
	}
	balance, err := uc.tokenSvc.Balance(ctx, record.Resource, consumer)
	if err != nil {
		return nil, err
	}
	if balance != 1 {
		return nil, authorityDomain.ErrAuthorityMismatch
	}
	return record, nil
}

// Retire burns amount credit tokens from the consumer's holding and issues
// the retirement certificate in the same transaction.
func (uc *RetirementUseCase) Retire(ctx context.Context, input RetireInput) (*domain.Receipt, error) {
	if input.Amount == 0 {
		return nil, ledgerDomain.ErrInvalidAmount
	}
	if err := uc.validateRetireInput(input); err != nil {
		return nil, err
	}

	var receipt *domain.Receipt
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err := uc.consumerRecord(ctx, input.Consumer, input.CreditMint)
		if err != nil {
			return err
		}

		balance, err := uc.tokenSvc.Balance(ctx, input.CreditMint, input.Consumer)
		if err != nil {
			return err
		}
		if balance < input.Amount {
			return tokenDomain.ErrInsufficientBalance
		}
		if err := uc.tokenSvc.Burn(ctx, input.CreditMint, input.Consumer, input.Amount); err != nil {
			return err
		}

		certMint := uuid.Must(uuid.NewV7()).String()
		if _, err := uc.tokenSvc.CreateMint(ctx, tokenService.CreateMintInput{
			Address:       certMint,
			Decimals:      domain.CertDecimal,
			MintAuthority: record.Address,
			Extensions: tokenDomain.Extensions{
				MetadataPointer:   true,
				CloseAuthority:    true,
				PermanentDelegate: true,
			},
		}); err != nil {
			return err
		}

		retired := ledgerDomain.FormatCounter(input.Amount)
		md := tokenDomain.NewMetadata(certMint, domain.CertName, domain.CertSymbol, domain.CertURI, record.Address)
		md.Fields[ledgerDomain.RetiredCreditsKey] = retired
		if err := uc.funding.EnsureMinimumBalance(ctx, certMint, input.Consumer, md.ByteSize()); err != nil {
			return err
		}
		if err := uc.tokenSvc.InitializeMetadata(ctx, certMint, record.Address, domain.CertName, domain.CertSymbol, domain.CertURI); err != nil {
			return err
		}
		if err := uc.tokenSvc.UpdateMetadataField(ctx, certMint, record.Address, ledgerDomain.RetiredCreditsKey, retired); err != nil {
			return err
		}

		if err := uc.tokenSvc.Mint(ctx, certMint, record.Address, input.Consumer, 1); err != nil {
			return err
		}
		if err := uc.tokenSvc.RevokeMintAuthority(ctx, certMint, record.Address); err != nil {
			return err
		}

		if err := uc.audit.Record(ctx, "retirement.retire", input.Consumer, input.CreditMint, map[string]string{
			"amount":    retired,
			"cert_mint": certMint,
		}); err != nil {
			return err
		}

		receipt = &domain.Receipt{
			CertMint:   certMint,
			CreditMint: input.CreditMint,
			Consumer:   input.Consumer,
			Retired:    input.Amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}
