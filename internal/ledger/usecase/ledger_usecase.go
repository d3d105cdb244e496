// Package usecase implements the credit ledger workflows: minting credits
// against a certificate quota, governance quota administration, and ledger
// reads. All counter mutations happen inside one database transaction with
// the certificate metadata row locked, so concurrent attempts against the
// same certificate serialize instead of double-admitting.
package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
	"github.com/allisson/carbonledger/internal/database"
	apperrors "github.com/allisson/carbonledger/internal/errors"
	governanceUseCase "github.com/allisson/carbonledger/internal/governance/usecase"
	"github.com/allisson/carbonledger/internal/ledger/domain"
	tokenService "github.com/allisson/carbonledger/internal/token/service"
	appValidation "github.com/allisson/carbonledger/internal/validation"
)

// MintCreditsInput contains the input data for minting credits.
type MintCreditsInput struct {
	Creator  string `json:"creator"`
	CertMint string `json:"cert_mint"`
	Amount   uint64 `json:"amount"`
}

// SetQuotaInput contains the input data for quota administration.
type SetQuotaInput struct {
	Authority string `json:"authority"`
	CertMint  string `json:"cert_mint"`
	NewCredit uint64 `json:"new_credit"`
}

// UseCase defines the interface for ledger business logic operations
type UseCase interface {
	MintCredits(ctx context.Context, input MintCreditsInput) (*domain.Ledger, error)
	SetQuota(ctx context.Context, input SetQuotaInput) (*domain.Ledger, error)
	GetLedger(ctx context.Context, certMint string) (*domain.Ledger, error)
}

// AuthorityRepository interface defines the authority record operations the
// ledger needs.
type AuthorityRepository interface {
	GetByRoleAndResource(ctx context.Context, role authorityDomain.Role, resource string) (*authorityDomain.Record, error)
}

// AuditRecorder appends a signed audit entry for a privileged mutation.
type AuditRecorder interface {
	Record(ctx context.Context, action, actor, resource string, details map[string]string) error
}

// LedgerUseCase handles ledger-related business logic
type LedgerUseCase struct {
	txManager     database.TxManager
	authorityRepo AuthorityRepository
	tokenSvc      tokenService.TokenService
	funding       tokenService.StorageFunding
	governance    governanceUseCase.UseCase
	audit         AuditRecorder
}

// NewLedgerUseCase creates a new LedgerUseCase
func NewLedgerUseCase(
	txManager database.TxManager,
	authorityRepo AuthorityRepository,
	tokenSvc tokenService.TokenService,
	funding tokenService.StorageFunding,
	governance governanceUseCase.UseCase,
	audit AuditRecorder,
) UseCase {
	return &LedgerUseCase{
		txManager:     txManager,
		authorityRepo: authorityRepo,
		tokenSvc:      tokenSvc,
		funding:       funding,
		governance:    governance,
		audit:         audit,
	}
}

func (uc *LedgerUseCase) validateMintCreditsInput(input MintCreditsInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Creator,
			validation.Required.Error("creator is required"),
			appValidation.NotBlank,
			appValidation.Principal,
		),
		validation.Field(&input.CertMint,
			validation.Required.Error("cert_mint is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}

func (uc *LedgerUseCase) validateSetQuotaInput(input SetQuotaInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Authority,
			validation.Required.Error("authority is required"),
			appValidation.NotBlank,
			appValidation.Principal,
		),
		validation.Field(&input.CertMint,
			validation.Required.Error("cert_mint is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}

// minterRecord loads and verifies the minter controller bound to the
// certificate mint, and checks the caller holds the single certificate unit.
func (uc *LedgerUseCase) minterRecord(ctx context.Context, certMint, holder string) (*authorityDomain.Record, error) {
	record, err := uc.authorityRepo.GetByRoleAndResource(ctx, authorityDomain.RoleMinter, certMint)
	if err != nil {
		if apperrors.Is(err, authorityDomain.ErrRecordNotFound) {
			return nil, authorityDomain.ErrAuthorityMismatch
		}
		return nil, err
	}
	if err := authorityDomain.VerifyRecord(record); err != nil {
		return nil, err
	}
	if record.Owner != holder {
		return nil, authorityDomain.ErrAuthorityMismatch
	}
	balance, err := uc.tokenSvc.Balance(ctx, certMint, holder)
	if err != nil {
		return nil, err
	}
	if balance != 1 {
		return nil, authorityDomain.ErrAuthorityMismatch
	}
	return record, nil
}

// MintCredits admits a mint of amount credit tokens against the minter
// certificate's quota. The admission check and both counter write-backs see
// one locked snapshot of the certificate metadata.
func (uc *LedgerUseCase) MintCredits(ctx context.Context, input MintCreditsInput) (*domain.Ledger, error) {
	if input.Amount == 0 {
		return nil, domain.ErrInvalidAmount
	}
	if err := uc.validateMintCreditsInput(input); err != nil {
		return nil, err
	}

	var ledger *domain.Ledger
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err := uc.minterRecord(ctx, input.CertMint, input.Creator)
		if err != nil {
			return err
		}

		md, err := uc.tokenSvc.ReadMetadataForUpdate(ctx, input.CertMint)
		if err != nil {
			return err
		}

		rawAvailable, ok := md.Fields[domain.AvailableCreditsKey]
		if !ok {
			return domain.ErrInsufficientCredits
		}
		available, err := domain.ParseCounter(rawAvailable)
		if err != nil {
			return err
		}
		if available < input.Amount {
			return domain.ErrInsufficientCredits
		}

		minted := uint64(0)
		if rawMinted, ok := md.Fields[domain.MintedCreditsKey]; ok {
			if minted, err = domain.ParseCounter(rawMinted); err != nil {
				return err
			}
		}

		mintAuthority, err := uc.authorityRepo.GetByRoleAndResource(ctx, authorityDomain.RoleMintAuthority, record.CreditMint)
		if err != nil {
			return err
		}
		if err := authorityDomain.VerifyRecord(mintAuthority); err != nil {
			return err
		}
		if err := uc.tokenSvc.Mint(ctx, record.CreditMint, mintAuthority.Address, input.Creator, input.Amount); err != nil {
			return err
		}

		newAvailable, err := domain.CheckedSub(available, input.Amount)
		if err != nil {
			return err
		}
		newMinted, err := domain.CheckedAdd(minted, input.Amount)
		if err != nil {
			return err
		}

		md.Fields[domain.AvailableCreditsKey] = domain.FormatCounter(newAvailable)
		md.Fields[domain.MintedCreditsKey] = domain.FormatCounter(newMinted)
		if err := uc.funding.EnsureMinimumBalance(ctx, input.CertMint, input.Creator, md.ByteSize()); err != nil {
			return err
		}
		if err := uc.tokenSvc.UpdateMetadataField(ctx, input.CertMint, record.Address, domain.AvailableCreditsKey, domain.FormatCounter(newAvailable)); err != nil {
			return err
		}
		if err := uc.tokenSvc.UpdateMetadataField(ctx, input.CertMint, record.Address, domain.MintedCreditsKey, domain.FormatCounter(newMinted)); err != nil {
			return err
		}

		if err := uc.audit.Record(ctx, "ledger.mint_credits", input.Creator, input.CertMint, map[string]string{
			"amount":            domain.FormatCounter(input.Amount),
			"available_credits": domain.FormatCounter(newAvailable),
			"minted_credits":    domain.FormatCounter(newMinted),
		}); err != nil {
			return err
		}

		ledger = &domain.Ledger{CertMint: input.CertMint, Available: newAvailable, Minted: newMinted}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ledger, nil
}

// SetQuota overwrites the certificate's available credits unconditionally.
// Only the governance authority may call it; minted credits are untouched and
// no bound against them is enforced.
func (uc *LedgerUseCase) SetQuota(ctx context.Context, input SetQuotaInput) (*domain.Ledger, error) {
	if err := uc.validateSetQuotaInput(input); err != nil {
		return nil, err
	}

	var ledger *domain.Ledger
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := uc.governance.RequireAuthority(ctx, input.Authority); err != nil {
			return err
		}

		record, err := uc.authorityRepo.GetByRoleAndResource(ctx, authorityDomain.RoleMinter, input.CertMint)
		if err != nil {
			return err
		}
		if err := authorityDomain.VerifyRecord(record); err != nil {
			return err
		}

		md, err := uc.tokenSvc.ReadMetadataForUpdate(ctx, input.CertMint)
		if err != nil {
			return err
		}

		minted := uint64(0)
		if rawMinted, ok := md.Fields[domain.MintedCreditsKey]; ok {
			if minted, err = domain.ParseCounter(rawMinted); err != nil {
				return err
			}
		}

		md.Fields[domain.AvailableCreditsKey] = domain.FormatCounter(input.NewCredit)
		if err := uc.funding.EnsureMinimumBalance(ctx, input.CertMint, input.Authority, md.ByteSize()); err != nil {
			return err
		}
		if err := uc.tokenSvc.UpdateMetadataField(ctx, input.CertMint, record.Address, domain.AvailableCreditsKey, domain.FormatCounter(input.NewCredit)); err != nil {
			return err
		}

		if err := uc.audit.Record(ctx, "ledger.set_quota", input.Authority, input.CertMint, map[string]string{
			"available_credits": domain.FormatCounter(input.NewCredit),
		}); err != nil {
			return err
		}

		ledger = &domain.Ledger{CertMint: input.CertMint, Available: input.NewCredit, Minted: minted}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ledger, nil
}

// GetLedger returns the certificate's counter snapshot. A certificate that
// has never been granted a quota reads as zero available.
func (uc *LedgerUseCase) GetLedger(ctx context.Context, certMint string) (*domain.Ledger, error) {
	fields, err := uc.tokenSvc.ReadMetadataFields(ctx, certMint)
	if err != nil {
		return nil, err
	}

	ledger := &domain.Ledger{CertMint: certMint}
	if raw, ok := fields[domain.AvailableCreditsKey]; ok {
		if ledger.Available, err = domain.ParseCounter(raw); err != nil {
			return nil, err
		}
	}
	if raw, ok := fields[domain.MintedCreditsKey]; ok {
		if ledger.Minted, err = domain.ParseCounter(raw); err != nil {
			return nil, err
		}
	}
	return ledger, nil
}
