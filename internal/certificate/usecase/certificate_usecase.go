// Package usecase implements certificate issuance: minter certificates
// granted by governance, consumer certificates granted by minters, and the
// credit token a minter certificate authorizes. Every workflow is a single
// transaction; a failed step rolls the whole issuance back.
package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
	"github.com/allisson/carbonledger/internal/certificate/domain"
	"github.com/allisson/carbonledger/internal/database"
	apperrors "github.com/allisson/carbonledger/internal/errors"
	governanceUseCase "github.com/allisson/carbonledger/internal/governance/usecase"
	ledgerDomain "github.com/allisson/carbonledger/internal/ledger/domain"
	tokenDomain "github.com/allisson/carbonledger/internal/token/domain"
	tokenService "github.com/allisson/carbonledger/internal/token/service"
	appValidation "github.com/allisson/carbonledger/internal/validation"
)

// IssueMinterCertInput contains the input data for minter certificate issuance.
type IssueMinterCertInput struct {
	Authority string `json:"authority"`
	Receiver  string `json:"receiver"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	URI       string `json:"uri"`
}

// IssueConsumerCertInput contains the input data for consumer certificate issuance.
type IssueConsumerCertInput struct {
	Minter   string `json:"minter"`
	Receiver string `json:"receiver"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	URI      string `json:"uri"`
}

// InitCreditTokenInput contains the input data for credit token initialization.
type InitCreditTokenInput struct {
	Creator                string  `json:"creator"`
	Decimals               uint8   `json:"decimals"`
	Name                   string  `json:"name"`
	Symbol                 string  `json:"symbol"`
	URI                    string  `json:"uri"`
	TransferHook           *string `json:"transfer_hook,omitempty"`
	TransferFeeBasisPoints *uint32 `json:"transfer_fee_basis_points,omitempty"`
}

// UseCase defines the interface for certificate business logic operations
type UseCase interface {
	IssueMinterCert(ctx context.Context, input IssueMinterCertInput) (*domain.Certificate, error)
	IssueConsumerCert(ctx context.Context, input IssueConsumerCertInput) (*domain.Certificate, error)
	InitCreditToken(ctx context.Context, input InitCreditTokenInput) (*domain.CreditToken, error)
}

// AuthorityRepository interface defines the authority record operations
// certificate issuance needs.
type AuthorityRepository interface {
	Create(ctx context.Context, record *authorityDomain.Record) error
	GetByRoleAndOwner(ctx context.Context, role authorityDomain.Role, owner string) (*authorityDomain.Record, error)
}

// AuditRecorder appends a signed audit entry for a privileged mutation.
type AuditRecorder interface {
	Record(ctx context.Context, action, actor, resource string, details map[string]string) error
}

// CertificateUseCase handles certificate-related business logic
type CertificateUseCase struct {
	txManager     database.TxManager
	authorityRepo AuthorityRepository
	tokenSvc      tokenService.TokenService
	funding       tokenService.StorageFunding
	governance    governanceUseCase.UseCase
	audit         AuditRecorder
}

// NewCertificateUseCase creates a new CertificateUseCase
func NewCertificateUseCase(
	txManager database.TxManager,
	authorityRepo AuthorityRepository,
	tokenSvc tokenService.TokenService,
	funding tokenService.StorageFunding,
	governance governanceUseCase.UseCase,
	audit AuditRecorder,
) UseCase {
	return &CertificateUseCase{
		txManager:     txManager,
		authorityRepo: authorityRepo,
		tokenSvc:      tokenSvc,
		funding:       funding,
		governance:    governance,
		audit:         audit,
	}
}

func certRules(name, symbol *string) []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(symbol,
			validation.Required.Error("symbol is required"),
			appValidation.Symbol,
		),
	}
}

func (uc *CertificateUseCase) validateIssueMinterCertInput(input IssueMinterCertInput) error {
	rules := []*validation.FieldRules{
		validation.Field(&input.Authority,
			validation.Required.Error("authority is required"),
			appValidation.NotBlank,
			appValidation.Principal,
		),
		validation.Field(&input.Receiver,
			validation.Required.Error("receiver is required"),
			appValidation.NotBlank,
			appValidation.Principal,
		),
	}
	rules = append(rules, certRules(&input.Name, &input.Symbol)...)
	return appValidation.WrapValidationError(validation.ValidateStruct(&input, rules...))
}

func (uc *CertificateUseCase) validateIssueConsumerCertInput(input IssueConsumerCertInput) error {
	rules := []*validation.FieldRules{
		validation.Field(&input.Minter,
			validation.Required.Error("minter is required"),
			appValidation.NotBlank,
			appValidation.Principal,
		),
		validation.Field(&input.Receiver,
			validation.Required.Error("receiver is required"),
			appValidation.NotBlank,
			appValidation.Principal,
		),
	}
	rules = append(rules, certRules(&input.Name, &input.Symbol)...)
	return appValidation.WrapValidationError(validation.ValidateStruct(&input, rules...))
}

func (uc *CertificateUseCase) validateInitCreditTokenInput(input InitCreditTokenInput) error {
	rules := []*validation.FieldRules{
		validation.Field(&input.Creator,
			validation.Required.Error("creator is required"),
			appValidation.NotBlank,
			appValidation.Principal,
		),
	}
	rules = append(rules, certRules(&input.Name, &input.Symbol)...)
	return appValidation.WrapValidationError(validation.ValidateStruct(&input, rules...))
}

// minterCertMint derives the minter certificate mint address from the
// receiving principal. A second minter certificate for the same principal
// derives the same mint, so its record creation fails the unique constraint.
func minterCertMint(receiver string) (string, error) {
	addr, _, err := authorityDomain.FindAddress(authorityDomain.RoleMinter, receiver)
	return addr, err
}

// consumerCertMint derives the consumer certificate mint address from the
// credit mint and the receiving principal. One principal can hold consumer
// certificates for different credit mints, but not two for the same one.
func consumerCertMint(creditMint, receiver string) (string, error) {
	addr, _, err := authorityDomain.FindAddress(
		authorityDomain.RoleConsumer,
		authorityDomain.Seed(creditMint, receiver),
	)
	return addr, err
}

// requireCertificate loads the record a principal owns for a role and checks
// the principal still holds the single certificate unit.
func (uc *CertificateUseCase) requireCertificate(ctx context.Context, role authorityDomain.Role, owner string) (*authorityDomain.Record, error) {
	record, err := uc.authorityRepo.GetByRoleAndOwner(ctx, role, owner)
	if err != nil {
		if apperrors.Is(err, authorityDomain.ErrRecordNotFound) {
			return nil, domain.ErrNotCertificateHolder
		}
		return nil, err
	}
	if err := authorityDomain.VerifyRecord(record); err != nil {
		return nil, err
	}
	balance, err := uc.tokenSvc.Balance(ctx, record.Resource, owner)
	if err != nil {
		return nil, err
	}
	if balance != 1 {
		return nil, domain.ErrNotCertificateHolder
	}
	return record, nil
}

// issueCertificate runs the shared issuance tail: create the mint, fund it
// for its final metadata size, initialize metadata, seed fields, mint the
// single unit to the receiver, and revoke the mint authority.
func (uc *CertificateUseCase) issueCertificate(
	ctx context.Context,
	certMint, recordAddress, receiver, payer, name, symbol, uri string,
	seedFields map[string]string,
) error {
	_, err := uc.tokenSvc.CreateMint(ctx, tokenService.CreateMintInput{
		Address:       certMint,
		Decimals:      domain.CertDecimals,
		MintAuthority: recordAddress,
		Extensions: tokenDomain.Extensions{
			MetadataPointer:   true,
			CloseAuthority:    true,
			PermanentDelegate: true,
		},
	})
	if err != nil {
		return err
	}

	md := tokenDomain.NewMetadata(certMint, name, symbol, uri, recordAddress)
	for k, v := range seedFields {
		md.Fields[k] = v
	}
	if err := uc.funding.EnsureMinimumBalance(ctx, certMint, payer, md.ByteSize()); err != nil {
		return err
	}
	if err := uc.tokenSvc.InitializeMetadata(ctx, certMint, recordAddress, name, symbol, uri); err != nil {
		return err
	}
	for k, v := range seedFields {
		if err := uc.tokenSvc.UpdateMetadataField(ctx, certMint, recordAddress, k, v); err != nil {
			return err
		}
	}

	if err := uc.tokenSvc.Mint(ctx, certMint, recordAddress, receiver, 1); err != nil {
		return err
	}
	return uc.tokenSvc.RevokeMintAuthority(ctx, certMint, recordAddress)
}

// IssueMinterCert issues a minter certificate to the receiver. Governance
// authority only; the certificate's ledger counters are seeded to zero and
// the credit mint address is pre-derived so a later InitCreditToken lands at
// a known location. The certificate mint derives from the receiver, so a
// second issuance to the same principal fails with ErrRecordAlreadyExists.
func (uc *CertificateUseCase) IssueMinterCert(ctx context.Context, input IssueMinterCertInput) (*domain.Certificate, error) {
	if err := uc.validateIssueMinterCertInput(input); err != nil {
		return nil, err
	}

	var cert *domain.Certificate
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := uc.governance.RequireAuthority(ctx, input.Authority); err != nil {
			return err
		}

		certMint, err := minterCertMint(input.Receiver)
		if err != nil {
			return err
		}
		creditMint, _, err := authorityDomain.FindAddress(authorityDomain.RoleCreditToken, certMint)
		if err != nil {
			return err
		}
		address, bump, err := authorityDomain.FindAddress(authorityDomain.RoleMinter, certMint)
		if err != nil {
			return err
		}

		record := &authorityDomain.Record{
			ID:         uuid.Must(uuid.NewV7()),
			Address:    address,
			Role:       authorityDomain.RoleMinter,
			Resource:   certMint,
			Owner:      input.Receiver,
			CreditMint: creditMint,
			Bump:       bump,
			CreatedAt:  time.Now().UTC(),
		}
		if err := uc.authorityRepo.Create(ctx, record); err != nil {
			return err
		}

		seed := map[string]string{
			ledgerDomain.AvailableCreditsKey: ledgerDomain.FormatCounter(0),
			ledgerDomain.MintedCreditsKey:    ledgerDomain.FormatCounter(0),
		}
		if err := uc.issueCertificate(ctx, certMint, record.Address, input.Receiver, input.Authority, input.Name, input.Symbol, input.URI, seed); err != nil {
			return err
		}

		if err := uc.audit.Record(ctx, "certificate.issue_minter", input.Authority, certMint, map[string]string{
			"receiver":    input.Receiver,
			"credit_mint": creditMint,
		}); err != nil {
			return err
		}

		cert = &domain.Certificate{CertMint: certMint, CreditMint: creditMint, Receiver: input.Receiver, Record: record}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cert, nil
}

// IssueConsumerCert issues a consumer certificate bound to the caller's
// credit mint. The caller must hold a valid minter certificate.
func (uc *CertificateUseCase) IssueConsumerCert(ctx context.Context, input IssueConsumerCertInput) (*domain.Certificate, error) {
	if err := uc.validateIssueConsumerCertInput(input); err != nil {
		return nil, err
	}

	var cert *domain.Certificate
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		minterRecord, err := uc.requireCertificate(ctx, authorityDomain.RoleMinter, input.Minter)
		if err != nil {
			return err
		}

		certMint, err := consumerCertMint(minterRecord.CreditMint, input.Receiver)
		if err != nil {
			return err
		}
		address, bump, err := authorityDomain.FindAddress(authorityDomain.RoleConsumer, certMint)
		if err != nil {
			return err
		}

		record := &authorityDomain.Record{
			ID:         uuid.Must(uuid.NewV7()),
			Address:    address,
			Role:       authorityDomain.RoleConsumer,
			Resource:   certMint,
			Owner:      input.Receiver,
			CreditMint: minterRecord.CreditMint,
			Bump:       bump,
			CreatedAt:  time.Now().UTC(),
		}
		if err := uc.authorityRepo.Create(ctx, record); err != nil {
			return err
		}

		if err := uc.issueCertificate(ctx, certMint, record.Address, input.Receiver, input.Minter, input.Name, input.Symbol, input.URI, nil); err != nil {
			return err
		}

		if err := uc.audit.Record(ctx, "certificate.issue_consumer", input.Minter, certMint, map[string]string{
			"receiver":    input.Receiver,
			"credit_mint": minterRecord.CreditMint,
		}); err != nil {
			return err
		}

		cert = &domain.Certificate{CertMint: certMint, CreditMint: minterRecord.CreditMint, Receiver: input.Receiver, Record: record}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cert, nil
}

// InitCreditToken creates the caller's credit token mint at its pre-derived
// address, along with the MintAuthority record that signs all future credit
// mints. The caller must hold a valid minter certificate.
func (uc *CertificateUseCase) InitCreditToken(ctx context.Context, input InitCreditTokenInput) (*domain.CreditToken, error) {
	if err := uc.validateInitCreditTokenInput(input); err != nil {
		return nil, err
	}

	var token *domain.CreditToken
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		minterRecord, err := uc.requireCertificate(ctx, authorityDomain.RoleMinter, input.Creator)
		if err != nil {
			return err
		}

		creditMint := minterRecord.CreditMint
		address, bump, err := authorityDomain.FindAddress(authorityDomain.RoleMintAuthority, creditMint)
		if err != nil {
			return err
		}

		record := &authorityDomain.Record{
			ID:           uuid.Must(uuid.NewV7()),
			Address:      address,
			Role:         authorityDomain.RoleMintAuthority,
			Resource:     creditMint,
			Owner:        input.Creator,
			CreditMint:   creditMint,
			TransferHook: input.TransferHook,
			Bump:         bump,
			CreatedAt:    time.Now().UTC(),
		}
		if err := uc.authorityRepo.Create(ctx, record); err != nil {
			return err
		}

		_, err = uc.tokenSvc.CreateMint(ctx, tokenService.CreateMintInput{
			Address:       creditMint,
			Decimals:      input.Decimals,
			MintAuthority: record.Address,
			Extensions: tokenDomain.Extensions{
				MetadataPointer:        true,
				CloseAuthority:         true,
				TransferHook:           input.TransferHook,
				TransferFeeBasisPoints: input.TransferFeeBasisPoints,
			},
		})
		if err != nil {
			return err
		}

		md := tokenDomain.NewMetadata(creditMint, input.Name, input.Symbol, input.URI, record.Address)
		if err := uc.funding.EnsureMinimumBalance(ctx, creditMint, input.Creator, md.ByteSize()); err != nil {
			return err
		}
		if err := uc.tokenSvc.InitializeMetadata(ctx, creditMint, record.Address, input.Name, input.Symbol, input.URI); err != nil {
			return err
		}

		if err := uc.audit.Record(ctx, "certificate.init_credit_token", input.Creator, creditMint, map[string]string{
			"decimals": ledgerDomain.FormatCounter(uint64(input.Decimals)),
		}); err != nil {
			return err
		}

		token = &domain.CreditToken{CreditMint: creditMint, Decimals: input.Decimals, MintAuthority: record}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return token, nil
}
