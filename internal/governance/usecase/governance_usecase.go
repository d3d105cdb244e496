// Package usecase implements governance config initialization and the
// authority check every governance-gated workflow goes through.
package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
	"github.com/allisson/carbonledger/internal/database"
	apperrors "github.com/allisson/carbonledger/internal/errors"
	"github.com/allisson/carbonledger/internal/governance/domain"
	appValidation "github.com/allisson/carbonledger/internal/validation"
)

// InitializeInput contains the input data for governance initialization.
type InitializeInput struct {
	Authority string `json:"authority"`
}

// UseCase defines the interface for governance business logic operations
type UseCase interface {
	Initialize(ctx context.Context, input InitializeInput) (*authorityDomain.Record, error)
	Get(ctx context.Context) (*authorityDomain.Record, error)
	// RequireAuthority loads the governance record, verifies its derivation,
	// and checks the principal against the stored authority. Governance-gated
	// workflows call this before touching any state.
	RequireAuthority(ctx context.Context, principal string) (*authorityDomain.Record, error)
}

// AuthorityRepository interface defines the authority record operations
// governance needs.
type AuthorityRepository interface {
	Create(ctx context.Context, record *authorityDomain.Record) error
	GetByRoleAndResource(ctx context.Context, role authorityDomain.Role, resource string) (*authorityDomain.Record, error)
}

// GovernanceUseCase handles governance-related business logic
type GovernanceUseCase struct {
	txManager     database.TxManager
	authorityRepo AuthorityRepository
}

// NewGovernanceUseCase creates a new GovernanceUseCase
func NewGovernanceUseCase(txManager database.TxManager, authorityRepo AuthorityRepository) UseCase {
	return &GovernanceUseCase{txManager: txManager, authorityRepo: authorityRepo}
}

func (uc *GovernanceUseCase) validateInitializeInput(input InitializeInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Authority,
			validation.Required.Error("authority is required"),
			appValidation.NotBlank,
			appValidation.Principal,
		),
	)
	return appValidation.WrapValidationError(err)
}

// Initialize creates the governance config singleton. A second call fails
// with ErrAlreadyInitialized; the stored authority is never overwritten.
func (uc *GovernanceUseCase) Initialize(ctx context.Context, input InitializeInput) (*authorityDomain.Record, error) {
	if err := uc.validateInitializeInput(input); err != nil {
		return nil, err
	}

	address, bump, err := authorityDomain.FindAddress(authorityDomain.RoleGovernance, domain.ResourceTag)
	if err != nil {
		return nil, err
	}

	record := &authorityDomain.Record{
		ID:        uuid.Must(uuid.NewV7()),
		Address:   address,
		Role:      authorityDomain.RoleGovernance,
		Resource:  domain.ResourceTag,
		Owner:     input.Authority,
		Bump:      bump,
		CreatedAt: time.Now().UTC(),
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.authorityRepo.Create(ctx, record); err != nil {
			if apperrors.Is(err, authorityDomain.ErrRecordAlreadyExists) {
				return domain.ErrAlreadyInitialized
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Get retrieves the governance config singleton.
func (uc *GovernanceUseCase) Get(ctx context.Context) (*authorityDomain.Record, error) {
	record, err := uc.authorityRepo.GetByRoleAndResource(ctx, authorityDomain.RoleGovernance, domain.ResourceTag)
	if err != nil {
		if apperrors.Is(err, authorityDomain.ErrRecordNotFound) {
			return nil, domain.ErrNotInitialized
		}
		return nil, err
	}
	return record, nil
}

// RequireAuthority implements UseCase.
func (uc *GovernanceUseCase) RequireAuthority(ctx context.Context, principal string) (*authorityDomain.Record, error) {
	record, err := uc.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := authorityDomain.VerifyRecord(record); err != nil {
		return nil, err
	}
	if record.Owner != principal {
		return nil, domain.ErrNotGovernanceAuthority
	}
	return record, nil
}
