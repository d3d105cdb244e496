// Package usecase implements audit log appends and chain verification.
package usecase

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/carbonledger/internal/audit/domain"
	auditService "github.com/allisson/carbonledger/internal/audit/service"
	apperrors "github.com/allisson/carbonledger/internal/errors"
)

// verifyPageSize bounds memory while walking the chain.
const verifyPageSize = 500

// VerifyResult summarizes a chain verification walk.
type VerifyResult struct {
	Entries  int    `json:"entries"`
	LastSeq  uint64 `json:"last_sequence"`
	Verified bool   `json:"verified"`
}

// UseCase defines the interface for audit business logic operations
type UseCase interface {
	// Record appends a signed entry continuing the hash chain. It must run
	// inside the same transaction as the mutation it records, so a rolled
	// back workflow leaves no trace and a committed one is always covered.
	Record(ctx context.Context, action, actor, resource string, details map[string]string) error
	List(ctx context.Context, fromSequence uint64, limit int) ([]*domain.Entry, error)
	VerifyChain(ctx context.Context) (*VerifyResult, error)
}

// EntryRepository interface defines audit entry repository operations
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	GetLastForUpdate(ctx context.Context) (*domain.Entry, error)
	List(ctx context.Context, fromSequence uint64, limit int) ([]*domain.Entry, error)
}

// AuditUseCase handles audit-related business logic. It carries no
// transaction manager of its own: Record joins the caller's transaction
// through the context.
type AuditUseCase struct {
	entryRepo EntryRepository
	signer    auditService.Signer
}

// NewAuditUseCase creates a new AuditUseCase
func NewAuditUseCase(entryRepo EntryRepository, signer auditService.Signer) UseCase {
	return &AuditUseCase{entryRepo: entryRepo, signer: signer}
}

// Record implements UseCase.
func (uc *AuditUseCase) Record(ctx context.Context, action, actor, resource string, details map[string]string) error {
	var prevHash []byte
	sequence := uint64(1)

	last, err := uc.entryRepo.GetLastForUpdate(ctx)
	switch {
	case err == nil:
		prevHash = last.Signature
		sequence = last.Sequence + 1
	case apperrors.Is(err, domain.ErrEntryNotFound):
		// First entry anchors the chain with an empty prev hash.
	default:
		return err
	}

	entry := &domain.Entry{
		ID:        uuid.Must(uuid.NewV7()),
		Sequence:  sequence,
		Action:    action,
		Actor:     actor,
		Resource:  resource,
		Details:   details,
		PrevHash:  prevHash,
		CreatedAt: time.Now().UTC(),
	}

	if entry.Signature, err = uc.signer.Sign(entry); err != nil {
		return err
	}

	return uc.entryRepo.Create(ctx, entry)
}

// List implements UseCase.
func (uc *AuditUseCase) List(ctx context.Context, fromSequence uint64, limit int) ([]*domain.Entry, error) {
	if limit <= 0 || limit > verifyPageSize {
		limit = verifyPageSize
	}
	return uc.entryRepo.List(ctx, fromSequence, limit)
}

// VerifyChain walks the whole log in sequence order, checking every
// signature and every previous-hash link.
func (uc *AuditUseCase) VerifyChain(ctx context.Context) (*VerifyResult, error) {
	result := &VerifyResult{}
	var prevSignature []byte
	next := uint64(1)

	for {
		entries, err := uc.entryRepo.List(ctx, next, verifyPageSize)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			break
		}

		for _, entry := range entries {
			if entry.Sequence != next {
				return nil, domain.ErrChainBroken
			}
			if !bytes.Equal(entry.PrevHash, prevSignature) {
				return nil, domain.ErrChainBroken
			}
			if err := uc.signer.Verify(entry); err != nil {
				return nil, err
			}
			prevSignature = entry.Signature
			result.Entries++
			result.LastSeq = entry.Sequence
			next = entry.Sequence + 1
		}
	}

	result.Verified = true
	return result, nil
}
