package service

import (
	"context"
)

type storageFundingService struct {
	fundingRepo FundingRepository
	byteCost    uint64
}

// NewStorageFundingService returns a StorageFunding that prices storage at
// byteCost units per byte, topping accounts up from the payer.
func NewStorageFundingService(fundingRepo FundingRepository, byteCost uint64) StorageFunding {
	return &storageFundingService{fundingRepo: fundingRepo, byteCost: byteCost}
}

// EnsureMinimumBalance tops the account up to requiredBytes worth of storage
// funding. Already funded accounts are left untouched; only the shortfall is
// moved from the payer, so repeated calls for a growing account pay the
// difference each time.
func (s *storageFundingService) EnsureMinimumBalance(ctx context.Context, account, payer string, requiredBytes int) error {
	required := uint64(requiredBytes) * s.byteCost
	current, err := s.fundingRepo.GetBalance(ctx, account)
	if err != nil {
		return err
	}
	if current >= required {
		return nil
	}
	shortfall := required - current
	if err := s.fundingRepo.Debit(ctx, payer, shortfall); err != nil {
		return err
	}
	return s.fundingRepo.Credit(ctx, account, shortfall)
}
