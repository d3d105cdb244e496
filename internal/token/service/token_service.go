package service

import (
	"context"
	"math"

	"github.com/allisson/carbonledger/internal/errors"
	"github.com/allisson/carbonledger/internal/token/domain"
)

type tokenService struct {
	mintRepo     MintRepository
	metadataRepo MetadataRepository
	holdingRepo  HoldingRepository
}

// NewTokenService returns a TokenService backed by the given repositories.
// Callers run multi-step workflows inside a database transaction so the
// individual operations here observe a consistent snapshot.
func NewTokenService(mintRepo MintRepository, metadataRepo MetadataRepository, holdingRepo HoldingRepository) TokenService {
	return &tokenService{mintRepo: mintRepo, metadataRepo: metadataRepo, holdingRepo: holdingRepo}
}

func (s *tokenService) CreateMint(ctx context.Context, input CreateMintInput) (*domain.Mint, error) {
	mint := domain.NewMint(input.Address, input.Decimals, input.MintAuthority, input.Extensions)
	if err := s.mintRepo.Create(ctx, mint); err != nil {
		return nil, err
	}
	return mint, nil
}

func (s *tokenService) InitializeMetadata(ctx context.Context, mintAddress, authority, name, symbol, uri string) error {
	mint, err := s.mintRepo.GetByAddress(ctx, mintAddress)
	if err != nil {
		return err
	}
	if mint.MintAuthority == nil || *mint.MintAuthority != authority {
		return domain.ErrNotMintAuthority
	}
	switch _, err := s.metadataRepo.GetByMint(ctx, mintAddress); {
	case err == nil:
		return domain.ErrMetadataAlreadyInitialized
	case !errors.Is(err, domain.ErrMetadataNotFound):
		return err
	}
	md := domain.NewMetadata(mintAddress, name, symbol, uri, authority)
	return s.metadataRepo.Create(ctx, md)
}

func (s *tokenService) UpdateMetadataField(ctx context.Context, mintAddress, authority, key, value string) error {
	md, err := s.metadataRepo.GetByMint(ctx, mintAddress)
	if err != nil {
		return err
	}
	if md.UpdateAuthority != authority {
		return domain.ErrNotUpdateAuthority
	}
	return s.metadataRepo.UpsertField(ctx, mintAddress, key, value)
}

func (s *tokenService) ReadMetadataFields(ctx context.Context, mintAddress string) (map[string]string, error) {
	md, err := s.metadataRepo.GetByMint(ctx, mintAddress)
	if err != nil {
		return nil, err
	}
	return md.Fields, nil
}

func (s *tokenService) ReadMetadataForUpdate(ctx context.Context, mintAddress string) (*domain.Metadata, error) {
	return s.metadataRepo.GetByMintForUpdate(ctx, mintAddress)
}

func (s *tokenService) Mint(ctx context.Context, mintAddress, authority, destination string, amount uint64) error {
	mint, err := s.mintRepo.GetByAddressForUpdate(ctx, mintAddress)
	if err != nil {
		return err
	}
	if mint.Frozen() {
		return domain.ErrMintFrozen
	}
	if *mint.MintAuthority != authority {
		return domain.ErrNotMintAuthority
	}
	if amount > math.MaxUint64-mint.Supply {
		return domain.ErrSupplyOverflow
	}
	if err := s.mintRepo.AddSupply(ctx, mintAddress, amount); err != nil {
		return err
	}
	return s.holdingRepo.Credit(ctx, mintAddress, destination, amount)
}

func (s *tokenService) Burn(ctx context.Context, mintAddress, owner string, amount uint64) error {
	if _, err := s.mintRepo.GetByAddressForUpdate(ctx, mintAddress); err != nil {
		return err
	}
	if err := s.holdingRepo.Debit(ctx, mintAddress, owner, amount); err != nil {
		return err
	}
	return s.mintRepo.SubSupply(ctx, mintAddress, amount)
}

func (s *tokenService) RevokeMintAuthority(ctx context.Context, mintAddress, authority string) error {
	mint, err := s.mintRepo.GetByAddressForUpdate(ctx, mintAddress)
	if err != nil {
		return err
	}
	if mint.Frozen() {
		return domain.ErrMintFrozen
	}
	if *mint.MintAuthority != authority {
		return domain.ErrNotMintAuthority
	}
	return s.mintRepo.RevokeMintAuthority(ctx, mintAddress)
}

func (s *tokenService) GetMint(ctx context.Context, mintAddress string) (*domain.Mint, error) {
	return s.mintRepo.GetByAddress(ctx, mintAddress)
}

func (s *tokenService) Balance(ctx context.Context, mintAddress, owner string) (uint64, error) {
	holding, err := s.holdingRepo.GetByMintAndOwner(ctx, mintAddress, owner)
	if err != nil {
		if errors.Is(err, domain.ErrHoldingNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return holding.Balance, nil
}
