package domain

import (
	"github.com/allisson/carbonledger/internal/errors"
)

// Domain-specific errors for token operations.
var (
	// ErrMintNotFound indicates the requested mint does not exist.
	ErrMintNotFound = errors.Wrap(errors.ErrNotFound, "mint not found")

	// ErrMintAlreadyExists indicates a mint already exists at the address.
	ErrMintAlreadyExists = errors.Wrap(errors.ErrConflict, "mint already exists")

	// ErrMintFrozen indicates the mint authority has been revoked and supply
	// is permanently fixed.
	ErrMintFrozen = errors.Wrap(errors.ErrConflict, "mint is frozen")

	// ErrNotMintAuthority indicates the supplied signer is not the mint's
	// mint authority.
	ErrNotMintAuthority = errors.Wrap(errors.ErrUnauthorized, "not the mint authority")

	// ErrNotUpdateAuthority indicates the supplied signer is not the
	// metadata update authority.
	ErrNotUpdateAuthority = errors.Wrap(errors.ErrUnauthorized, "not the metadata update authority")

	// ErrMetadataNotFound indicates the mint has no initialized metadata.
	ErrMetadataNotFound = errors.Wrap(errors.ErrNotFound, "token metadata not found")

	// ErrMetadataAlreadyInitialized indicates metadata was already initialized
	// for the mint.
	ErrMetadataAlreadyInitialized = errors.Wrap(errors.ErrConflict, "token metadata already initialized")

	// ErrHoldingNotFound indicates the principal has no holding for the mint.
	ErrHoldingNotFound = errors.Wrap(errors.ErrNotFound, "holding not found")

	// ErrInsufficientBalance indicates a burn or transfer exceeds the
	// holder's balance.
	ErrInsufficientBalance = errors.Wrap(errors.ErrInvalidInput, "insufficient balance")

	// ErrInsufficientFunding indicates the payer cannot cover the minimum
	// storage balance for an account's final byte size.
	ErrInsufficientFunding = errors.Wrap(errors.ErrInvalidInput, "insufficient storage funding")

	// ErrSupplyOverflow indicates a mint would overflow the supply counter.
	ErrSupplyOverflow = errors.Wrap(errors.ErrInvalidInput, "supply overflow")
)
