package domain

import (
	"github.com/allisson/carbonledger/internal/errors"
)

// Domain-specific errors for ledger operations.
var (
	// ErrInvalidAmount indicates an amount that must be positive was zero.
	ErrInvalidAmount = errors.Wrap(errors.ErrInvalidInput, "amount must be positive")

	// ErrInsufficientCredits indicates the quota field is missing or below
	// the requested amount.
	ErrInsufficientCredits = errors.Wrap(errors.ErrInvalidInput, "insufficient credits")

	// ErrNoCredits indicates the quota field is present but unparsable.
	ErrNoCredits = errors.Wrap(errors.ErrInvalidInput, "credit counter is unparsable")

	// ErrOverflow indicates checked counter arithmetic overflowed or
	// underflowed.
	ErrOverflow = errors.Wrap(errors.ErrInvalidInput, "credit counter overflow")
)
