package domain

import (
	"github.com/allisson/carbonledger/internal/errors"
)

// Domain-specific errors for authority record operations.
var (
	// ErrRecordNotFound indicates no authority record exists at the derived address.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "authority record not found")

	// ErrRecordAlreadyExists indicates an authority record already occupies
	// the derived address (double issuance).
	ErrRecordAlreadyExists = errors.Wrap(errors.ErrConflict, "authority record already exists")

	// ErrAuthorityMismatch indicates the supplied (role, resource, bump)
	// triple does not derive the stored address, or the acting principal does
	// not own the record.
	ErrAuthorityMismatch = errors.Wrap(errors.ErrUnauthorized, "authority mismatch")

	// ErrInvalidDerivation indicates no acceptable bump could be found for
	// the (role, resource) pair, or the role is outside the closed set.
	ErrInvalidDerivation = errors.Wrap(errors.ErrInvalidInput, "invalid address derivation")
)
