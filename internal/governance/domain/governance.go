// Package domain defines the governance config singleton: the root authority
// record every privileged issuance chain starts from.
package domain

import (
	"github.com/allisson/carbonledger/internal/errors"
)

// ResourceTag is the fixed derivation resource for the governance singleton.
// There is exactly one governance record per deployment.
const ResourceTag = "root"

// Domain-specific errors for governance operations.
var (
	// ErrAlreadyInitialized indicates the governance config already exists.
	ErrAlreadyInitialized = errors.Wrap(errors.ErrConflict, "governance config already initialized")

	// ErrNotInitialized indicates no governance config exists yet.
	ErrNotInitialized = errors.Wrap(errors.ErrNotFound, "governance config not initialized")

	// ErrNotGovernanceAuthority indicates the principal is not the governance
	// authority.
	ErrNotGovernanceAuthority = errors.Wrap(errors.ErrUnauthorized, "not the governance authority")
)
