// Package domain defines authority records: deterministically addressed
// records that are the sole valid signers for privileged mutations on a
// specific resource. The governance config, minter controllers, consumer
// controllers, and credit mint authorities are all variants of one record
// shape, selected by role.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role tags an authority record variant and doubles as the derivation seed.
type Role string

const (
	// RoleGovernance is the root governance config singleton.
	RoleGovernance Role = "config"

	// RoleMinter is a minter controller, bound to a minter certificate mint.
	RoleMinter Role = "m"

	// RoleConsumer is a consumer controller, bound to a consumer certificate mint.
	RoleConsumer Role = "c"

	// RoleMintAuthority is the signing authority for a credit token mint.
	RoleMintAuthority Role = "ma"

	// RoleCreditToken seeds the derived address of a minter's credit token mint.
	RoleCreditToken Role = "cct"
)

// Valid reports whether the role is one of the closed set of variants.
func (r Role) Valid() bool {
	switch r {
	case RoleGovernance, RoleMinter, RoleConsumer, RoleMintAuthority, RoleCreditToken:
		return true
	}
	return false
}

// Record binds a role to the resource it signs for and the principal that
// owns it. Records are immutable after creation; all privileged mutations on
// the resource must be signed by the record re-derived from
// (Role, Resource, Bump).
type Record struct {
	ID      uuid.UUID
	Address string // derived from (Role, Resource, Bump)
	Role    Role
	// Resource is the derivation resource id: the credit mint address for
	// mint authorities, the certificate mint address for controllers, and a
	// fixed tag for the governance singleton.
	Resource string
	// Owner is the principal permitted to act through this record.
	Owner string
	// CreditMint is the credit token mint this record is authorized against.
	// Empty for the governance singleton.
	CreditMint string
	// TransferHook is the optional transfer-hook program id recorded on mint
	// authorities. Nil for every other variant.
	TransferHook *string
	Bump         uint8
	CreatedAt    time.Time
}
