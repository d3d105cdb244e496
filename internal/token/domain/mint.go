// Package domain defines the token-service domain: mints, holdings, and
// extensible token metadata. Certificates and credit tokens are both built
// from these primitives; the core treats mint addresses as opaque handles.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MintStatus is the two-phase mint lifecycle. A mint starts Mintable and
// becomes Frozen when its mint authority is revoked; a Frozen mint's supply
// is permanently fixed.
type MintStatus string

const (
	// MintStatusMintable allows further issuance signed by the mint authority.
	MintStatusMintable MintStatus = "mintable"

	// MintStatusFrozen fixes supply permanently; mint attempts fail.
	MintStatusFrozen MintStatus = "frozen"
)

// Mint represents a token mint with its requested extensions. Certificate
// mints are frozen at supply 1 right after issuance; credit token mints stay
// mintable and are signed for by their derived mint authority record.
type Mint struct {
	ID       uuid.UUID
	Address  string
	Decimals uint8
	Supply   uint64
	Status   MintStatus
	// MintAuthority is the authority record address permitted to mint.
	// Nil once the authority has been revoked.
	MintAuthority *string
	// CloseAuthority is the authority permitted to close the mint account.
	CloseAuthority *string
	// MetadataPointer records whether the mint carries its own metadata.
	MetadataPointer bool
	// TransferHook is the transfer-hook program id consulted on transfers.
	TransferHook *string
	// TransferFeeBasisPoints is set when the transfer-fee extension is requested.
	TransferFeeBasisPoints *uint32
	// PermanentDelegate is the authority with permanent delegate rights.
	PermanentDelegate *string
	CreatedAt         time.Time
}

// Frozen reports whether the mint supply is permanently fixed.
func (m *Mint) Frozen() bool {
	return m.Status == MintStatusFrozen || m.MintAuthority == nil
}

// Extensions describes the extension set requested at mint creation.
type Extensions struct {
	MetadataPointer        bool
	CloseAuthority         bool
	PermanentDelegate      bool
	TransferHook           *string
	TransferFeeBasisPoints *uint32
}

// NewMint builds a mintable mint with the requested extensions. CloseAuthority
// and PermanentDelegate, when requested, are held by the mint authority.
func NewMint(address string, decimals uint8, mintAuthority string, ext Extensions) *Mint {
	mint := &Mint{
		ID:                     uuid.New(),
		Address:                address,
		Decimals:               decimals,
		Status:                 MintStatusMintable,
		MintAuthority:          &mintAuthority,
		MetadataPointer:        ext.MetadataPointer,
		TransferHook:           ext.TransferHook,
		TransferFeeBasisPoints: ext.TransferFeeBasisPoints,
		CreatedAt:              time.Now().UTC(),
	}
	if ext.CloseAuthority {
		ca := mintAuthority
		mint.CloseAuthority = &ca
	}
	if ext.PermanentDelegate {
		pd := mintAuthority
		mint.PermanentDelegate = &pd
	}
	return mint
}
