package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// seedSeparator keeps (role, resource) pairs unambiguous in the digest input,
// so ("m", "ab") and ("ma", "b") can never derive the same address.
const seedSeparator = 0x1f

// Seed joins multiple derivation seed components with the digest separator,
// so multi-part seeds stay unambiguous the same way (role, resource) pairs do.
func Seed(parts ...string) string {
	return strings.Join(parts, string(rune(seedSeparator)))
}

// DeriveAddress computes the deterministic storage address for an authority
// record from its (role, resource, bump) triple. The address is a
// content-addressed index: any caller can independently recompute the address
// that must sign a given operation.
func DeriveAddress(role Role, resource string, bump uint8) string {
	h := sha256.New()
	h.Write([]byte(role))
	h.Write([]byte{seedSeparator})
	h.Write([]byte(resource))
	h.Write([]byte{seedSeparator, bump})
	return hex.EncodeToString(h.Sum(nil))
}

// FindAddress searches downward from bump 255 for the first bump whose
// derived address is acceptable, returning the address and the bump that must
// be stored on the record. A candidate is rejected when its digest starts
// with a zero byte, so the bump carries real information and a wrong stored
// bump cannot reproduce the address.
func FindAddress(role Role, resource string) (string, uint8, error) {
	if !role.Valid() {
		return "", 0, ErrInvalidDerivation
	}
	for bump := 255; bump >= 0; bump-- {
		addr := DeriveAddress(role, resource, uint8(bump))
		if addr[0] != '0' || addr[1] != '0' {
			return addr, uint8(bump), nil
		}
	}
	return "", 0, ErrInvalidDerivation
}

// VerifyRecord recomputes the record's address from its stored (role,
// resource, bump) triple and compares. Returns ErrAuthorityMismatch when the
// stored address is not the one the triple derives; a mismatched bump or
// resource must never silently substitute a different signer.
func VerifyRecord(rec *Record) error {
	if rec == nil || !rec.Role.Valid() {
		return ErrAuthorityMismatch
	}
	if DeriveAddress(rec.Role, rec.Resource, rec.Bump) != rec.Address {
		return ErrAuthorityMismatch
	}
	return nil
}
