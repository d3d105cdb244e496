// Package domain defines the credit ledger: string-encoded counters carried
// in certificate token metadata, with checked arithmetic on top.
package domain

import (
	"math"
	"strconv"
)

// Metadata keys carrying ledger counters. AvailableCreditsKey and
// MintedCreditsKey live on minter certificates; RetiredCreditsKey is a
// distinct namespace on retirement certificates and never interacts with the
// minter counters.
const (
	AvailableCreditsKey = "available_credits"
	MintedCreditsKey    = "minted_credits"
	RetiredCreditsKey   = "retired_credits"
)

// Ledger is a read snapshot of a minter certificate's counters.
type Ledger struct {
	CertMint  string `json:"cert_mint"`
	Available uint64 `json:"available_credits"`
	Minted    uint64 `json:"minted_credits"`
}

// ParseCounter parses a counter value stored in a metadata field. The stored
// form is a plain base-10 unsigned integer; anything else is malformed.
func ParseCounter(raw string) (uint64, error) {
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, ErrNoCredits
	}
	return value, nil
}

// FormatCounter serializes a counter for storage in a metadata field.
func FormatCounter(value uint64) string {
	return strconv.FormatUint(value, 10)
}

// CheckedAdd returns a + b, failing with ErrOverflow instead of wrapping.
func CheckedAdd(a, b uint64) (uint64, error) {
	if b > math.MaxUint64-a {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// CheckedSub returns a - b, failing with ErrOverflow instead of wrapping.
// Callers guard sufficiency beforehand; this is the backstop that keeps an
// unexpected underflow from corrupting a counter.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrOverflow
	}
	return a - b, nil
}
