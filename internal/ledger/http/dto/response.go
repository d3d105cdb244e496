package dto

import (
	ledgerDomain "github.com/allisson/carbonledger/internal/ledger/domain"
)

// LedgerResponse represents a certificate's credit ledger in API responses.
type LedgerResponse struct {
	CertMint         string `json:"cert_mint"`
	AvailableCredits uint64 `json:"available_credits"`
	MintedCredits    uint64 `json:"minted_credits"`
}

// MapLedgerToResponse converts a ledger snapshot to an API response.
func MapLedgerToResponse(ledger *ledgerDomain.Ledger) LedgerResponse {
	return LedgerResponse{
		CertMint:         ledger.CertMint,
		AvailableCredits: ledger.Available,
		MintedCredits:    ledger.Minted,
	}
}
