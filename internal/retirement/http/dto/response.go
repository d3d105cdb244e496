package dto

import (
	retirementDomain "github.com/allisson/carbonledger/internal/retirement/domain"
)

// ReceiptResponse represents a retirement receipt in API responses.
type ReceiptResponse struct {
	CertMint       string `json:"cert_mint"`
	CreditMint     string `json:"credit_mint"`
	Consumer       string `json:"consumer"`
	RetiredCredits uint64 `json:"retired_credits"`
}

// MapReceiptToResponse converts a retirement receipt to an API response.
func MapReceiptToResponse(receipt *retirementDomain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		CertMint:       receipt.CertMint,
		CreditMint:     receipt.CreditMint,
		Consumer:       receipt.Consumer,
		RetiredCredits: receipt.Retired,
	}
}
