// Package dto provides data transfer objects for ledger HTTP handlers.
package dto

import (
	ledgerUseCase "github.com/allisson/carbonledger/internal/ledger/usecase"
)

// MintCreditsRequest represents the request body for minting credits.
type MintCreditsRequest struct {
	Creator string `json:"creator"`
	Amount  uint64 `json:"amount"`
}

// ToMintCreditsInput converts the request to a use case input. The certificate
// mint comes from the URL, not the body.
func ToMintCreditsInput(req MintCreditsRequest, certMint string) ledgerUseCase.MintCreditsInput {
	return ledgerUseCase.MintCreditsInput{
		Creator:  req.Creator,
		CertMint: certMint,
		Amount:   req.Amount,
	}
}

// SetQuotaRequest represents the request body for quota administration.
type SetQuotaRequest struct {
	Authority string `json:"authority"`
	NewCredit uint64 `json:"new_credit"`
}

// ToSetQuotaInput converts the request to a use case input. The certificate
// mint comes from the URL, not the body.
func ToSetQuotaInput(req SetQuotaRequest, certMint string) ledgerUseCase.SetQuotaInput {
	return ledgerUseCase.SetQuotaInput{
		Authority: req.Authority,
		CertMint:  certMint,
		NewCredit: req.NewCredit,
	}
}
