// Package dto provides data transfer objects for retirement HTTP handlers.
package dto

import (
	retirementUseCase "github.com/allisson/carbonledger/internal/retirement/usecase"
)

// RetireRequest represents the request body for retiring credits.
type RetireRequest struct {
	Consumer   string `json:"consumer"`
	CreditMint string `json:"credit_mint"`
	Amount     uint64 `json:"amount"`
}

// ToRetireInput converts the request to a use case input.
func ToRetireInput(req RetireRequest) retirementUseCase.RetireInput {
	return retirementUseCase.RetireInput{
		Consumer:   req.Consumer,
		CreditMint: req.CreditMint,
		Amount:     req.Amount,
	}
}
