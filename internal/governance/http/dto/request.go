// Package dto provides data transfer objects for governance HTTP handlers.
package dto

import (
	governanceUseCase "github.com/allisson/carbonledger/internal/governance/usecase"
)

// InitializeGovernanceRequest represents the request body for initializing governance.
type InitializeGovernanceRequest struct {
	Authority string `json:"authority"`
}

// ToInitializeInput converts the request to a use case input.
func ToInitializeInput(req InitializeGovernanceRequest) governanceUseCase.InitializeInput {
	return governanceUseCase.InitializeInput{
		Authority: req.Authority,
	}
}
