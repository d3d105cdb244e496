// Package dto provides data transfer objects for certificate HTTP handlers.
package dto

import (
	certificateUseCase "github.com/allisson/carbonledger/internal/certificate/usecase"
)

// IssueMinterCertRequest represents the request body for issuing a minter certificate.
type IssueMinterCertRequest struct {
	Authority string `json:"authority"`
	Receiver  string `json:"receiver"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	URI       string `json:"uri"`
}

// ToIssueMinterCertInput converts the request to a use case input.
func ToIssueMinterCertInput(req IssueMinterCertRequest) certificateUseCase.IssueMinterCertInput {
	return certificateUseCase.IssueMinterCertInput{
		Authority: req.Authority,
		Receiver:  req.Receiver,
		Name:      req.Name,
		Symbol:    req.Symbol,
		URI:       req.URI,
	}
}

// IssueConsumerCertRequest represents the request body for issuing a consumer certificate.
type IssueConsumerCertRequest struct {
	Minter   string `json:"minter"`
	Receiver string `json:"receiver"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	URI      string `json:"uri"`
}

// ToIssueConsumerCertInput converts the request to a use case input.
func ToIssueConsumerCertInput(req IssueConsumerCertRequest) certificateUseCase.IssueConsumerCertInput {
	return certificateUseCase.IssueConsumerCertInput{
		Minter:   req.Minter,
		Receiver: req.Receiver,
		Name:     req.Name,
		Symbol:   req.Symbol,
		URI:      req.URI,
	}
}

// InitCreditTokenRequest represents the request body for initializing a credit token mint.
type InitCreditTokenRequest struct {
	Creator                string  `json:"creator"`
	Decimals               uint8   `json:"decimals"`
	Name                   string  `json:"name"`
	Symbol                 string  `json:"symbol"`
	URI                    string  `json:"uri"`
	TransferHook           *string `json:"transfer_hook,omitempty"`
	TransferFeeBasisPoints *uint32 `json:"transfer_fee_basis_points,omitempty"`
}

// ToInitCreditTokenInput converts the request to a use case input.
func ToInitCreditTokenInput(req InitCreditTokenRequest) certificateUseCase.InitCreditTokenInput {
	return certificateUseCase.InitCreditTokenInput{
		Creator:                req.Creator,
		Decimals:               req.Decimals,
		Name:                   req.Name,
		Symbol:                 req.Symbol,
		URI:                    req.URI,
		TransferHook:           req.TransferHook,
		TransferFeeBasisPoints: req.TransferFeeBasisPoints,
	}
}
