package dto

import (
	"time"

	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
	certificateDomain "github.com/allisson/carbonledger/internal/certificate/domain"
)

// RecordResponse represents an authority record in API responses.
type RecordResponse struct {
	Address    string    `json:"address"`
	Role       string    `json:"role"`
	Resource   string    `json:"resource"`
	Owner      string    `json:"owner"`
	CreditMint string    `json:"credit_mint,omitempty"`
	Bump       uint8     `json:"bump"`
	CreatedAt  time.Time `json:"created_at"`
}

// CertificateResponse represents an issued certificate in API responses.
type CertificateResponse struct {
	CertMint   string         `json:"cert_mint"`
	CreditMint string         `json:"credit_mint"`
	Receiver   string         `json:"receiver"`
	Record     RecordResponse `json:"record"`
}

// CreditTokenResponse represents an initialized credit token mint in API responses.
type CreditTokenResponse struct {
	CreditMint    string         `json:"credit_mint"`
	Decimals      uint8          `json:"decimals"`
	MintAuthority RecordResponse `json:"mint_authority"`
}

// MapRecordToResponse converts an authority record to an API response.
func MapRecordToResponse(record *authorityDomain.Record) RecordResponse {
	return RecordResponse{
		Address:    record.Address,
		Role:       string(record.Role),
		Resource:   record.Resource,
		Owner:      record.Owner,
		CreditMint: record.CreditMint,
		Bump:       record.Bump,
		CreatedAt:  record.CreatedAt,
	}
}

// MapCertificateToResponse converts an issued certificate to an API response.
func MapCertificateToResponse(cert *certificateDomain.Certificate) CertificateResponse {
	return CertificateResponse{
		CertMint:   cert.CertMint,
		CreditMint: cert.CreditMint,
		Receiver:   cert.Receiver,
		Record:     MapRecordToResponse(cert.Record),
	}
}

// MapCreditTokenToResponse converts an initialized credit token to an API response.
func MapCreditTokenToResponse(token *certificateDomain.CreditToken) CreditTokenResponse {
	return CreditTokenResponse{
		CreditMint:    token.CreditMint,
		Decimals:      token.Decimals,
		MintAuthority: MapRecordToResponse(token.MintAuthority),
	}
}
