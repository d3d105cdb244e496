// Package domain defines certificate issuance outputs and errors. A
// certificate is a single-supply token: minted once to its receiver, then
// frozen by revoking the mint authority.
package domain

import (
	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
	"github.com/allisson/carbonledger/internal/errors"
)

// CertDecimals is the decimal count for certificate mints. Certificates are
// indivisible.
const CertDecimals uint8 = 0

// Certificate is the issuance result: the frozen single-supply mint and the
// controller record bound to it.
type Certificate struct {
	CertMint   string                  `json:"cert_mint"`
	CreditMint string                  `json:"credit_mint"`
	Receiver   string                  `json:"receiver"`
	Record     *authorityDomain.Record `json:"record"`
}

// CreditToken is the credit token initialization result.
type CreditToken struct {
	CreditMint    string                  `json:"credit_mint"`
	Decimals      uint8                   `json:"decimals"`
	MintAuthority *authorityDomain.Record `json:"mint_authority"`
}

// Domain-specific errors for certificate operations.
var (
	// ErrNotCertificateHolder indicates the principal does not hold the
	// single unit of the required certificate.
	ErrNotCertificateHolder = errors.Wrap(errors.ErrUnauthorized, "principal does not hold the required certificate")
)
