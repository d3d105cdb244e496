// Package domain defines credit retirement: burning credit tokens in
// exchange for a single-supply retirement certificate whose metadata records
// the retired amount.
package domain

// Retirement certificate display constants. The program fixes these; callers
// cannot choose retirement certificate branding.
const (
	CertName    = "Retired Carbon Credits"
	CertSymbol  = "RCC"
	CertURI     = ""
	CertDecimal = uint8(0)
)

// Receipt is the retirement result: the burned amount and the certificate
// minted for it.
type Receipt struct {
	CertMint   string `json:"cert_mint"`
	CreditMint string `json:"credit_mint"`
	Consumer   string `json:"consumer"`
	Retired    uint64 `json:"retired_credits"`
}
