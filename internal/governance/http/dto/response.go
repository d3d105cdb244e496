package dto

import (
	"time"

	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
)

// GovernanceResponse represents the governance record in API responses.
type GovernanceResponse struct {
	Address   string    `json:"address"`
	Authority string    `json:"authority"`
	Bump      uint8     `json:"bump"`
	CreatedAt time.Time `json:"created_at"`
}

// MapRecordToGovernanceResponse converts the governance authority record to an API response.
func MapRecordToGovernanceResponse(record *authorityDomain.Record) GovernanceResponse {
	return GovernanceResponse{
		Address:   record.Address,
		Authority: record.Owner,
		Bump:      record.Bump,
		CreatedAt: record.CreatedAt,
	}
}
