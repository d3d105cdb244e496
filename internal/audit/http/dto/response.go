// Package dto provides data transfer objects for audit HTTP handlers.
package dto

import (
	"encoding/hex"
	"time"

	auditDomain "github.com/allisson/carbonledger/internal/audit/domain"
	auditUseCase "github.com/allisson/carbonledger/internal/audit/usecase"
)

// EntryResponse represents an audit entry in API responses. Hashes are
// hex-encoded.
type EntryResponse struct {
	ID        string            `json:"id"`
	Sequence  uint64            `json:"sequence"`
	Action    string            `json:"action"`
	Actor     string            `json:"actor"`
	Resource  string            `json:"resource"`
	Details   map[string]string `json:"details,omitempty"`
	PrevHash  string            `json:"prev_hash,omitempty"`
	Signature string            `json:"signature"`
	CreatedAt time.Time         `json:"created_at"`
}

// ListEntriesResponse represents a page of audit entries.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// VerifyResponse represents the result of an audit chain verification.
type VerifyResponse struct {
	Entries      int    `json:"entries"`
	LastSequence uint64 `json:"last_sequence"`
	Verified     bool   `json:"verified"`
}

// MapEntryToResponse converts an audit entry to an API response.
func MapEntryToResponse(entry *auditDomain.Entry) EntryResponse {
	return EntryResponse{
		ID:        entry.ID.String(),
		Sequence:  entry.Sequence,
		Action:    entry.Action,
		Actor:     entry.Actor,
		Resource:  entry.Resource,
		Details:   entry.Details,
		PrevHash:  hex.EncodeToString(entry.PrevHash),
		Signature: hex.EncodeToString(entry.Signature),
		CreatedAt: entry.CreatedAt,
	}
}

// MapEntriesToListResponse converts a page of audit entries to an API response.
func MapEntriesToListResponse(entries []*auditDomain.Entry) ListEntriesResponse {
	response := ListEntriesResponse{
		Entries: make([]EntryResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		response.Entries = append(response.Entries, MapEntryToResponse(entry))
	}
	return response
}

// MapVerifyResultToResponse converts a chain verification result to an API response.
func MapVerifyResultToResponse(result *auditUseCase.VerifyResult) VerifyResponse {
	return VerifyResponse{
		Entries:      result.Entries,
		LastSequence: result.LastSeq,
		Verified:     result.Verified,
	}
}
