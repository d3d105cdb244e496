// Package domain defines the audit log: a hash-chained, HMAC-signed record
// of every privileged mutation (initialize, issue, set-quota, mint, retire).
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/carbonledger/internal/errors"
)

// Entry is one signed audit record. PrevHash is the previous entry's
// signature, so the log forms a chain: altering or dropping an entry breaks
// every signature after it.
type Entry struct {
	ID        uuid.UUID
	Sequence  uint64
	Action    string
	Actor     string
	Resource  string
	Details   map[string]string
	PrevHash  []byte
	Signature []byte
	CreatedAt time.Time
}

// Domain-specific errors for audit operations.
var (
	// ErrSignatureInvalid indicates an entry's signature does not verify.
	ErrSignatureInvalid = errors.Wrap(errors.ErrUnauthorized, "audit log signature is invalid")

	// ErrChainBroken indicates an entry's previous-hash link does not match
	// the preceding entry.
	ErrChainBroken = errors.Wrap(errors.ErrUnauthorized, "audit log chain is broken")

	// ErrEntryNotFound indicates the requested audit entry does not exist.
	ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "audit entry not found")
)
