package domain

import (
	"time"

	"github.com/google/uuid"
)

// Holding is a principal's associated token account for one mint. There is at
// most one holding per (mint, owner) pair.
type Holding struct {
	ID          uuid.UUID
	MintAddress string
	Owner       string
	Balance     uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FundingAccount tracks the storage funding balance backing a token account.
// The storage funding service tops these up from a payer before metadata
// grows an account's byte size.
type FundingAccount struct {
	Address   string
	Balance   uint64
	UpdatedAt time.Time
}
