package domain

import (
	"time"
)

// metadataFieldOverhead approximates the per-field storage overhead of the
// type-length-value encoding (key length prefix + value length prefix).
const metadataFieldOverhead = 8

// metadataBaseOverhead approximates the fixed storage cost of an initialized
// metadata entry (update authority + mint reference).
const metadataBaseOverhead = 128

// Metadata is the extensible metadata attached to a mint: display fields plus
// an open string-to-string map. The credit ledger counters live in Fields on
// minter certificates; the store does not enforce integer typing, callers
// parse on read and serialize on write.
type Metadata struct {
	MintAddress string
	Name        string
	Symbol      string
	URI         string
	// UpdateAuthority is the authority record address permitted to mutate fields.
	UpdateAuthority string
	Fields          map[string]string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewMetadata builds a metadata entry with an empty field map.
func NewMetadata(mintAddress, name, symbol, uri, updateAuthority string) *Metadata {
	now := time.Now().UTC()
	return &Metadata{
		MintAddress:     mintAddress,
		Name:            name,
		Symbol:          symbol,
		URI:             uri,
		UpdateAuthority: updateAuthority,
		Fields:          map[string]string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ByteSize returns the storage footprint of the metadata entry once all
// fields are attached. Storage funding must be ensured for this size before
// any field write.
func (m *Metadata) ByteSize() int {
	size := metadataBaseOverhead
	size += len(m.Name) + len(m.Symbol) + len(m.URI)
	for k, v := range m.Fields {
		size += len(k) + len(v) + metadataFieldOverhead
	}
	return size
}
