// Package service implements audit entry signing. Entries are canonicalized
// with length-prefixed fields and signed with HMAC-SHA256 under a key derived
// from the configured signing secret via HKDF-SHA256.
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	auditDomain "github.com/allisson/carbonledger/internal/audit/domain"
)

// Signer signs and verifies audit entries.
type Signer interface {
	Sign(entry *auditDomain.Entry) ([]byte, error)
	Verify(entry *auditDomain.Entry) error
}

type hmacSigner struct {
	secret []byte
}

// NewSigner creates an HMAC-based audit entry signer using HKDF-SHA256 for
// key derivation and HMAC-SHA256 for signature generation.
func NewSigner(secret []byte) Signer {
	return &hmacSigner{secret: secret}
}

// deriveSigningKey uses HKDF-SHA256 to derive a 32-byte signing key from the
// configured secret. Info parameter is versioned for future algorithm changes.
func (s *hmacSigner) deriveSigningKey() ([]byte, error) {
	info := []byte("audit-chain-signing-v1")
	kdf := hkdf.New(sha256.New, s.secret, nil, info)

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(kdf, signingKey); err != nil {
		return nil, err
	}

	return signingKey, nil
}

// canonicalize converts an entry to its canonical byte representation.
// Format: id || sequence || action || actor || resource || details || prev_hash || created_at
// Variable-length fields are length-prefixed to prevent ambiguity.
func (s *hmacSigner) canonicalize(entry *auditDomain.Entry) ([]byte, error) {
	buf := make([]byte, 0, 512)

	buf = append(buf, entry.ID[:]...)

	seq := make([]byte, 8)
	binary.BigEndian.PutUint64(seq, entry.Sequence)
	buf = append(buf, seq...)

	buf = appendLengthPrefixed(buf, []byte(entry.Action))
	buf = appendLengthPrefixed(buf, []byte(entry.Actor))
	buf = appendLengthPrefixed(buf, []byte(entry.Resource))

	if entry.Details != nil {
		// json.Marshal sorts map keys, so the serialization is deterministic.
		detailBytes, err := json.Marshal(entry.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal details: %w", err)
		}
		buf = appendLengthPrefixed(buf, detailBytes)
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	buf = appendLengthPrefixed(buf, entry.PrevHash)

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(entry.CreatedAt.UnixNano()))
	buf = append(buf, ts...)

	return buf, nil
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))
	buf = append(buf, length...)
	buf = append(buf, data...)
	return buf
}

// Sign generates the HMAC-SHA256 signature for the entry.
func (s *hmacSigner) Sign(entry *auditDomain.Entry) ([]byte, error) {
	signingKey, err := s.deriveSigningKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	defer zero(signingKey)

	canonical, err := s.canonicalize(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize entry: %w", err)
	}

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

// Verify checks the entry's stored signature.
func (s *hmacSigner) Verify(entry *auditDomain.Entry) error {
	expected, err := s.Sign(entry)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(entry.Signature, expected) {
		return auditDomain.ErrSignatureInvalid
	}

	return nil
}

// zero overwrites key material in memory after use.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
