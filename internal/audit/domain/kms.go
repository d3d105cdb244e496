package domain

import "context"

// KMSKeeper unwraps KMS-protected key material. *secrets.Keeper from
// gocloud.dev implements this interface.
type KMSKeeper interface {
	// Decrypt decrypts the ciphertext and returns the plaintext.
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	// Close releases any resources held by the keeper.
	Close() error
}
