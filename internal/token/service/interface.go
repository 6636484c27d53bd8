// Package service implements the Branca token codec on top of
// XChaCha20-Poly1305, the base62 text encoding, and key material loading.
package service

import (
	"context"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
)

// TokenCodec encodes and decodes Branca tokens.
type TokenCodec interface {
	// Encode seals payload with a freshly generated random nonce.
	Encode(payload, key []byte, timestamp uint32) ([]byte, error)

	// EncodeWithNonce seals payload with a caller supplied 24-byte nonce.
	EncodeWithNonce(payload, key []byte, timestamp uint32, nonce []byte) ([]byte, error)

	// Decode verifies token and returns its payload. A ttl of zero disables
	// the expiry check.
	Decode(token, key []byte, ttl uint32) ([]byte, error)

	// DecodeToken is Decode returning the authenticated timestamp as well.
	DecodeToken(token, key []byte, ttl uint32) (*tokenDomain.DecodedToken, error)

	// DecodeWithKeyRing tries every key in the ring, active first.
	DecodeWithKeyRing(token []byte, keyRing *tokenDomain.KeyRing, ttl uint32) (*tokenDomain.DecodedToken, error)

	// Inspect parses the unauthenticated header of token.
	Inspect(token []byte) (*tokenDomain.Header, error)
}

// KMSKeeper encrypts and decrypts key material with a KMS key.
// *secrets.Keeper from gocloud.dev satisfies it.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for a KMS key URI.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI (gcpkms://, awskms://,
	// azurekeyvault://, hashivault://, base64key://).
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
