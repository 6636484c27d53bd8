package domain

import (
	"github.com/allisson/branca/internal/errors"
)

// Token format and codec errors.
//
// Format and key errors wrap ErrInvalidInput and are detected before any
// cryptographic work. Authentication and expiry errors wrap ErrUnauthorized.
var (
	// ErrInvalidFormat indicates a token that cannot be a Branca token: too
	// short, unsupported version, or not valid base62.
	ErrInvalidFormat = errors.Wrap(errors.ErrInvalidInput, "invalid token format")

	// ErrTokenTooShort indicates fewer than MinTokenSize bytes.
	ErrTokenTooShort = errors.Wrap(ErrInvalidFormat, "token too short")

	// ErrUnsupportedVersion indicates a version byte other than VersionBranca.
	ErrUnsupportedVersion = errors.Wrap(ErrInvalidFormat, "unsupported token version")

	// ErrInvalidKey indicates a key that is not exactly KeySize bytes.
	ErrInvalidKey = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidNonce indicates a caller supplied nonce that is not NonceSize bytes.
	ErrInvalidNonce = errors.Wrap(errors.ErrInvalidInput, "invalid nonce size")

	// ErrInvalidBase62 indicates text containing characters outside 0-9A-Za-z.
	ErrInvalidBase62 = errors.Wrap(errors.ErrInvalidInput, "invalid base62 encoding")

	// ErrTimestampOutOfRange indicates a time that cannot be stored in the
	// 32-bit timestamp field.
	ErrTimestampOutOfRange = errors.Wrap(errors.ErrInvalidInput, "timestamp out of range")

	// ErrAuthenticationFailed indicates the AEAD tag did not verify. It is
	// returned for a wrong key and for any tampered byte alike.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrUnauthorized, "token authentication failed")

	// ErrTokenExpired indicates an authentic token older than the requested TTL.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")
)

// Key ring errors.
var (
	ErrKeysNotSet         = errors.Wrap(errors.ErrInvalidInput, "BRANCA_KEYS is not set")
	ErrActiveKeyIDNotSet  = errors.Wrap(errors.ErrInvalidInput, "ACTIVE_BRANCA_KEY_ID is not set")
	ErrInvalidKeysFormat  = errors.Wrap(errors.ErrInvalidInput, "invalid BRANCA_KEYS format")
	ErrDuplicateKeyID     = errors.Wrap(errors.ErrInvalidInput, "duplicate key id")
	ErrActiveKeyNotFound  = errors.Wrap(errors.ErrInvalidInput, "active key not found in key ring")
	ErrKeyRingClosed      = errors.New("key ring is closed")
	ErrEmptyKeyIdentifier = errors.Wrap(errors.ErrInvalidInput, "key id cannot be empty")
)
