package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
)

// Codec implements TokenCodec with XChaCha20-Poly1305.
//
// A token is
//
//	[Version: 1 byte (0xBA)] [Timestamp: 4 bytes BE] [Nonce: 24 bytes] [Ciphertext: N bytes] [Tag: 16 bytes]
//
// and the first 29 bytes (version, timestamp, nonce) are the AEAD additional
// data, so any change to the header fails authentication.
//
// Codec holds only a clock and a random source. It is safe for concurrent use.
type Codec struct {
	now    func() time.Time
	random io.Reader
}

// NewCodec creates a codec using the system clock and crypto/rand.
func NewCodec() *Codec {
	return &Codec{now: time.Now, random: rand.Reader}
}

// NewCodecWithClock creates a codec with an injected clock and random source.
// A nil argument falls back to the system default.
func NewCodecWithClock(now func() time.Time, random io.Reader) *Codec {
	c := NewCodec()
	if now != nil {
		c.now = now
	}
	if random != nil {
		c.random = random
	}
	return c
}

// Encode seals payload under key with a random nonce read from the codec's
// random source.
func (c *Codec) Encode(payload, key []byte, timestamp uint32) ([]byte, error) {
	if len(key) != tokenDomain.KeySize {
		return nil, tokenDomain.ErrInvalidKey
	}

	nonce := make([]byte, tokenDomain.NonceSize)
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return c.EncodeWithNonce(payload, key, timestamp, nonce)
}

// EncodeWithNonce seals payload under key with the given nonce. Reusing a
// nonce with the same key breaks confidentiality; this exists for test vectors
// and callers with their own nonce source.
func (c *Codec) EncodeWithNonce(payload, key []byte, timestamp uint32, nonce []byte) ([]byte, error) {
	if len(key) != tokenDomain.KeySize {
		return nil, tokenDomain.ErrInvalidKey
	}
	if len(nonce) != tokenDomain.NonceSize {
		return nil, tokenDomain.ErrInvalidNonce
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create XChaCha20-Poly1305 cipher: %w", err)
	}

	header := tokenDomain.NewHeader(timestamp, nonce).Bytes()

	// Seal appends ciphertext and tag after the header.
	token := make([]byte, tokenDomain.HeaderSize, tokenDomain.HeaderSize+len(payload)+aead.Overhead())
	copy(token, header)
	return aead.Seal(token, nonce, payload, header), nil
}

// Decode verifies token under key and returns the payload.
func (c *Codec) Decode(token, key []byte, ttl uint32) ([]byte, error) {
	decoded, err := c.DecodeToken(token, key, ttl)
	if err != nil {
		return nil, err
	}
	return decoded.Payload, nil
}

// DecodeToken verifies token under key and returns the payload with its
// authenticated timestamp.
//
// Checks run in this order: key size, token length and version, AEAD tag,
// then expiry. The expiry check only ever sees an authenticated timestamp.
// Every tag failure returns ErrAuthenticationFailed with no further detail.
func (c *Codec) DecodeToken(token, key []byte, ttl uint32) (*tokenDomain.DecodedToken, error) {
	if len(key) != tokenDomain.KeySize {
		return nil, tokenDomain.ErrInvalidKey
	}

	header, err := tokenDomain.ParseHeader(token)
	if err != nil {
		return nil, err
	}

	return c.open(token, header, key, ttl)
}

// DecodeWithKeyRing verifies token against each key of keyRing, active key
// first. The first key that authenticates the token decides the result: an
// expired token is reported as expired without trying further keys.
func (c *Codec) DecodeWithKeyRing(
	token []byte,
	keyRing *tokenDomain.KeyRing,
	ttl uint32,
) (*tokenDomain.DecodedToken, error) {
	header, err := tokenDomain.ParseHeader(token)
	if err != nil {
		return nil, err
	}

	keys := keyRing.Keys()
	if len(keys) == 0 {
		return nil, tokenDomain.ErrKeyRingClosed
	}
	defer tokenDomain.ZeroKeys(keys)

	for _, key := range keys {
		decoded, err := c.open(token, header, key.Material, ttl)
		if errors.Is(err, tokenDomain.ErrAuthenticationFailed) {
			continue
		}
		if err != nil {
			return nil, err
		}
		decoded.KeyID = key.ID
		return decoded, nil
	}

	return nil, tokenDomain.ErrAuthenticationFailed
}

// Inspect parses the header of token without a key. Its timestamp is not
// authenticated.
func (c *Codec) Inspect(token []byte) (*tokenDomain.Header, error) {
	return tokenDomain.ParseHeader(token)
}

// Timestamp decodes token without an expiry check and returns its
// authenticated timestamp.
func (c *Codec) Timestamp(token, key []byte) (time.Time, error) {
	decoded, err := c.DecodeToken(token, key, 0)
	if err != nil {
		return time.Time{}, err
	}
	return decoded.Time(), nil
}

// EncodeToString is Encode followed by base62 encoding.
func (c *Codec) EncodeToString(payload, key []byte, timestamp uint32) (string, error) {
	token, err := c.Encode(payload, key, timestamp)
	if err != nil {
		return "", err
	}
	return Base62Encode(token), nil
}

// DecodeString base62-decodes token and then decodes it. Text that is not
// base62 is a format error.
func (c *Codec) DecodeString(token string, key []byte, ttl uint32) ([]byte, error) {
	raw, err := DecodeTokenString(token)
	if err != nil {
		return nil, err
	}
	return c.Decode(raw, key, ttl)
}

// InspectString base62-decodes token and parses its header.
func (c *Codec) InspectString(token string) (*tokenDomain.Header, error) {
	raw, err := DecodeTokenString(token)
	if err != nil {
		return nil, err
	}
	return c.Inspect(raw)
}

// open authenticates and decrypts a token whose header has already been parsed.
func (c *Codec) open(
	token []byte,
	header *tokenDomain.Header,
	key []byte,
	ttl uint32,
) (*tokenDomain.DecodedToken, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, tokenDomain.ErrInvalidKey
	}

	ad := token[:tokenDomain.HeaderSize]
	payload, err := aead.Open(nil, header.Nonce, token[tokenDomain.HeaderSize:], ad)
	if err != nil {
		return nil, tokenDomain.ErrAuthenticationFailed
	}

	if tokenDomain.IsExpired(header.Timestamp, ttl, c.now()) {
		tokenDomain.Zero(payload)
		return nil, tokenDomain.ErrTokenExpired
	}

	return &tokenDomain.DecodedToken{
		Payload:   payload,
		Timestamp: header.Timestamp,
	}, nil
}
