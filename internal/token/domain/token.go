package domain

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Header is the plaintext, authenticated prefix of a token.
//
// A Header returned by ParseHeader has not been authenticated; its Timestamp
// must not drive any decision before the token has been decoded with a key.
type Header struct {
	Version   Version
	Timestamp uint32
	Nonce     []byte
	// PayloadSize is the ciphertext length, equal to the plaintext length.
	PayloadSize int
}

// NewHeader builds the header for a token about to be encoded.
func NewHeader(timestamp uint32, nonce []byte) *Header {
	return &Header{
		Version:   VersionBranca,
		Timestamp: timestamp,
		Nonce:     nonce,
	}
}

// ParseHeader validates the structure of token and returns its header. It
// checks the length before the version so that empty input reports
// ErrTokenTooShort. The returned Nonce aliases token.
func ParseHeader(token []byte) (*Header, error) {
	if len(token) < MinTokenSize {
		return nil, ErrTokenTooShort
	}

	version := Version(token[0])
	if !version.IsSupported() {
		return nil, ErrUnsupportedVersion
	}

	return &Header{
		Version:     version,
		Timestamp:   binary.BigEndian.Uint32(token[timestampOffset:nonceOffset]),
		Nonce:       token[nonceOffset:HeaderSize],
		PayloadSize: len(token) - MinTokenSize,
	}, nil
}

// Bytes serializes the header into its HeaderSize-byte wire form, which is
// also the AEAD additional data.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	b[0] = byte(h.Version)
	binary.BigEndian.PutUint32(b[timestampOffset:nonceOffset], h.Timestamp)
	copy(b[nonceOffset:], h.Nonce)
	return b
}

// Time returns the embedded timestamp in UTC.
func (h *Header) Time() time.Time {
	return time.Unix(int64(h.Timestamp), 0).UTC()
}

// TimestampFromTime converts t to a token timestamp. Instants before the Unix
// epoch or after 2106-02-07T06:28:15Z do not fit in 32 bits.
func TimestampFromTime(t time.Time) (uint32, error) {
	unix := t.Unix()
	if unix < 0 || unix > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrTimestampOutOfRange, unix)
	}
	return uint32(unix), nil
}

// IssuedToken is a freshly encoded token in text form.
type IssuedToken struct {
	Token     string
	Timestamp uint32
	KeyID     string
}

// DecodedToken is the result of a successful decode.
type DecodedToken struct {
	Payload   []byte
	Timestamp uint32
	// KeyID identifies the key ring entry that authenticated the token. Empty
	// when a bare key was used.
	KeyID string
}

// Time returns the authenticated timestamp in UTC.
func (d *DecodedToken) Time() time.Time {
	return time.Unix(int64(d.Timestamp), 0).UTC()
}

// IsExpired reports whether a token stamped at timestamp is older than ttl
// seconds at now. A zero ttl never expires, and a timestamp ahead of now is
// never expired.
func IsExpired(timestamp, ttl uint32, now time.Time) bool {
	if ttl == 0 {
		return false
	}
	age := now.Unix() - int64(timestamp)
	return age > int64(ttl)
}
