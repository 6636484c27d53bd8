// Package domain defines the Branca token model: wire layout constants, the
// parsed header, decode results, policy states, keys and the key ring.
package domain

import "fmt"

// Version is the leading byte of a token and selects its layout.
type Version byte

// VersionBranca is the only defined Branca version.
const VersionBranca Version = 0xBA

// Wire layout sizes, in bytes.
//
//	version(1) || timestamp(4, big-endian) || nonce(24) || ciphertext(N) || tag(16)
//
// The first HeaderSize bytes are authenticated as additional data.
const (
	VersionSize   = 1
	TimestampSize = 4
	NonceSize     = 24
	TagSize       = 16
	KeySize       = 32

	HeaderSize   = VersionSize + TimestampSize + NonceSize
	MinTokenSize = HeaderSize + TagSize
)

// Header field offsets.
const (
	timestampOffset = VersionSize
	nonceOffset     = timestampOffset + TimestampSize
)

// IsSupported reports whether tokens of this version can be decoded.
func (v Version) IsSupported() bool {
	return v == VersionBranca
}

// String returns the version byte in hex, e.g. "0xBA".
func (v Version) String() string {
	return fmt.Sprintf("0x%02X", byte(v))
}
