package service

import (
	"fmt"

	"github.com/eknkc/basex"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
)

// Base62Alphabet is the digit order used for keys, tokens and payloads in text form.
const Base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// base62 is immutable after init and safe for concurrent use.
var base62 = mustEncoding(Base62Alphabet)

func mustEncoding(alphabet string) *basex.Encoding {
	enc, err := basex.NewEncoding(alphabet)
	if err != nil {
		panic(fmt.Sprintf("invalid base62 alphabet: %v", err))
	}
	return enc
}

// Base62Encode encodes b as a big-endian base62 number. Each leading zero byte
// becomes a leading '0' so that the length round-trips.
func Base62Encode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return base62.Encode(b)
}

// Base62Decode reverses Base62Encode. The empty string decodes to an empty slice.
func Base62Decode(s string) ([]byte, error) {
	return base62DecodeAs(s, tokenDomain.ErrInvalidBase62)
}

// DecodeTokenString decodes the text form of a token. Text that is not
// base62 is a format error.
func DecodeTokenString(token string) ([]byte, error) {
	return base62DecodeAs(token, tokenDomain.ErrInvalidFormat)
}

// DecodeKeyString decodes the text form of a key. Text that is not base62 is
// a key error; the size is checked where the key is used.
func DecodeKeyString(key string) ([]byte, error) {
	return base62DecodeAs(key, tokenDomain.ErrInvalidKey)
}

// base62DecodeAs reports a decoding failure as kind, carrying the alphabet
// error as text only.
func base62DecodeAs(s string, kind error) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	b, err := base62.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kind, err)
	}
	return b, nil
}
