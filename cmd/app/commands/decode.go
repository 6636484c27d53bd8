package commands

import (
	"fmt"
	"io"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
	tokenService "github.com/allisson/branca/internal/token/service"
)

// RunDecode verifies a base62 token with a base62 key and writes the payload,
// base62 encoded and without a trailing newline, to w.
//
// A ttl of zero disables the expiry check. On any failure nothing is written
// and the error wraps one of the token domain errors.
func RunDecode(codec tokenService.TokenCodec, w io.Writer, key62, token62 string, ttl uint32) error {
	key, err := decodeKey(key62)
	if err != nil {
		return err
	}
	defer tokenDomain.Zero(key)

	token, err := decodeToken(token62)
	if err != nil {
		return err
	}

	payload, err := codec.Decode(token, key, ttl)
	if err != nil {
		return err
	}
	defer tokenDomain.Zero(payload)

	if _, err := fmt.Fprint(w, tokenService.Base62Encode(payload)); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}
