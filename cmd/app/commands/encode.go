package commands

import (
	"encoding/hex"
	"fmt"
	"io"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
	tokenService "github.com/allisson/branca/internal/token/service"
)

// RunEncode seals a base62 payload with a base62 key and writes the base62
// token, without a trailing newline, to w.
//
// nonceHex is normally empty, in which case a random nonce is used. A fixed
// nonce (48 hex digits) reproduces a token byte for byte and must never be
// reused with the same key outside of tests.
func RunEncode(
	codec tokenService.TokenCodec,
	w io.Writer,
	key62, payload62 string,
	timestamp uint32,
	nonceHex string,
) error {
	key, err := decodeKey(key62)
	if err != nil {
		return err
	}
	defer tokenDomain.Zero(key)

	payload, err := tokenService.Base62Decode(payload62)
	if err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	defer tokenDomain.Zero(payload)

	var token []byte
	if nonceHex == "" {
		token, err = codec.Encode(payload, key, timestamp)
	} else {
		nonce, decodeErr := hex.DecodeString(nonceHex)
		if decodeErr != nil {
			return fmt.Errorf("%w: %v", tokenDomain.ErrInvalidNonce, decodeErr)
		}
		token, err = codec.EncodeWithNonce(payload, key, timestamp, nonce)
	}
	if err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, tokenService.Base62Encode(token)); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}
