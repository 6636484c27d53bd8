package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
	tokenService "github.com/allisson/branca/internal/token/service"
)

// inspectResult is the JSON form of RunInspect output.
type inspectResult struct {
	Version       string `json:"version"`
	Timestamp     uint32 `json:"timestamp"`
	IssuedAt      string `json:"issued_at"`
	Nonce         string `json:"nonce"`
	PayloadSize   int    `json:"payload_size"`
	Authenticated bool   `json:"authenticated"`
}

// RunInspect prints the header of a base62 token. Without a key the header is
// unauthenticated and reported as such. With key62 the token is decoded
// first (without an expiry check) and any failure is returned.
func RunInspect(codec tokenService.TokenCodec, w io.Writer, token62, key62, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	token, err := decodeToken(token62)
	if err != nil {
		return err
	}

	header, err := codec.Inspect(token)
	if err != nil {
		return err
	}

	authenticated := false
	if key62 != "" {
		key, err := decodeKey(key62)
		if err != nil {
			return err
		}
		defer tokenDomain.Zero(key)

		decoded, err := codec.DecodeToken(token, key, 0)
		if err != nil {
			return err
		}
		tokenDomain.Zero(decoded.Payload)
		authenticated = true
	}

	result := inspectResult{
		Version:       header.Version.String(),
		Timestamp:     header.Timestamp,
		IssuedAt:      header.Time().Format(time.RFC3339),
		Nonce:         hex.EncodeToString(header.Nonce),
		PayloadSize:   header.PayloadSize,
		Authenticated: authenticated,
	}

	if format == "json" {
		return writeJSON(w, result)
	}
	return writeInspectText(w, result)
}

func writeInspectText(w io.Writer, r inspectResult) error {
	_, err := fmt.Fprintf(w,
		"Version:       %s\nTimestamp:     %d (%s)\nNonce:         %s\nPayload size:  %d bytes\nAuthenticated: %t\n",
		r.Version, r.Timestamp, r.IssuedAt, r.Nonce, r.PayloadSize, r.Authenticated,
	)
	if err != nil {
		return err
	}
	if !r.Authenticated {
		_, err = fmt.Fprintln(w, "# Header fields are unauthenticated until the token is decoded with its key.")
	}
	return err
}
