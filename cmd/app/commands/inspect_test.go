package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
	tokenService "github.com/allisson/branca/internal/token/service"
)

func TestRunInspect(t *testing.T) {
	codec := tokenService.NewCodec()

	t.Run("text-output", func(t *testing.T) {
		var out bytes.Buffer
		err := RunInspect(codec, &out, vectorToken, "", "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Version:       0xBA")
		assert.Contains(t, out.String(), "Timestamp:     123206400 (1973-11-27T00:00:00Z)")
		assert.Contains(t, out.String(), "Nonce:         "+vectorNonceHex)
		assert.Contains(t, out.String(), "Payload size:  12 bytes")
		assert.Contains(t, out.String(), "Authenticated: false")
		assert.Contains(t, out.String(), "unauthenticated")
	})

	t.Run("json-output-with-key", func(t *testing.T) {
		var out bytes.Buffer
		err := RunInspect(codec, &out, vectorToken, vectorKey62, "json")
		require.NoError(t, err)

		var result inspectResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, inspectResult{
			Version:       "0xBA",
			Timestamp:     vectorTimestamp,
			IssuedAt:      "1973-11-27T00:00:00Z",
			Nonce:         vectorNonceHex,
			PayloadSize:   12,
			Authenticated: true,
		}, result)
	})

	t.Run("wrong-key", func(t *testing.T) {
		var out bytes.Buffer
		err := RunInspect(codec, &out, vectorToken, zeroKey62, "text")

		assert.ErrorIs(t, err, tokenDomain.ErrAuthenticationFailed)
		assert.Empty(t, out.String())
	})

	t.Run("invalid-token", func(t *testing.T) {
		var out bytes.Buffer
		err := RunInspect(codec, &out, vectorPayload62, "", "text")

		assert.ErrorIs(t, err, tokenDomain.ErrTokenTooShort)
		assert.Empty(t, out.String())
	})

	t.Run("invalid-format", func(t *testing.T) {
		err := RunInspect(codec, &bytes.Buffer{}, vectorToken, "", "yaml")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})
}
