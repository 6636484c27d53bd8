package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
	tokenService "github.com/allisson/branca/internal/token/service"
)

func TestRunEncode(t *testing.T) {
	codec := tokenService.NewCodec()

	t.Run("test vector", func(t *testing.T) {
		var out bytes.Buffer
		err := RunEncode(codec, &out, vectorKey62, vectorPayload62, vectorTimestamp, vectorNonceHex)

		require.NoError(t, err)
		assert.Equal(t, vectorToken, out.String())
	})

	t.Run("empty payload test vector", func(t *testing.T) {
		var out bytes.Buffer
		err := RunEncode(codec, &out, vectorKey62, "", 0, vectorNonceHex)

		require.NoError(t, err)
		assert.Equal(t, emptyPayloadToken, out.String())
	})

	t.Run("random nonce round trip", func(t *testing.T) {
		var first, second bytes.Buffer
		require.NoError(t, RunEncode(codec, &first, vectorKey62, vectorPayload62, vectorTimestamp, ""))
		require.NoError(t, RunEncode(codec, &second, vectorKey62, vectorPayload62, vectorTimestamp, ""))
		assert.NotEqual(t, first.String(), second.String())

		var decoded bytes.Buffer
		require.NoError(t, RunDecode(codec, &decoded, vectorKey62, first.String(), 0))
		assert.Equal(t, vectorPayload62, decoded.String())
	})

	tests := []struct {
		name        string
		key62       string
		payload62   string
		nonceHex    string
		expectedErr error
	}{
		{
			name:        "short key",
			key62:       vectorPayload62,
			payload62:   vectorPayload62,
			expectedErr: tokenDomain.ErrInvalidKey,
		},
		{
			name:        "payload not base62",
			key62:       vectorKey62,
			payload62:   "hello world",
			expectedErr: tokenDomain.ErrInvalidBase62,
		},
		{
			name:        "nonce not hex",
			key62:       vectorKey62,
			payload62:   vectorPayload62,
			nonceHex:    "zz",
			expectedErr: tokenDomain.ErrInvalidNonce,
		},
		{
			name:        "short nonce",
			key62:       vectorKey62,
			payload62:   vectorPayload62,
			nonceHex:    strings.Repeat("ab", 12),
			expectedErr: tokenDomain.ErrInvalidNonce,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := RunEncode(codec, &out, tt.key62, tt.payload62, vectorTimestamp, tt.nonceHex)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Empty(t, out.String())
		})
	}
}
