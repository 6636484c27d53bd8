package usecase

import (
	"context"
	"crypto/sha256"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
	tokenService "github.com/allisson/branca/internal/token/service"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestKeyRing derives each key from its id, so equal ids give equal keys
// across rings and different ids never collide.
func newTestKeyRing(t *testing.T, activeID string, ids ...string) *tokenDomain.KeyRing {
	t.Helper()
	keys := make([]*tokenDomain.Key, 0, len(ids))
	for _, id := range ids {
		material := sha256.Sum256([]byte(id))
		key, err := tokenDomain.NewKey(id, material[:])
		require.NoError(t, err)
		keys = append(keys, key)
	}
	keyRing, err := tokenDomain.NewKeyRing(activeID, keys...)
	require.NoError(t, err)
	t.Cleanup(keyRing.Close)
	return keyRing
}

func tamperLastChar(token string) string {
	last := token[len(token)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	return token[:len(token)-1] + string(replacement)
}

func newTestUseCase(t *testing.T, keyRing *tokenDomain.KeyRing, c *clock) TokenUseCase {
	t.Helper()
	codec := tokenService.NewCodecWithClock(c.Now, nil)
	return NewTokenUseCase(codec, keyRing, TTLConfig{Initial: 60, Refresh: 300}, c.Now)
}

func TestTokenUseCase_Issue(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Unix(1_700_000_000, 0)}
	keyRing := newTestKeyRing(t, "k2", "k1", "k2")
	uc := newTestUseCase(t, keyRing, c)

	t.Run("Success", func(t *testing.T) {
		issued, err := uc.Issue(ctx, []byte("/docs/a.txt"))
		require.NoError(t, err)
		assert.Equal(t, uint32(1_700_000_000), issued.Timestamp)
		assert.Equal(t, "k2", issued.KeyID)

		decoded, err := uc.Verify(ctx, issued.Token)
		require.NoError(t, err)
		assert.Equal(t, []byte("/docs/a.txt"), decoded.Payload)
		assert.Equal(t, "k2", decoded.KeyID)
	})

	t.Run("Error_ClockOutOfRange", func(t *testing.T) {
		bad := NewTokenUseCase(tokenService.NewCodec(), keyRing, TTLConfig{}, func() time.Time {
			return time.Unix(-10, 0)
		})
		_, err := bad.Issue(ctx, []byte("x"))
		assert.ErrorIs(t, err, tokenDomain.ErrTimestampOutOfRange)
	})

	t.Run("Error_ClosedKeyRing", func(t *testing.T) {
		closed := newTestKeyRing(t, "k1", "k1")
		closed.Close()
		_, err := newTestUseCase(t, closed, c).Issue(ctx, []byte("x"))
		assert.ErrorIs(t, err, tokenDomain.ErrKeyRingClosed)
	})
}

func TestTokenUseCase_Decode(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Unix(1_700_000_000, 0)}
	uc := newTestUseCase(t, newTestKeyRing(t, "k1", "k1"), c)

	issued, err := uc.Issue(ctx, []byte("payload"))
	require.NoError(t, err)

	c.Advance(time.Hour)

	t.Run("Success_ZeroTTL", func(t *testing.T) {
		decoded, err := uc.Decode(ctx, issued.Token, 0)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), decoded.Payload)
		assert.Equal(t, issued.Timestamp, decoded.Timestamp)
	})

	t.Run("Error_Expired", func(t *testing.T) {
		_, err := uc.Decode(ctx, issued.Token, 3599)
		assert.ErrorIs(t, err, tokenDomain.ErrTokenExpired)
	})

	t.Run("Error_NotBase62", func(t *testing.T) {
		_, err := uc.Decode(ctx, "not a token!", 0)
		assert.ErrorIs(t, err, tokenDomain.ErrInvalidFormat)
	})

	t.Run("Error_TooShort", func(t *testing.T) {
		_, err := uc.Decode(ctx, "abc", 0)
		assert.ErrorIs(t, err, tokenDomain.ErrTokenTooShort)
	})

	t.Run("Error_UnknownKey", func(t *testing.T) {
		other := newTestUseCase(t, newTestKeyRing(t, "x", "x"), c)
		_, err := other.Decode(ctx, issued.Token, 0)
		assert.ErrorIs(t, err, tokenDomain.ErrAuthenticationFailed)
	})
}

func TestTokenUseCase_Check(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Unix(1_700_000_000, 0)}
	uc := newTestUseCase(t, newTestKeyRing(t, "k1", "k1"), c)

	issued, err := uc.Issue(ctx, []byte("payload"))
	require.NoError(t, err)

	assert.Equal(t, tokenDomain.StateValid, uc.Check(ctx, issued.Token))
	assert.Equal(t, tokenDomain.StateValid, uc.RefreshCheck(ctx, issued.Token))

	c.Advance(61 * time.Second)
	assert.Equal(t, tokenDomain.StateExpired, uc.Check(ctx, issued.Token))
	assert.Equal(t, tokenDomain.StateValid, uc.RefreshCheck(ctx, issued.Token))

	c.Advance(300 * time.Second)
	assert.Equal(t, tokenDomain.StateExpired, uc.RefreshCheck(ctx, issued.Token))

	assert.Equal(t, tokenDomain.StateInvalid, uc.Check(ctx, "garbage"))
	assert.Equal(t, tokenDomain.StateInvalid, uc.RefreshCheck(ctx, tamperLastChar(issued.Token)))
}

func TestTokenUseCase_Refresh(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Unix(1_700_000_000, 0)}
	uc := newTestUseCase(t, newTestKeyRing(t, "k1", "k1"), c)

	issued, err := uc.Issue(ctx, []byte("/docs/b.txt"))
	require.NoError(t, err)

	t.Run("Success_PastInitialWithinRefresh", func(t *testing.T) {
		c.Advance(120 * time.Second)

		refreshed, err := uc.Refresh(ctx, issued.Token)
		require.NoError(t, err)
		assert.Equal(t, issued.Timestamp+120, refreshed.Timestamp)
		assert.NotEqual(t, issued.Token, refreshed.Token)

		decoded, err := uc.Verify(ctx, refreshed.Token)
		require.NoError(t, err)
		assert.Equal(t, []byte("/docs/b.txt"), decoded.Payload)
	})

	t.Run("Error_PastRefresh", func(t *testing.T) {
		c.Advance(time.Hour)
		_, err := uc.Refresh(ctx, issued.Token)
		assert.ErrorIs(t, err, tokenDomain.ErrTokenExpired)
	})
}

func TestTokenUseCase_KeyRotation(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Unix(1_700_000_000, 0)}

	oldRing := newTestKeyRing(t, "k1", "k1")
	issued, err := newTestUseCase(t, oldRing, c).Issue(ctx, []byte("payload"))
	require.NoError(t, err)

	rotated := newTestUseCase(t, newTestKeyRing(t, "k2", "k1", "k2"), c)

	decoded, err := rotated.Verify(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "k1", decoded.KeyID)

	refreshed, err := rotated.Refresh(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "k2", refreshed.KeyID)
}
