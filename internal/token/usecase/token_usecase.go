package usecase

import (
	"context"
	"time"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
	tokenService "github.com/allisson/branca/internal/token/service"
)

// TTLConfig holds the two expiry windows, in seconds. Zero disables expiry.
type TTLConfig struct {
	Initial uint32
	Refresh uint32
}

type tokenUseCase struct {
	codec   tokenService.TokenCodec
	keyRing *tokenDomain.KeyRing
	ttl     TTLConfig
	now     func() time.Time
}

// NewTokenUseCase creates a TokenUseCase. A nil now uses time.Now; it must
// be the same clock the codec expires tokens with.
func NewTokenUseCase(
	codec tokenService.TokenCodec,
	keyRing *tokenDomain.KeyRing,
	ttl TTLConfig,
	now func() time.Time,
) TokenUseCase {
	if now == nil {
		now = time.Now
	}
	return &tokenUseCase{
		codec:   codec,
		keyRing: keyRing,
		ttl:     ttl,
		now:     now,
	}
}

func (t *tokenUseCase) Issue(_ context.Context, payload []byte) (*tokenDomain.IssuedToken, error) {
	key, err := t.keyRing.Active()
	if err != nil {
		return nil, err
	}
	defer tokenDomain.Zero(key.Material)

	timestamp, err := tokenDomain.TimestampFromTime(t.now())
	if err != nil {
		return nil, err
	}

	raw, err := t.codec.Encode(payload, key.Material, timestamp)
	if err != nil {
		return nil, err
	}

	return &tokenDomain.IssuedToken{
		Token:     tokenService.Base62Encode(raw),
		Timestamp: timestamp,
		KeyID:     key.ID,
	}, nil
}

func (t *tokenUseCase) Decode(_ context.Context, token string, ttl uint32) (*tokenDomain.DecodedToken, error) {
	raw, err := tokenService.DecodeTokenString(token)
	if err != nil {
		return nil, err
	}
	return t.codec.DecodeWithKeyRing(raw, t.keyRing, ttl)
}

func (t *tokenUseCase) Verify(ctx context.Context, token string) (*tokenDomain.DecodedToken, error) {
	return t.Decode(ctx, token, t.ttl.Initial)
}

func (t *tokenUseCase) Check(ctx context.Context, token string) tokenDomain.State {
	return t.state(ctx, token, t.ttl.Initial)
}

func (t *tokenUseCase) RefreshCheck(ctx context.Context, token string) tokenDomain.State {
	return t.state(ctx, token, t.ttl.Refresh)
}

func (t *tokenUseCase) Refresh(ctx context.Context, token string) (*tokenDomain.IssuedToken, error) {
	decoded, err := t.Decode(ctx, token, t.ttl.Refresh)
	if err != nil {
		return nil, err
	}
	defer tokenDomain.Zero(decoded.Payload)

	return t.Issue(ctx, decoded.Payload)
}

func (t *tokenUseCase) state(ctx context.Context, token string, ttl uint32) tokenDomain.State {
	decoded, err := t.Decode(ctx, token, ttl)
	if err == nil {
		tokenDomain.Zero(decoded.Payload)
	}
	return tokenDomain.StateFromError(err)
}
