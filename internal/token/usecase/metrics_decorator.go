package usecase

import (
	"context"
	"time"

	"github.com/allisson/branca/internal/metrics"
	tokenDomain "github.com/allisson/branca/internal/token/domain"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.TokenMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.TokenMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenUseCaseWithMetrics) Issue(ctx context.Context, payload []byte) (*tokenDomain.IssuedToken, error) {
	start := time.Now()
	issued, err := t.next.Issue(ctx, payload)
	t.metrics.RecordOperation(ctx, "issue", time.Since(start), err)
	return issued, err
}

func (t *tokenUseCaseWithMetrics) Decode(
	ctx context.Context,
	token string,
	ttl uint32,
) (*tokenDomain.DecodedToken, error) {
	start := time.Now()
	decoded, err := t.next.Decode(ctx, token, ttl)
	t.metrics.RecordOperation(ctx, "decode", time.Since(start), err)
	return decoded, err
}

func (t *tokenUseCaseWithMetrics) Verify(ctx context.Context, token string) (*tokenDomain.DecodedToken, error) {
	start := time.Now()
	decoded, err := t.next.Verify(ctx, token)
	t.metrics.RecordOperation(ctx, "verify", time.Since(start), err)
	return decoded, err
}

func (t *tokenUseCaseWithMetrics) Check(ctx context.Context, token string) tokenDomain.State {
	start := time.Now()
	state := t.next.Check(ctx, token)
	t.metrics.RecordOperation(ctx, "check", time.Since(start), nil)
	t.metrics.RecordState(ctx, "check", string(state))
	return state
}

func (t *tokenUseCaseWithMetrics) RefreshCheck(ctx context.Context, token string) tokenDomain.State {
	start := time.Now()
	state := t.next.RefreshCheck(ctx, token)
	t.metrics.RecordOperation(ctx, "refresh_check", time.Since(start), nil)
	t.metrics.RecordState(ctx, "refresh_check", string(state))
	return state
}

func (t *tokenUseCaseWithMetrics) Refresh(ctx context.Context, token string) (*tokenDomain.IssuedToken, error) {
	start := time.Now()
	issued, err := t.next.Refresh(ctx, token)
	t.metrics.RecordOperation(ctx, "refresh", time.Since(start), err)
	return issued, err
}
