package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/allisson/branca/internal/errors"
)

// Outcome labels for token operations.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeUnauthorized = "unauthorized"
	OutcomeError        = "error"
)

// TokenMetrics records token service activity.
type TokenMetrics interface {
	// RecordOperation counts one operation ("issue", "decode", "check",
	// "refresh") and observes its duration. The outcome label is derived
	// from err.
	RecordOperation(ctx context.Context, operation string, duration time.Duration, err error)

	// RecordState counts one token check result ("valid", "expired", "invalid").
	RecordState(ctx context.Context, operation, state string)
}

type tokenMetrics struct {
	operations metric.Int64Counter
	durations  metric.Float64Histogram
	states     metric.Int64Counter
}

// NewTokenMetrics creates the token instruments on meter.
func NewTokenMetrics(meter metric.Meter, namespace string) (TokenMetrics, error) {
	operations, err := meter.Int64Counter(
		fmt.Sprintf("%s_token_operations_total", namespace),
		metric.WithDescription("Total number of token operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token operation counter: %w", err)
	}

	durations, err := meter.Float64Histogram(
		fmt.Sprintf("%s_token_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of token operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token duration histogram: %w", err)
	}

	states, err := meter.Int64Counter(
		fmt.Sprintf("%s_token_checks_total", namespace),
		metric.WithDescription("Token check results by state"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token check counter: %w", err)
	}

	return &tokenMetrics{operations: operations, durations: durations, states: states}, nil
}

func (m *tokenMetrics) RecordOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", Outcome(err)),
	)
	m.operations.Add(ctx, 1, attrs)
	m.durations.Record(ctx, duration.Seconds(), attrs)
}

func (m *tokenMetrics) RecordState(ctx context.Context, operation, state string) {
	m.states.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("state", state),
	))
}

// Outcome maps an operation error to its outcome label. Authentication and
// expiry failures share one label so metrics do not leak which one occurred.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, errors.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, errors.ErrUnauthorized):
		return OutcomeUnauthorized
	default:
		return OutcomeError
	}
}

// NoOpTokenMetrics discards everything. Used when METRICS_ENABLED is false.
type NoOpTokenMetrics struct{}

// NewNoOpTokenMetrics returns a TokenMetrics that records nothing.
func NewNoOpTokenMetrics() TokenMetrics {
	return &NoOpTokenMetrics{}
}

func (n *NoOpTokenMetrics) RecordOperation(context.Context, string, time.Duration, error) {}

func (n *NoOpTokenMetrics) RecordState(context.Context, string, string) {}
