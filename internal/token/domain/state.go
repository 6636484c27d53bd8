package domain

import (
	"github.com/allisson/branca/internal/errors"
)

// State is the outcome of checking a token against a TTL policy.
type State string

const (
	// StateValid is an authentic token within its TTL.
	StateValid State = "valid"
	// StateExpired is an authentic token past its TTL.
	StateExpired State = "expired"
	// StateInvalid is anything else: malformed, tampered or wrong key.
	StateInvalid State = "invalid"
)

// StateFromError classifies the error returned by a decode.
func StateFromError(err error) State {
	switch {
	case err == nil:
		return StateValid
	case errors.Is(err, ErrTokenExpired):
		return StateExpired
	default:
		return StateInvalid
	}
}
