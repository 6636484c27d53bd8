// Package usecase implements the token service: issuing tokens with the
// active key and checking them against the initial and refresh TTLs.
package usecase

import (
	"context"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
)

// TokenUseCase issues and verifies text-form Branca tokens.
type TokenUseCase interface {
	// Issue encodes payload with the active key, stamped with the current time.
	Issue(ctx context.Context, payload []byte) (*tokenDomain.IssuedToken, error)

	// Decode verifies token against the key ring with an explicit ttl in
	// seconds. A ttl of zero disables the expiry check.
	Decode(ctx context.Context, token string, ttl uint32) (*tokenDomain.DecodedToken, error)

	// Verify is Decode with the initial TTL.
	Verify(ctx context.Context, token string) (*tokenDomain.DecodedToken, error)

	// Check classifies token against the initial TTL.
	Check(ctx context.Context, token string) tokenDomain.State

	// RefreshCheck classifies token against the refresh TTL.
	RefreshCheck(ctx context.Context, token string) tokenDomain.State

	// Refresh verifies token against the refresh TTL and issues a new token
	// carrying the same payload.
	Refresh(ctx context.Context, token string) (*tokenDomain.IssuedToken, error)
}
