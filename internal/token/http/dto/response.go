package dto

import (
	"time"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
)

// TokenResponse is returned for a newly issued token.
type TokenResponse struct {
	Token     string    `json:"token"`
	Timestamp uint32    `json:"timestamp"`
	IssuedAt  time.Time `json:"issued_at"`
}

// MapIssuedTokenToResponse converts an issued token to an API response.
func MapIssuedTokenToResponse(issued *tokenDomain.IssuedToken) TokenResponse {
	return TokenResponse{
		Token:     issued.Token,
		Timestamp: issued.Timestamp,
		IssuedAt:  time.Unix(int64(issued.Timestamp), 0).UTC(),
	}
}

// DecodeTokenResponse contains the payload of a verified token.
// The Payload field is sensitive and is marshaled as base64.
type DecodeTokenResponse struct {
	Payload   []byte    `json:"payload"`
	Timestamp uint32    `json:"timestamp"`
	IssuedAt  time.Time `json:"issued_at"`
}

// MapDecodedTokenToResponse converts a decoded token to an API response.
func MapDecodedTokenToResponse(decoded *tokenDomain.DecodedToken) DecodeTokenResponse {
	return DecodeTokenResponse{
		Payload:   decoded.Payload,
		Timestamp: decoded.Timestamp,
		IssuedAt:  decoded.Time(),
	}
}

// CheckTokenResponse reports the state of a token.
type CheckTokenResponse struct {
	State tokenDomain.State `json:"state"`
}
