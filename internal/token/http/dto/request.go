// Package dto provides data transfer objects for the token HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/branca/internal/validation"
)

const (
	// MaxPayloadSize bounds the decoded payload accepted for issuing.
	MaxPayloadSize = 64 * 1024

	// maxPayloadBase64Length is the base64 length of a MaxPayloadSize payload.
	maxPayloadBase64Length = (MaxPayloadSize + 2) / 3 * 4

	// maxTokenLength comfortably covers the base62 form of a token carrying
	// MaxPayloadSize bytes.
	maxTokenLength = 128 * 1024
)

// IssueTokenRequest contains the payload to seal into a new token.
type IssueTokenRequest struct {
	Payload string `json:"payload"` // Base64-encoded payload, may be empty
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Payload,
			customValidation.Base64,
			validation.Length(0, maxPayloadBase64Length),
		),
	)
}

// DecodeTokenRequest contains a token and an optional TTL override.
type DecodeTokenRequest struct {
	Token string `json:"token"`
	// TTL in seconds. Omitted uses the configured initial TTL; 0 disables
	// the expiry check.
	TTL *uint32 `json:"ttl,omitempty"`
}

// Validate checks if the decode token request is valid.
func (r *DecodeTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, tokenRules()...),
	)
}

// CheckTokenRequest asks for the state of a token.
type CheckTokenRequest struct {
	Token string `json:"token"`
	// Refresh selects the refresh TTL instead of the initial TTL.
	Refresh bool `json:"refresh"`
}

// Validate checks if the check token request is valid.
func (r *CheckTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, tokenRules()...),
	)
}

// RefreshTokenRequest contains a token to exchange for a fresh one.
type RefreshTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks if the refresh token request is valid.
func (r *RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, tokenRules()...),
	)
}

func tokenRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		customValidation.NotBlank,
		customValidation.Base62,
		validation.Length(1, maxTokenLength),
	}
}
