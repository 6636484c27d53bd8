// Package http provides HTTP handlers for issuing and verifying tokens.
package http

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/branca/internal/httputil"
	tokenDomain "github.com/allisson/branca/internal/token/domain"
	"github.com/allisson/branca/internal/token/http/dto"
	tokenUseCase "github.com/allisson/branca/internal/token/usecase"
	customValidation "github.com/allisson/branca/internal/validation"
)

// TokenHandler handles HTTP requests for the token service.
type TokenHandler struct {
	tokenUseCase tokenUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler.
func NewTokenHandler(tokenUseCase tokenUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// IssueHandler seals a payload into a new token with the active key.
// POST /v1/tokens - Returns 201 Created.
func (h *TokenHandler) IssueHandler(c *gin.Context) {
	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Validate already rejected malformed or oversized base64.
	payload, _ := base64.StdEncoding.DecodeString(req.Payload)
	defer tokenDomain.Zero(payload)

	issued, err := h.tokenUseCase.Issue(c.Request.Context(), payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIssuedTokenToResponse(issued))
}

// DecodeHandler verifies a token and returns its payload.
// POST /v1/tokens/decode - Returns 200 OK, 401 for tampered or expired tokens.
func (h *TokenHandler) DecodeHandler(c *gin.Context) {
	var req dto.DecodeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var (
		decoded *tokenDomain.DecodedToken
		err     error
	)
	if req.TTL == nil {
		decoded, err = h.tokenUseCase.Verify(c.Request.Context(), req.Token)
	} else {
		decoded, err = h.tokenUseCase.Decode(c.Request.Context(), req.Token, *req.TTL)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer tokenDomain.Zero(decoded.Payload)

	c.JSON(http.StatusOK, dto.MapDecodedTokenToResponse(decoded))
}

// CheckHandler reports whether a token is valid, expired or invalid. It never
// fails on a bad token; the state carries the verdict.
// POST /v1/tokens/check - Returns 200 OK.
func (h *TokenHandler) CheckHandler(c *gin.Context) {
	var req dto.CheckTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var state tokenDomain.State
	if req.Refresh {
		state = h.tokenUseCase.RefreshCheck(c.Request.Context(), req.Token)
	} else {
		state = h.tokenUseCase.Check(c.Request.Context(), req.Token)
	}

	c.JSON(http.StatusOK, dto.CheckTokenResponse{State: state})
}

// RefreshHandler exchanges a token still within the refresh TTL for a new one.
// POST /v1/tokens/refresh - Returns 201 Created.
func (h *TokenHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	issued, err := h.tokenUseCase.Refresh(c.Request.Context(), req.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIssuedTokenToResponse(issued))
}
