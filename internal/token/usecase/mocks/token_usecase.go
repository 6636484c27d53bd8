// Package mocks provides testify mocks of the token use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
)

// MockTokenUseCase is a mock implementation of usecase.TokenUseCase.
type MockTokenUseCase struct {
	mock.Mock
}

func (m *MockTokenUseCase) Issue(ctx context.Context, payload []byte) (*tokenDomain.IssuedToken, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.IssuedToken), args.Error(1)
}

func (m *MockTokenUseCase) Decode(
	ctx context.Context,
	token string,
	ttl uint32,
) (*tokenDomain.DecodedToken, error) {
	args := m.Called(ctx, token, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.DecodedToken), args.Error(1)
}

func (m *MockTokenUseCase) Verify(ctx context.Context, token string) (*tokenDomain.DecodedToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.DecodedToken), args.Error(1)
}

func (m *MockTokenUseCase) Check(ctx context.Context, token string) tokenDomain.State {
	return m.Called(ctx, token).Get(0).(tokenDomain.State)
}

func (m *MockTokenUseCase) RefreshCheck(ctx context.Context, token string) tokenDomain.State {
	return m.Called(ctx, token).Get(0).(tokenDomain.State)
}

func (m *MockTokenUseCase) Refresh(ctx context.Context, token string) (*tokenDomain.IssuedToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.IssuedToken), args.Error(1)
}
