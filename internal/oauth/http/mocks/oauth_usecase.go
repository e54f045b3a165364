// Package mocks provides mock implementations for testing OAuth HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	oauthDomain "github.com/lovelifenow/admin-api/internal/oauth/domain"
)

// MockOAuthUseCase is a mock implementation of OAuthUseCase for testing.
type MockOAuthUseCase struct {
	mock.Mock
}

// StartAuthorization mocks the StartAuthorization method of OAuthUseCase.
func (m *MockOAuthUseCase) StartAuthorization() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

// HandleCallback mocks the HandleCallback method of OAuthUseCase.
func (m *MockOAuthUseCase) HandleCallback(
	ctx context.Context,
	queryState, code, queryErr, stateCookie string,
) (*oauthDomain.TokenRecord, error) {
	args := m.Called(ctx, queryState, code, queryErr, stateCookie)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.TokenRecord), args.Error(1)
}

// ValidAccessToken mocks the ValidAccessToken method of OAuthUseCase.
func (m *MockOAuthUseCase) ValidAccessToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
