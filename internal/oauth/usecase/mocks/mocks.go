// Package mocks provides mock implementations for testing the OAuth use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	oauthDomain "github.com/lovelifenow/admin-api/internal/oauth/domain"
)

// MockProvider is a mock implementation of service.Provider for testing.
type MockProvider struct {
	mock.Mock
}

// AuthCodeURL mocks the AuthCodeURL method of Provider.
func (m *MockProvider) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

// Exchange mocks the Exchange method of Provider.
func (m *MockProvider) Exchange(ctx context.Context, code string) (*oauthDomain.TokenRecord, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.TokenRecord), args.Error(1)
}

// Refresh mocks the Refresh method of Provider.
func (m *MockProvider) Refresh(ctx context.Context, refreshToken string) (*oauthDomain.TokenRecord, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.TokenRecord), args.Error(1)
}

// MockTokenRepository is a mock implementation of TokenRepository for testing.
type MockTokenRepository struct {
	mock.Mock
}

// Get mocks the Get method of TokenRepository.
func (m *MockTokenRepository) Get(ctx context.Context) (*oauthDomain.TokenRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.TokenRecord), args.Error(1)
}

// Save mocks the Save method of TokenRepository.
func (m *MockTokenRepository) Save(ctx context.Context, record *oauthDomain.TokenRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
