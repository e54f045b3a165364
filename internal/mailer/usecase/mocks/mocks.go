// Package mocks provides mock implementations for testing the mail use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lovelifenow/admin-api/internal/crm"
	mailerService "github.com/lovelifenow/admin-api/internal/mailer/service"
)

// MockMailer is a mock implementation of Mailer for testing.
type MockMailer struct {
	mock.Mock
}

// Send mocks the Send method of Mailer.
func (m *MockMailer) Send(ctx context.Context, msg *mailerService.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

// MockCRMReader is a mock implementation of CRMReader for testing.
type MockCRMReader struct {
	mock.Mock
}

// GetInteraction mocks the GetInteraction method of CRMReader.
func (m *MockCRMReader) GetInteraction(ctx context.Context, id int64) (*crm.Interaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Interaction), args.Error(1)
}

// GetConstituent mocks the GetConstituent method of CRMReader.
func (m *MockCRMReader) GetConstituent(ctx context.Context, id int64) (*crm.Constituent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Constituent), args.Error(1)
}
