// Package mocks provides mock implementations for testing mail HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	mailerUseCase "github.com/lovelifenow/admin-api/internal/mailer/usecase"
)

// MockMailUseCase is a mock implementation of MailUseCase for testing.
type MockMailUseCase struct {
	mock.Mock
}

// SendReply mocks the SendReply method of MailUseCase.
func (m *MockMailUseCase) SendReply(ctx context.Context, to, subject, message string) (string, error) {
	args := m.Called(ctx, to, subject, message)
	return args.String(0), args.Error(1)
}

// NotifySubmission mocks the NotifySubmission method of MailUseCase.
func (m *MockMailUseCase) NotifySubmission(ctx context.Context, submissionID int64, formType string) (string, string, error) {
	args := m.Called(ctx, submissionID, formType)
	return args.String(0), args.String(1), args.Error(2)
}

// NotifyForm mocks the NotifyForm method of MailUseCase.
func (m *MockMailUseCase) NotifyForm(ctx context.Context, payload *mailerUseCase.FormNotifyPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
