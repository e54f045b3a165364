// Package mocks provides mock implementations for testing submissions HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	submissionsDomain "github.com/lovelifenow/admin-api/internal/submissions/domain"
)

// MockSubmissionUseCase is a mock implementation of SubmissionUseCase for testing.
type MockSubmissionUseCase struct {
	mock.Mock
}

// List mocks the List method of SubmissionUseCase.
func (m *MockSubmissionUseCase) List(
	ctx context.Context,
	formType submissionsDomain.FormType,
	take, skip int,
) (*submissionsDomain.Page, error) {
	args := m.Called(ctx, formType, take, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*submissionsDomain.Page), args.Error(1)
}

// Get mocks the Get method of SubmissionUseCase.
func (m *MockSubmissionUseCase) Get(
	ctx context.Context,
	formType submissionsDomain.FormType,
	id int64,
) (*submissionsDomain.Submission, error) {
	args := m.Called(ctx, formType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*submissionsDomain.Submission), args.Error(1)
}

// UpdateStatus mocks the UpdateStatus method of SubmissionUseCase.
func (m *MockSubmissionUseCase) UpdateStatus(
	ctx context.Context,
	formType submissionsDomain.FormType,
	id int64,
	patch *submissionsDomain.StatusPatch,
) (*submissionsDomain.Status, error) {
	args := m.Called(ctx, formType, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*submissionsDomain.Status), args.Error(1)
}

// AssignGroup mocks the AssignGroup method of SubmissionUseCase.
func (m *MockSubmissionUseCase) AssignGroup(ctx context.Context, constituentID int64, formName string) (int64, error) {
	args := m.Called(ctx, constituentID, formName)
	return args.Get(0).(int64), args.Error(1)
}
