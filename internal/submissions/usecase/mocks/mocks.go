// Package mocks provides mock implementations for testing the submissions use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lovelifenow/admin-api/internal/crm"
	submissionsDomain "github.com/lovelifenow/admin-api/internal/submissions/domain"
)

// MockCRMClient is a mock implementation of CRMClient for testing.
type MockCRMClient struct {
	mock.Mock
}

// ListInteractions mocks the ListInteractions method of CRMClient.
func (m *MockCRMClient) ListInteractions(ctx context.Context, params crm.ListParams) (*crm.InteractionPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.InteractionPage), args.Error(1)
}

// GetInteraction mocks the GetInteraction method of CRMClient.
func (m *MockCRMClient) GetInteraction(ctx context.Context, id int64) (*crm.Interaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Interaction), args.Error(1)
}

// GetConstituent mocks the GetConstituent method of CRMClient.
func (m *MockCRMClient) GetConstituent(ctx context.Context, id int64) (*crm.Constituent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Constituent), args.Error(1)
}

// AssignToGroup mocks the AssignToGroup method of CRMClient.
func (m *MockCRMClient) AssignToGroup(ctx context.Context, constituentID, groupID int64, accessToken string) error {
	args := m.Called(ctx, constituentID, groupID, accessToken)
	return args.Error(0)
}

// MockStatusRepository is a mock implementation of StatusRepository for testing.
type MockStatusRepository struct {
	mock.Mock
}

// Get mocks the Get method of StatusRepository.
func (m *MockStatusRepository) Get(
	ctx context.Context,
	formType submissionsDomain.FormType,
	submissionID int64,
) (*submissionsDomain.Status, error) {
	args := m.Called(ctx, formType, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*submissionsDomain.Status), args.Error(1)
}

// ListByIDs mocks the ListByIDs method of StatusRepository.
func (m *MockStatusRepository) ListByIDs(
	ctx context.Context,
	formType submissionsDomain.FormType,
	submissionIDs []int64,
) (map[int64]*submissionsDomain.Status, error) {
	args := m.Called(ctx, formType, submissionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*submissionsDomain.Status), args.Error(1)
}

// Upsert mocks the Upsert method of StatusRepository.
func (m *MockStatusRepository) Upsert(ctx context.Context, status *submissionsDomain.Status) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

// MockAccessTokens is a mock implementation of AccessTokens for testing.
type MockAccessTokens struct {
	mock.Mock
}

// ValidAccessToken mocks the ValidAccessToken method of AccessTokens.
func (m *MockAccessTokens) ValidAccessToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
