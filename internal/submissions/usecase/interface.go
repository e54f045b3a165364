// Package usecase implements the submissions proxy, enrichment, and status flows.
package usecase

import (
	"context"

	"github.com/lovelifenow/admin-api/internal/crm"
	submissionsDomain "github.com/lovelifenow/admin-api/internal/submissions/domain"
)

// CRMClient is the slice of the Bloomerang client the submissions flows use.
type CRMClient interface {
	ListInteractions(ctx context.Context, params crm.ListParams) (*crm.InteractionPage, error)
	GetInteraction(ctx context.Context, id int64) (*crm.Interaction, error)
	GetConstituent(ctx context.Context, id int64) (*crm.Constituent, error)
	AssignToGroup(ctx context.Context, constituentID, groupID int64, accessToken string) error
}

// AccessTokens hands out valid OAuth access tokens for privileged CRM calls.
type AccessTokens interface {
	ValidAccessToken(ctx context.Context) (string, error)
}

// StatusRepository persists the dashboard-local submission status rows.
type StatusRepository interface {
	Get(ctx context.Context, formType submissionsDomain.FormType, submissionID int64) (*submissionsDomain.Status, error)
	ListByIDs(ctx context.Context, formType submissionsDomain.FormType, submissionIDs []int64) (map[int64]*submissionsDomain.Status, error)
	Upsert(ctx context.Context, status *submissionsDomain.Status) error
}

// SubmissionUseCase serves the dashboard's submission views and actions.
type SubmissionUseCase interface {
	// List fetches one page of submissions for a form, enriched with
	// constituent details and local status flags.
	List(ctx context.Context, formType submissionsDomain.FormType, take, skip int) (*submissionsDomain.Page, error)

	// Get fetches a single submission with enrichment.
	Get(ctx context.Context, formType submissionsDomain.FormType, id int64) (*submissionsDomain.Submission, error)

	// UpdateStatus applies a partial status update, creating the row on
	// first touch.
	UpdateStatus(ctx context.Context, formType submissionsDomain.FormType, id int64, patch *submissionsDomain.StatusPatch) (*submissionsDomain.Status, error)

	// AssignGroup adds a constituent to the Bloomerang group for a form,
	// returning the resolved group ID.
	AssignGroup(ctx context.Context, constituentID int64, formName string) (int64, error)
}
