package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lovelifenow/admin-api/internal/crm"
	"github.com/lovelifenow/admin-api/internal/database"
	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	submissionsDomain "github.com/lovelifenow/admin-api/internal/submissions/domain"
)

// enrichmentLimit bounds the concurrent constituent lookups per request so a
// 50-row page does not open 50 connections to the CRM at once.
const enrichmentLimit = 8

// submissionUseCase implements SubmissionUseCase.
//
// Failure policy: the primary interactions call is fatal to the request.
// Constituent enrichment and status lookups are best effort; their failures
// degrade to a nil constituent or absent status, never a 500.
type submissionUseCase struct {
	crmClient  CRMClient
	statusRepo StatusRepository
	txManager  database.TxManager
	tokens     AccessTokens
	logger     *slog.Logger
}

// NewSubmissionUseCase creates a SubmissionUseCase with required dependencies.
func NewSubmissionUseCase(
	crmClient CRMClient,
	statusRepo StatusRepository,
	txManager database.TxManager,
	tokens AccessTokens,
	logger *slog.Logger,
) SubmissionUseCase {
	return &submissionUseCase{
		crmClient:  crmClient,
		statusRepo: statusRepo,
		txManager:  txManager,
		tokens:     tokens,
		logger:     logger,
	}
}

// List fetches one page of interactions for the form's channel and enriches
// each row concurrently.
func (u *submissionUseCase) List(
	ctx context.Context,
	formType submissionsDomain.FormType,
	take, skip int,
) (*submissionsDomain.Page, error) {
	page, err := u.crmClient.ListInteractions(ctx, crm.ListParams{
		ChannelID: formType.ChannelID(),
		Take:      take,
		Skip:      skip,
	})
	if err != nil {
		return nil, err
	}

	submissions := make([]*submissionsDomain.Submission, len(page.Results))

	group := new(errgroup.Group)
	group.SetLimit(enrichmentLimit)

	for i := range page.Results {
		interaction := &page.Results[i]
		submissions[i] = newSubmission(interaction)

		if interaction.AccountID == 0 {
			continue
		}

		index := i
		accountID := interaction.AccountID
		group.Go(func() error {
			submissions[index].Constituent = u.lookupConstituent(ctx, accountID)
			return nil
		})
	}

	// Workers never return errors; Wait is only the join point.
	_ = group.Wait()

	u.attachStatuses(ctx, formType, submissions)

	return &submissionsDomain.Page{
		FormType:    formType,
		Total:       page.Total,
		Submissions: submissions,
	}, nil
}

// Get fetches a single submission with constituent and status enrichment.
func (u *submissionUseCase) Get(
	ctx context.Context,
	formType submissionsDomain.FormType,
	id int64,
) (*submissionsDomain.Submission, error) {
	interaction, err := u.crmClient.GetInteraction(ctx, id)
	if err != nil {
		return nil, err
	}

	submission := newSubmission(interaction)
	if interaction.AccountID != 0 {
		submission.Constituent = u.lookupConstituent(ctx, interaction.AccountID)
	}

	status, err := u.statusRepo.Get(ctx, formType, id)
	switch {
	case err == nil:
		submission.Status = status
	case !apperrors.Is(err, apperrors.ErrNotFound):
		u.logger.Warn("status lookup failed", slog.Int64("submission_id", id), slog.String("error", err.Error()))
	}

	return submission, nil
}

// UpdateStatus merges a partial update into the status row inside a
// transaction, creating the row when the submission is touched for the
// first time.
func (u *submissionUseCase) UpdateStatus(
	ctx context.Context,
	formType submissionsDomain.FormType,
	id int64,
	patch *submissionsDomain.StatusPatch,
) (*submissionsDomain.Status, error) {
	if patch.Empty() {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "no status fields to update")
	}

	var result *submissionsDomain.Status

	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		status, err := u.statusRepo.Get(ctx, formType, id)
		if apperrors.Is(err, apperrors.ErrNotFound) {
			status = &submissionsDomain.Status{FormType: formType, SubmissionID: id}
		} else if err != nil {
			return err
		}

		if patch.IsRead != nil {
			status.IsRead = *patch.IsRead
		}
		if patch.IsArchived != nil {
			status.IsArchived = *patch.IsArchived
		}
		if patch.IsDeleted != nil {
			status.IsDeleted = *patch.IsDeleted
		}
		if patch.Notes != nil {
			status.Notes = *patch.Notes
		}
		status.UpdatedAt = time.Now().UTC()

		if err := u.statusRepo.Upsert(ctx, status); err != nil {
			return err
		}

		result = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AssignGroup resolves the form's group and performs the privileged CRM call
// with a valid OAuth access token.
func (u *submissionUseCase) AssignGroup(ctx context.Context, constituentID int64, formName string) (int64, error) {
	groupID, err := submissionsDomain.ResolveGroup(formName)
	if err != nil {
		return 0, err
	}

	accessToken, err := u.tokens.ValidAccessToken(ctx)
	if err != nil {
		return 0, err
	}

	if err := u.crmClient.AssignToGroup(ctx, constituentID, groupID, accessToken); err != nil {
		return 0, err
	}

	u.logger.Info("constituent assigned to group",
		slog.Int64("constituent_id", constituentID),
		slog.Int64("group_id", groupID),
		slog.String("form_name", formName))

	return groupID, nil
}

// lookupConstituent fetches a constituent, degrading to nil on failure.
func (u *submissionUseCase) lookupConstituent(ctx context.Context, accountID int64) *submissionsDomain.ConstituentSummary {
	constituent, err := u.crmClient.GetConstituent(ctx, accountID)
	if err != nil {
		u.logger.Warn("constituent enrichment failed",
			slog.Int64("account_id", accountID),
			slog.String("error", err.Error()))
		return nil
	}

	summary := &submissionsDomain.ConstituentSummary{
		ID:   constituent.ID,
		Name: strings.TrimSpace(constituent.FirstName + " " + constituent.LastName),
	}
	if constituent.PrimaryEmail.Value != "" {
		summary.Email = &constituent.PrimaryEmail.Value
	}
	if constituent.PrimaryPhone.Number != "" {
		summary.Phone = &constituent.PrimaryPhone.Number
	}
	return summary
}

// attachStatuses merges stored status rows into the page, best effort.
func (u *submissionUseCase) attachStatuses(
	ctx context.Context,
	formType submissionsDomain.FormType,
	submissions []*submissionsDomain.Submission,
) {
	ids := make([]int64, len(submissions))
	for i, submission := range submissions {
		ids[i] = submission.ID
	}

	statuses, err := u.statusRepo.ListByIDs(ctx, formType, ids)
	if err != nil {
		u.logger.Warn("status merge failed", slog.String("error", err.Error()))
		return
	}

	for _, submission := range submissions {
		if status, ok := statuses[submission.ID]; ok {
			submission.Status = status
		}
	}
}

// newSubmission converts a CRM interaction into a dashboard row.
func newSubmission(interaction *crm.Interaction) *submissionsDomain.Submission {
	subject := interaction.Subject
	if subject == "" {
		subject = "No Subject"
	}

	return &submissionsDomain.Submission{
		ID:           interaction.ID,
		Date:         interaction.Date,
		Subject:      subject,
		Note:         interaction.Note,
		Channel:      interaction.Channel,
		CustomFields: interaction.CustomFields,
	}
}
