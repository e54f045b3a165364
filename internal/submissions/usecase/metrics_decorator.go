package usecase

import (
	"context"
	"time"

	"github.com/lovelifenow/admin-api/internal/metrics"
	submissionsDomain "github.com/lovelifenow/admin-api/internal/submissions/domain"
)

// submissionUseCaseWithMetrics decorates SubmissionUseCase with metrics instrumentation.
type submissionUseCaseWithMetrics struct {
	next    SubmissionUseCase
	metrics metrics.BusinessMetrics
}

// NewSubmissionUseCaseWithMetrics wraps a SubmissionUseCase with metrics recording.
func NewSubmissionUseCaseWithMetrics(useCase SubmissionUseCase, m metrics.BusinessMetrics) SubmissionUseCase {
	return &submissionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// List records metrics for submission listing operations.
func (s *submissionUseCaseWithMetrics) List(
	ctx context.Context,
	formType submissionsDomain.FormType,
	take, skip int,
) (*submissionsDomain.Page, error) {
	start := time.Now()
	page, err := s.next.List(ctx, formType, take, skip)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "submissions", "list_submissions", status)
	s.metrics.RecordDuration(ctx, "submissions", "list_submissions", time.Since(start), status)

	return page, err
}

// Get records metrics for single submission retrieval operations.
func (s *submissionUseCaseWithMetrics) Get(
	ctx context.Context,
	formType submissionsDomain.FormType,
	id int64,
) (*submissionsDomain.Submission, error) {
	start := time.Now()
	submission, err := s.next.Get(ctx, formType, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "submissions", "get_submission", status)
	s.metrics.RecordDuration(ctx, "submissions", "get_submission", time.Since(start), status)

	return submission, err
}

// UpdateStatus records metrics for submission status updates.
func (s *submissionUseCaseWithMetrics) UpdateStatus(
	ctx context.Context,
	formType submissionsDomain.FormType,
	id int64,
	patch *submissionsDomain.StatusPatch,
) (*submissionsDomain.Status, error) {
	start := time.Now()
	result, err := s.next.UpdateStatus(ctx, formType, id, patch)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "submissions", "update_status", status)
	s.metrics.RecordDuration(ctx, "submissions", "update_status", time.Since(start), status)

	return result, err
}

// AssignGroup records metrics for constituent group assignments.
func (s *submissionUseCaseWithMetrics) AssignGroup(
	ctx context.Context,
	constituentID int64,
	formName string,
) (int64, error) {
	start := time.Now()
	groupID, err := s.next.AssignGroup(ctx, constituentID, formName)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "submissions", "assign_group", status)
	s.metrics.RecordDuration(ctx, "submissions", "assign_group", time.Since(start), status)

	return groupID, err
}
