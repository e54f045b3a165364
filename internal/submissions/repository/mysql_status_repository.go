package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lovelifenow/admin-api/internal/database"
	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	submissionsDomain "github.com/lovelifenow/admin-api/internal/submissions/domain"
)

// MySQLStatusRepository implements status persistence for MySQL.
type MySQLStatusRepository struct {
	db *sql.DB
}

// NewMySQLStatusRepository creates a new MySQL status repository.
func NewMySQLStatusRepository(db *sql.DB) *MySQLStatusRepository {
	return &MySQLStatusRepository{db: db}
}

// Get retrieves the status row for a submission.
func (r *MySQLStatusRepository) Get(
	ctx context.Context,
	formType submissionsDomain.FormType,
	submissionID int64,
) (*submissionsDomain.Status, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT form_type, submission_id, is_read, is_archived, is_deleted, notes, updated_at
			  FROM submission_status
			  WHERE form_type = ? AND submission_id = ?`

	var status submissionsDomain.Status
	err := querier.QueryRowContext(ctx, query, formType, submissionID).Scan(
		&status.FormType,
		&status.SubmissionID,
		&status.IsRead,
		&status.IsArchived,
		&status.IsDeleted,
		&status.Notes,
		&status.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "submission status not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get submission status")
	}

	return &status, nil
}

// ListByIDs retrieves the status rows for a set of submissions, keyed by
// submission ID.
func (r *MySQLStatusRepository) ListByIDs(
	ctx context.Context,
	formType submissionsDomain.FormType,
	submissionIDs []int64,
) (map[int64]*submissionsDomain.Status, error) {
	statuses := make(map[int64]*submissionsDomain.Status)
	if len(submissionIDs) == 0 {
		return statuses, nil
	}

	querier := database.GetTx(ctx, r.db)

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(submissionIDs)), ",")
	query := `SELECT form_type, submission_id, is_read, is_archived, is_deleted, notes, updated_at
			  FROM submission_status
			  WHERE form_type = ? AND submission_id IN (` + placeholders + `)`

	args := make([]any, 0, len(submissionIDs)+1)
	args = append(args, formType)
	for _, id := range submissionIDs {
		args = append(args, id)
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list submission statuses")
	}
	defer rows.Close()

	for rows.Next() {
		var status submissionsDomain.Status
		err := rows.Scan(
			&status.FormType,
			&status.SubmissionID,
			&status.IsRead,
			&status.IsArchived,
			&status.IsDeleted,
			&status.Notes,
			&status.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan submission status")
		}
		statuses[status.SubmissionID] = &status
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate submission statuses")
	}

	return statuses, nil
}

// Upsert inserts or replaces the status row for a submission.
func (r *MySQLStatusRepository) Upsert(ctx context.Context, status *submissionsDomain.Status) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO submission_status (form_type, submission_id, is_read, is_archived, is_deleted, notes, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
				  is_read = VALUES(is_read),
				  is_archived = VALUES(is_archived),
				  is_deleted = VALUES(is_deleted),
				  notes = VALUES(notes),
				  updated_at = VALUES(updated_at)`

	_, err := querier.ExecContext(
		ctx,
		query,
		status.FormType,
		status.SubmissionID,
		status.IsRead,
		status.IsArchived,
		status.IsDeleted,
		status.Notes,
		status.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert submission status")
	}

	return nil
}
