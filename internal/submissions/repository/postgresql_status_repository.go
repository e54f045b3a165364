// Package repository implements submission status persistence.
package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/lovelifenow/admin-api/internal/database"
	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	submissionsDomain "github.com/lovelifenow/admin-api/internal/submissions/domain"
)

// PostgreSQLStatusRepository implements status persistence for PostgreSQL.
type PostgreSQLStatusRepository struct {
	db *sql.DB
}

// NewPostgreSQLStatusRepository creates a new PostgreSQL status repository.
func NewPostgreSQLStatusRepository(db *sql.DB) *PostgreSQLStatusRepository {
	return &PostgreSQLStatusRepository{db: db}
}

// Get retrieves the status row for a submission.
func (r *PostgreSQLStatusRepository) Get(
	ctx context.Context,
	formType submissionsDomain.FormType,
	submissionID int64,
) (*submissionsDomain.Status, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT form_type, submission_id, is_read, is_archived, is_deleted, notes, updated_at
			  FROM submission_status
			  WHERE form_type = $1 AND submission_id = $2`

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
// submission ID. IDs without a row are simply absent from the result.
func (r *PostgreSQLStatusRepository) ListByIDs(
	ctx context.Context,
	formType submissionsDomain.FormType,
	submissionIDs []int64,
) (map[int64]*submissionsDomain.Status, error) {
	statuses := make(map[int64]*submissionsDomain.Status)
	if len(submissionIDs) == 0 {
		return statuses, nil
	}

	querier := database.GetTx(ctx, r.db)

	query := `SELECT form_type, submission_id, is_read, is_archived, is_deleted, notes, updated_at
			  FROM submission_status
			  WHERE form_type = $1 AND submission_id = ANY($2)`

	rows, err := querier.QueryContext(ctx, query, formType, pq.Array(submissionIDs))
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
func (r *PostgreSQLStatusRepository) Upsert(ctx context.Context, status *submissionsDomain.Status) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO submission_status (form_type, submission_id, is_read, is_archived, is_deleted, notes, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (form_type, submission_id) DO UPDATE SET
				  is_read = EXCLUDED.is_read,
				  is_archived = EXCLUDED.is_archived,
				  is_deleted = EXCLUDED.is_deleted,
				  notes = EXCLUDED.notes,
				  updated_at = EXCLUDED.updated_at`

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
