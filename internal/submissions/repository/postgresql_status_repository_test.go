package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	submissionsDomain "github.com/lovelifenow/admin-api/internal/submissions/domain"
)

var statusColumns = []string{
	"form_type", "submission_id", "is_read", "is_archived", "is_deleted", "notes", "updated_at",
}

func TestPostgreSQLStatusRepository_Get(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT form_type, submission_id, is_read, is_archived, is_deleted, notes, updated_at`).
			WithArgs(submissionsDomain.FormContact, int64(42)).
			WillReturnRows(sqlmock.NewRows(statusColumns).
				AddRow("contact", int64(42), true, false, false, "called back", now))

		repo := NewPostgreSQLStatusRepository(db)
		status, err := repo.Get(ctx, submissionsDomain.FormContact, 42)
		require.NoError(t, err)

		assert.Equal(t, submissionsDomain.FormContact, status.FormType)
		assert.Equal(t, int64(42), status.SubmissionID)
		assert.True(t, status.IsRead)
		assert.False(t, status.IsArchived)
		assert.Equal(t, "called back", status.Notes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT form_type`).
			WithArgs(submissionsDomain.FormContact, int64(99)).
			WillReturnRows(sqlmock.NewRows(statusColumns))

		repo := NewPostgreSQLStatusRepository(db)
		status, err := repo.Get(ctx, submissionsDomain.FormContact, 99)

		assert.Nil(t, status)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestPostgreSQLStatusRepository_ListByIDs(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT form_type, submission_id`).
			WillReturnRows(sqlmock.NewRows(statusColumns).
				AddRow("contact", int64(1), true, false, false, "", now).
				AddRow("contact", int64(3), false, true, false, "spam", now))

		repo := NewPostgreSQLStatusRepository(db)
		statuses, err := repo.ListByIDs(ctx, submissionsDomain.FormContact, []int64{1, 2, 3})
		require.NoError(t, err)

		require.Len(t, statuses, 2)
		assert.True(t, statuses[1].IsRead)
		assert.True(t, statuses[3].IsArchived)
		assert.Nil(t, statuses[2])
	})

	t.Run("Success_EmptyIDsSkipsQuery", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLStatusRepository(db)
		statuses, err := repo.ListByIDs(ctx, submissionsDomain.FormContact, nil)

		require.NoError(t, err)
		assert.Empty(t, statuses)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLStatusRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		status := &submissionsDomain.Status{
			FormType:     submissionsDomain.FormVolunteer,
			SubmissionID: 7,
			IsRead:       true,
			Notes:        "scheduled orientation",
			UpdatedAt:    time.Now().UTC(),
		}

		mock.ExpectExec(`INSERT INTO submission_status`).
			WithArgs(
				status.FormType,
				status.SubmissionID,
				status.IsRead,
				status.IsArchived,
				status.IsDeleted,
				status.Notes,
				status.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLStatusRepository(db)
		require.NoError(t, repo.Upsert(ctx, status))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_ExecFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO submission_status`).
			WillReturnError(apperrors.New("connection reset"))

		repo := NewPostgreSQLStatusRepository(db)
		err = repo.Upsert(ctx, &submissionsDomain.Status{FormType: submissionsDomain.FormContact})
		assert.Error(t, err)
	})
}
