package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lovelifenow/admin-api/internal/testutil"
)

func TestNewTxManager(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	txManager := NewTxManager(db)
	assert.NotNil(t, txManager)
	assert.IsType(t, &sqlTxManager{}, txManager)
}

func TestWithTx_Success(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	txManager := NewTxManager(db)
	ctx := context.Background()

	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		// Verify transaction is in context
		tx := ctx.Value(txKey{})
		assert.NotNil(t, tx)
		assert.IsType(t, &sql.Tx{}, tx)
		return nil
	})

	assert.NoError(t, err)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	txManager := NewTxManager(db)
	ctx := context.Background()

	testError := assert.AnError
	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		// Write inside the transaction, then fail so it rolls back
		tx := GetTx(ctx, db)
		_, execErr := tx.ExecContext(ctx,
			`INSERT INTO submission_status (form_type, submission_id, is_read, is_archived, is_deleted, notes, updated_at)
			 VALUES ('contact', 99, TRUE, FALSE, FALSE, '', NOW())`,
		)
		assert.NoError(t, execErr)
		return testError
	})

	assert.Equal(t, testError, err)
	assert.Equal(t, 0, testutil.CountStatusRows(t, db, "postgres", "contact"), "rollback should discard the insert")
}

func TestGetTx_WithTransaction(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	txManager := NewTxManager(db)
	ctx := context.Background()

	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := GetTx(ctx, db)
		assert.NotNil(t, querier)
		assert.IsType(t, &sql.Tx{}, querier)
		return nil
	})

	assert.NoError(t, err)
}

func TestGetTx_WithoutTransaction(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	ctx := context.Background()
	querier := GetTx(ctx, db)

	assert.NotNil(t, querier)
	assert.Equal(t, db, querier)
}
