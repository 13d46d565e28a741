package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mes-workflow-api/internal/models"
)

func TestRecordInspectionFailedVerdict(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQCRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM production_orders WHERE id = $1 FOR UPDATE")).
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectExec("INSERT INTO qc_inspections").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	inspection := &models.QCInspection{ProductionID: "o1", InspectorID: "qc-1", Passed: false}
	require.NoError(t, repo.RecordInspection(context.Background(), inspection))
	assert.NotEmpty(t, inspection.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordInspectionPassingCompletesOrder(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQCRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM production_orders").
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM qc_inspections WHERE production_id = $1 AND passed = TRUE)")).
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO qc_inspections").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE production_orders SET status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("o1", models.OrderStatusCompleted, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inspection := &models.QCInspection{ProductionID: "o1", InspectorID: "qc-1", Passed: true}
	require.NoError(t, repo.RecordInspection(context.Background(), inspection))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordInspectionDuplicateApproval(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQCRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM production_orders").
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	inspection := &models.QCInspection{ProductionID: "o1", InspectorID: "qc-1", Passed: true}
	err := repo.RecordInspection(context.Background(), inspection)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateApproval))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordInspectionUnknownOrder(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQCRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM production_orders").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	inspection := &models.QCInspection{ProductionID: "ghost", InspectorID: "qc-1", Passed: true}
	err := repo.RecordInspection(context.Background(), inspection)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQCCountSince(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQCRepository(db)

	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM qc_inspections WHERE passed = $1 AND created_at > $2")).
		WithArgs(true, since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountSince(context.Background(), true, since)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
