package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mes-workflow-api/internal/models"
	"github.com/noah-isme/mes-workflow-api/internal/repository"
	appErrors "github.com/noah-isme/mes-workflow-api/pkg/errors"
	"github.com/noah-isme/mes-workflow-api/pkg/export"
)

type mockInspectionRecorder struct {
	err      error
	recorded []*models.QCInspection
}

func (m *mockInspectionRecorder) RecordInspection(ctx context.Context, inspection *models.QCInspection) error {
	if m.err != nil {
		return m.err
	}
	inspection.ID = "q1"
	m.recorded = append(m.recorded, inspection)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func TestQCServiceRecordSuccess(t *testing.T) {
	recorder := &mockInspectionRecorder{}
	audits := &mockAuditor{}
	svc := NewQCService(recorder, nil, audits, nil, NewValidator(), nil)

	notes := "surface scratches"
	inspection, err := svc.Record(context.Background(), "o1", "qc-1", models.RecordInspectionRequest{
		Passed: boolPtr(false),
		Notes:  &notes,
	}, models.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "q1", inspection.ID)
	assert.False(t, inspection.Passed)
	require.Len(t, recorder.recorded, 1)
	require.Len(t, audits.logs, 1)
	assert.Equal(t, models.AuditActionQCRecord, audits.logs[0].Action)
}

func TestQCServiceRecordMissingVerdict(t *testing.T) {
	svc := NewQCService(&mockInspectionRecorder{}, nil, nil, nil, NewValidator(), nil)

	_, err := svc.Record(context.Background(), "o1", "qc-1", models.RecordInspectionRequest{}, models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.NotEmpty(t, appErr.Fields)
	assert.Equal(t, "passed", appErr.Fields[0].Path)
}

func TestQCServiceRecordUnknownOrder(t *testing.T) {
	svc := NewQCService(&mockInspectionRecorder{err: sql.ErrNoRows}, nil, nil, nil, NewValidator(), nil)

	_, err := svc.Record(context.Background(), "ghost", "qc-1", models.RecordInspectionRequest{Passed: boolPtr(true)}, models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "invalid reference number", appErr.Message)
}

func TestQCServiceRecordDuplicateApproval(t *testing.T) {
	svc := NewQCService(&mockInspectionRecorder{err: repository.ErrDuplicateApproval}, nil, nil, nil, NewValidator(), nil)

	_, err := svc.Record(context.Background(), "o1", "qc-1", models.RecordInspectionRequest{Passed: boolPtr(true)}, models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, appErrors.ErrAlreadyApproved.Code, appErr.Code)
}

func TestQCServiceExportCompletedOrder(t *testing.T) {
	notes := "final check"
	orders := &mockOrderRepo{
		detail: &models.OrderDetail{
			ProductionOrder: models.ProductionOrder{
				ID:          "o1",
				ReferenceNo: "PO1700000000000",
				ModelName:   "Widget X",
				Quantity:    40,
				Status:      models.OrderStatusCompleted,
				CreatedAt:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			},
			CreatorName:  "Operator",
			CreatorEmail: "op@example.com",
		},
		inspections: []models.QCInspection{
			{ID: "q1", ProductionID: "o1", Passed: false, Notes: &notes, InspectorName: "QC One", InspectorEmail: "qc1@example.com"},
			{ID: "q2", ProductionID: "o1", Passed: true, InspectorName: "QC One", InspectorEmail: "qc1@example.com"},
		},
	}
	svc := NewQCService(nil, orders, nil, export.NewQCReportRenderer(), NewValidator(), nil)

	report, err := svc.Export(context.Background(), "PO1700000000000")
	require.NoError(t, err)
	assert.Equal(t, "qc_report_PO1700000000000.pdf", report.Filename)
	require.NotEmpty(t, report.Content)
	assert.Equal(t, "%PDF", string(report.Content[:4]))
}

func TestQCServiceExportUnknownOrComplete(t *testing.T) {
	svc := NewQCService(nil, &mockOrderRepo{}, nil, export.NewQCReportRenderer(), NewValidator(), nil)

	_, err := svc.Export(context.Background(), "PO404")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "order not found", appErr.Message)
}
