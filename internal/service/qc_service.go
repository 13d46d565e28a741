package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mes-workflow-api/internal/models"
	"github.com/noah-isme/mes-workflow-api/internal/repository"
	appErrors "github.com/noah-isme/mes-workflow-api/pkg/errors"
	"github.com/noah-isme/mes-workflow-api/pkg/export"
)

type inspectionRecorder interface {
	RecordInspection(ctx context.Context, inspection *models.QCInspection) error
}

type orderDetailReader interface {
	DetailByReference(ctx context.Context, referenceNo string) (*models.OrderDetail, error)
	InspectionsForOrder(ctx context.Context, orderID string) ([]models.QCInspection, error)
}

type reportRenderer interface {
	Render(order export.QCReportOrder, inspections []export.QCReportInspection) ([]byte, error)
}

// QCService records inspections and exports inspection reports.
type QCService struct {
	inspections inspectionRecorder
	orders      orderDetailReader
	audits      orderAuditor
	renderer    reportRenderer
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewQCService constructs a QCService.
func NewQCService(inspections inspectionRecorder, orders orderDetailReader, audits orderAuditor, renderer reportRenderer, validate *validator.Validate, logger *zap.Logger) *QCService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &QCService{
		inspections: inspections,
		orders:      orders,
		audits:      audits,
		renderer:    renderer,
		validator:   validate,
		logger:      logger,
	}
}

// Record appends an inspection for the order. A passing inspection completes
// the order in the same transaction; a second passing inspection is rejected
// with a conflict and nothing is inserted. Failed inspections always append.
func (s *QCService) Record(ctx context.Context, orderID, inspectorID string, req models.RecordInspectionRequest, meta models.RequestMeta) (*models.QCInspection, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid inspection payload")
	}

	inspection := &models.QCInspection{
		ProductionID: orderID,
		InspectorID:  inspectorID,
		Passed:       *req.Passed,
		Notes:        req.Notes,
	}

	if err := s.inspections.RecordInspection(ctx, inspection); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.ErrInvalidReference
		case errors.Is(err, repository.ErrDuplicateApproval):
			return nil, appErrors.ErrAlreadyApproved
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record inspection")
		}
	}

	s.audit(ctx, inspectorID, orderID, inspection, meta)

	return inspection, nil
}

// ExportedReport is a rendered report plus its download filename.
type ExportedReport struct {
	Filename string
	Content  []byte
}

// Export renders the QC report for a COMPLETED order. Orders in any other
// state have no exportable report.
func (s *QCService) Export(ctx context.Context, referenceNo string) (*ExportedReport, error) {
	detail, err := s.orders.DetailByReference(ctx, referenceNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "order not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load order")
	}

	inspections, err := s.orders.InspectionsForOrder(ctx, detail.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inspections")
	}

	entries := make([]export.QCReportInspection, 0, len(inspections))
	for _, qc := range inspections {
		notes := ""
		if qc.Notes != nil {
			notes = *qc.Notes
		}
		entries = append(entries, export.QCReportInspection{
			InspectorName: qc.InspectorName,
			InspectorMail: qc.InspectorEmail,
			Passed:        qc.Passed,
			Notes:         notes,
			CreatedAt:     qc.CreatedAt,
		})
	}

	content, err := s.renderer.Render(export.QCReportOrder{
		ReferenceNo: detail.ReferenceNo,
		ModelName:   detail.ModelName,
		Quantity:    detail.Quantity,
		Status:      string(detail.Status),
		CreatorName: detail.CreatorName,
		CreatorMail: detail.CreatorEmail,
		CreatedAt:   detail.CreatedAt,
	}, entries)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	return &ExportedReport{
		Filename: fmt.Sprintf("qc_report_%s.pdf", detail.ReferenceNo),
		Content:  content,
	}, nil
}

func (s *QCService) audit(ctx context.Context, inspectorID, orderID string, inspection *models.QCInspection, meta models.RequestMeta) {
	if s.audits == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"productionId": orderID,
		"passed":       inspection.Passed,
	})
	if err := s.audits.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &inspectorID,
		Action:     models.AuditActionQCRecord,
		Resource:   "qc_inspections",
		ResourceID: &inspection.ID,
		NewValues:  payload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record inspection audit log", zap.Error(err))
	}
}
