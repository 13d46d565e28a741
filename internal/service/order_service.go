package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mes-workflow-api/internal/models"
	appErrors "github.com/noah-isme/mes-workflow-api/pkg/errors"
)

type orderRepository interface {
	Create(ctx context.Context, order *models.ProductionOrder) error
	ReferenceExists(ctx context.Context, referenceNo string) (bool, error)
	List(ctx context.Context) ([]models.OrderSummary, error)
	DetailByReference(ctx context.Context, referenceNo string) (*models.OrderDetail, error)
	InspectionsForOrder(ctx context.Context, orderID string) ([]models.QCInspection, error)
	UpdateStatusByReference(ctx context.Context, referenceNo string, status models.OrderStatus) (int64, error)
	DeletePendingByReference(ctx context.Context, referenceNo string) (int64, error)
}

type orderAuditor interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

const referenceAttempts = 5

// OrderService owns the production-order lifecycle.
type OrderService struct {
	repo      orderRepository
	audits    orderAuditor
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService constructs an OrderService.
func NewOrderService(repo orderRepository, audits orderAuditor, validate *validator.Validate, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &OrderService{repo: repo, audits: audits, validator: validate, logger: logger, now: time.Now}
}

// Create registers a new order in PENDING with a generated reference number.
// References derive from the creation instant but are verified against the
// store rather than trusting millisecond granularity alone.
func (s *OrderService) Create(ctx context.Context, req models.CreateOrderRequest, creatorID string, meta models.RequestMeta) (*models.ProductionOrder, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid order payload")
	}

	referenceNo, err := s.generateReference(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.ProductionOrder{
		ReferenceNo: referenceNo,
		ModelName:   req.ModelName,
		Quantity:    req.Quantity,
		Status:      models.OrderStatusPending,
		CreatedBy:   creatorID,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create order")
	}

	s.audit(ctx, creatorID, models.AuditActionOrderCreate, order.ID, map[string]interface{}{
		"referenceNo": order.ReferenceNo,
		"modelName":   order.ModelName,
		"quantity":    order.Quantity,
	}, meta)

	return order, nil
}

// List returns every order with creator identity and earliest inspection
// summary.
func (s *OrderService) List(ctx context.Context) ([]models.OrderSummary, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list orders")
	}
	return orders, nil
}

// Detail returns the full view of a COMPLETED order, inspection history
// earliest first. Orders in any other state have no detail view.
func (s *OrderService) Detail(ctx context.Context, referenceNo string) (*models.OrderDetail, error) {
	detail, err := s.repo.DetailByReference(ctx, referenceNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "order not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load order")
	}

	inspections, err := s.repo.InspectionsForOrder(ctx, detail.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inspections")
	}
	detail.Inspections = inspections
	return detail, nil
}

// UpdateStatus applies a manual transition. Any of the four states is legal
// from any other, backward moves included; only the reference must exist.
func (s *OrderService) UpdateStatus(ctx context.Context, referenceNo string, req models.UpdateOrderStatusRequest, actorID string, meta models.RequestMeta) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation(err, "invalid status payload")
	}

	affected, err := s.repo.UpdateStatusByReference(ctx, referenceNo, req.Status)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update order status")
	}
	if affected == 0 {
		return appErrors.ErrInvalidReference
	}

	s.audit(ctx, actorID, models.AuditActionOrderStatus, referenceNo, map[string]interface{}{
		"referenceNo": referenceNo,
		"status":      req.Status,
	}, meta)

	return nil
}

// Delete removes an order while it is still PENDING. A non-PENDING order and
// an unknown reference produce the same error on purpose.
func (s *OrderService) Delete(ctx context.Context, referenceNo string, actorID string, meta models.RequestMeta) error {
	affected, err := s.repo.DeletePendingByReference(ctx, referenceNo)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete order")
	}
	if affected == 0 {
		return appErrors.ErrInvalidReference
	}

	s.audit(ctx, actorID, models.AuditActionOrderDelete, referenceNo, map[string]interface{}{
		"referenceNo": referenceNo,
	}, meta)

	return nil
}

func (s *OrderService) generateReference(ctx context.Context) (string, error) {
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		candidate := fmt.Sprintf("PO%d", s.now().UnixMilli()+int64(attempt))
		exists, err := s.repo.ReferenceExists(ctx, candidate)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify reference number")
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrInternal, "could not allocate a unique reference number")
}

func (s *OrderService) audit(ctx context.Context, actorID, action, resourceID string, values map[string]interface{}, meta models.RequestMeta) {
	if s.audits == nil {
		return
	}
	payload, _ := json.Marshal(values)
	if err := s.audits.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     action,
		Resource:   "production_orders",
		ResourceID: &resourceID,
		NewValues:  payload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record order audit log", zap.Error(err))
	}
}
