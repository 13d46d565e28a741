package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mes-workflow-api/internal/dto"
	"github.com/noah-isme/mes-workflow-api/internal/models"
	appErrors "github.com/noah-isme/mes-workflow-api/pkg/errors"
)

type orderCounter interface {
	CountByStatusSince(ctx context.Context, status models.OrderStatus, since time.Time) (int, error)
}

type inspectionCounter interface {
	CountSince(ctx context.Context, passed bool, since time.Time) (int, error)
}

type roleCounter interface {
	CountByRole(ctx context.Context, role models.UserRole) (int, error)
}

const (
	cacheKeyDashboardProduction  = "dash:production"
	cacheKeyDashboardInspections = "dash:inspections"
	cacheKeyDashboardUsers       = "dash:users"
)

// DashboardService computes monthly rollups for the landing dashboards.
// Results are cached; writes elsewhere invalidate with the dash: prefix.
type DashboardService struct {
	orders      orderCounter
	inspections inspectionCounter
	users       roleCounter
	cache       *CacheService
	cacheTTL    time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(orders orderCounter, inspections inspectionCounter, users roleCounter, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		orders:      orders,
		inspections: inspections,
		users:       users,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// Production counts orders per terminal bucket for the current month.
func (s *DashboardService) Production(ctx context.Context) (*dto.ProductionRollup, error) {
	var cached dto.ProductionRollup
	if hit, _ := s.cache.Get(ctx, cacheKeyDashboardProduction, &cached); hit {
		return &cached, nil
	}

	since := s.monthStart()
	rollup := &dto.ProductionRollup{}

	var err error
	if rollup.Completed, err = s.orders.CountByStatusSince(ctx, models.OrderStatusCompleted, since); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count completed orders")
	}
	if rollup.Pending, err = s.orders.CountByStatusSince(ctx, models.OrderStatusPending, since); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count pending orders")
	}
	if rollup.Cancelled, err = s.orders.CountByStatusSince(ctx, models.OrderStatusCancelled, since); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count cancelled orders")
	}

	s.store(ctx, cacheKeyDashboardProduction, rollup)
	return rollup, nil
}

// Inspections counts pass and fail verdicts for the current month.
func (s *DashboardService) Inspections(ctx context.Context) (*dto.InspectionRollup, error) {
	var cached dto.InspectionRollup
	if hit, _ := s.cache.Get(ctx, cacheKeyDashboardInspections, &cached); hit {
		return &cached, nil
	}

	since := s.monthStart()
	rollup := &dto.InspectionRollup{}

	var err error
	if rollup.PassedCount, err = s.inspections.CountSince(ctx, true, since); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count passed inspections")
	}
	if rollup.FailedCount, err = s.inspections.CountSince(ctx, false, since); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count failed inspections")
	}

	s.store(ctx, cacheKeyDashboardInspections, rollup)
	return rollup, nil
}

// Users counts accounts per role. Not month-scoped.
func (s *DashboardService) Users(ctx context.Context) (*dto.UserRollup, error) {
	var cached dto.UserRollup
	if hit, _ := s.cache.Get(ctx, cacheKeyDashboardUsers, &cached); hit {
		return &cached, nil
	}

	rollup := &dto.UserRollup{}

	var err error
	if rollup.Admin, err = s.users.CountByRole(ctx, models.RoleAdmin); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count admins")
	}
	if rollup.QC, err = s.users.CountByRole(ctx, models.RoleQC); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count qc users")
	}
	if rollup.Operator, err = s.users.CountByRole(ctx, models.RoleOperator); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count operators")
	}

	s.store(ctx, cacheKeyDashboardUsers, rollup)
	return rollup, nil
}

// Invalidate drops every cached dashboard rollup.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "dash:*"); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}

func (s *DashboardService) monthStart() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *DashboardService) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard rollup", zap.String("key", key), zap.Error(err))
	}
}
