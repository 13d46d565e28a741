package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mes-workflow-api/internal/models"
)

type mockOrderCounter struct {
	counts map[models.OrderStatus]int
	since  time.Time
}

func (m *mockOrderCounter) CountByStatusSince(ctx context.Context, status models.OrderStatus, since time.Time) (int, error) {
	m.since = since
	return m.counts[status], nil
}

type mockInspectionCounter struct {
	passed int
	failed int
}

func (m *mockInspectionCounter) CountSince(ctx context.Context, passed bool, since time.Time) (int, error) {
	if passed {
		return m.passed, nil
	}
	return m.failed, nil
}

type mockRoleCounter struct {
	counts map[models.UserRole]int
}

func (m *mockRoleCounter) CountByRole(ctx context.Context, role models.UserRole) (int, error) {
	return m.counts[role], nil
}

func TestDashboardProductionRollup(t *testing.T) {
	orders := &mockOrderCounter{counts: map[models.OrderStatus]int{
		models.OrderStatusCompleted: 5,
		models.OrderStatusPending:   2,
		models.OrderStatusCancelled: 1,
	}}
	svc := NewDashboardService(orders, nil, nil, nil, time.Minute, nil)

	rollup, err := svc.Production(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, rollup.Completed)
	assert.Equal(t, 2, rollup.Pending)
	assert.Equal(t, 1, rollup.Cancelled)
}

func TestDashboardProductionCutoffIsMonthStart(t *testing.T) {
	orders := &mockOrderCounter{counts: map[models.OrderStatus]int{}}
	svc := NewDashboardService(orders, nil, nil, nil, time.Minute, nil)
	svc.now = func() time.Time { return time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC) }

	_, err := svc.Production(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), orders.since)
}

func TestDashboardInspectionRollup(t *testing.T) {
	svc := NewDashboardService(nil, &mockInspectionCounter{passed: 7, failed: 3}, nil, nil, time.Minute, nil)

	rollup, err := svc.Inspections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, rollup.PassedCount)
	assert.Equal(t, 3, rollup.FailedCount)
}

func TestDashboardUserRollup(t *testing.T) {
	users := &mockRoleCounter{counts: map[models.UserRole]int{
		models.RoleAdmin:    1,
		models.RoleQC:       4,
		models.RoleOperator: 9,
	}}
	svc := NewDashboardService(nil, nil, users, nil, time.Minute, nil)

	rollup, err := svc.Users(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rollup.Admin)
	assert.Equal(t, 4, rollup.QC)
	assert.Equal(t, 9, rollup.Operator)
}
