package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mes-workflow-api/internal/middleware"
	"github.com/noah-isme/mes-workflow-api/internal/models"
	"github.com/noah-isme/mes-workflow-api/internal/service"
	"github.com/noah-isme/mes-workflow-api/pkg/config"
)

type fakeOrderRepo struct {
	created  []*models.ProductionOrder
	detail   *models.OrderDetail
	affected int64
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.ProductionOrder) error {
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrderRepo) ReferenceExists(ctx context.Context, referenceNo string) (bool, error) {
	return false, nil
}

func (f *fakeOrderRepo) List(ctx context.Context) ([]models.OrderSummary, error) {
	return nil, nil
}

func (f *fakeOrderRepo) DetailByReference(ctx context.Context, referenceNo string) (*models.OrderDetail, error) {
	if f.detail == nil || f.detail.ReferenceNo != referenceNo {
		return nil, sql.ErrNoRows
	}
	return f.detail, nil
}

func (f *fakeOrderRepo) InspectionsForOrder(ctx context.Context, orderID string) ([]models.QCInspection, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateStatusByReference(ctx context.Context, referenceNo string, status models.OrderStatus) (int64, error) {
	return f.affected, nil
}

func (f *fakeOrderRepo) DeletePendingByReference(ctx context.Context, referenceNo string) (int64, error) {
	return f.affected, nil
}

type fakeAuditSink struct{}

func (fakeAuditSink) CreateAuditLog(ctx context.Context, log *models.AuditLog) error { return nil }

func newOrderRouter(t *testing.T, repo *fakeOrderRepo) (*gin.Engine, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := service.NewTokenService(config.JWTConfig{
		AccessSecret:      "access-secret",
		RefreshSecret:     "refresh-secret",
		AccessExpiration:  time.Minute,
		RefreshExpiration: time.Hour,
		Issuer:            "test",
	})
	orderSvc := service.NewOrderService(repo, fakeAuditSink{}, service.NewValidator(), nil)
	h := NewOrderHandler(orderSvc, nil)

	r := gin.New()
	api := r.Group("/api", middleware.JWT(tokens))
	api.GET("/production-orders", h.List)
	api.GET("/production-order/:referenceNo", h.Detail)
	api.POST("/production-order", middleware.RequireRoles(models.RoleOperator), h.Create)
	api.PUT("/production-order/:referenceNo", middleware.RequireRoles(models.RoleOperator), h.UpdateStatus)
	api.DELETE("/production-order/:referenceNo", middleware.RequireRoles(models.RoleOperator), h.Delete)
	return r, tokens
}

func bearerFor(t *testing.T, tokens *service.TokenService, role models.UserRole) string {
	t.Helper()
	token, err := tokens.IssueAccessToken(&models.User{ID: "u1", Name: "User", Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestOrderCreateAsOperator(t *testing.T) {
	repo := &fakeOrderRepo{}
	r, tokens := newOrderRouter(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/production-order", strings.NewReader(`{"modelName":"Widget X","quantity":40}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, tokens, models.RoleOperator))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)
	assert.True(t, strings.HasPrefix(repo.created[0].ReferenceNo, "PO"))
	assert.Contains(t, w.Body.String(), `"referenceNo"`)
}

func TestOrderCreateForbiddenForQC(t *testing.T) {
	repo := &fakeOrderRepo{}
	r, tokens := newOrderRouter(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/production-order", strings.NewReader(`{"modelName":"Widget X","quantity":40}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, tokens, models.RoleQC))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, repo.created)
}

func TestOrderWritesForbiddenForAdmin(t *testing.T) {
	repo := &fakeOrderRepo{affected: 1}
	r, tokens := newOrderRouter(t, repo)
	admin := bearerFor(t, tokens, models.RoleAdmin)

	requests := []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/production-order", strings.NewReader(`{"modelName":"Widget X","quantity":40}`)),
		httptest.NewRequest(http.MethodPut, "/api/production-order/PO1", strings.NewReader(`{"status":"CANCELLED"}`)),
		httptest.NewRequest(http.MethodDelete, "/api/production-order/PO1", nil),
	}
	for _, req := range requests {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", admin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", req.Method, req.URL.Path)
	}
	assert.Empty(t, repo.created)
}

func TestOrderListVisibleToQC(t *testing.T) {
	r, tokens := newOrderRouter(t, &fakeOrderRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/production-orders", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, models.RoleQC))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderDetailNotCompleted(t *testing.T) {
	r, tokens := newOrderRouter(t, &fakeOrderRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/production-order/PO404", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, models.RoleOperator))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "order not found")
}

func TestOrderDeleteUnknownReference(t *testing.T) {
	r, tokens := newOrderRouter(t, &fakeOrderRepo{affected: 0})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/production-order/PO404", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, models.RoleOperator))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid reference number")
}

func TestOrderUpdateStatusValidationFailure(t *testing.T) {
	r, tokens := newOrderRouter(t, &fakeOrderRepo{affected: 1})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/production-order/PO1", strings.NewReader(`{"status":"SHIPPED"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, tokens, models.RoleOperator))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
