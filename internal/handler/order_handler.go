package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mes-workflow-api/internal/models"
	"github.com/noah-isme/mes-workflow-api/internal/service"
	appErrors "github.com/noah-isme/mes-workflow-api/pkg/errors"
	"github.com/noah-isme/mes-workflow-api/pkg/response"
)

// OrderHandler exposes the production-order lifecycle endpoints.
type OrderHandler struct {
	service   *service.OrderService
	dashboard *service.DashboardService
}

// NewOrderHandler creates a new handler.
func NewOrderHandler(svc *service.OrderService, dashboard *service.DashboardService) *OrderHandler {
	return &OrderHandler{service: svc, dashboard: dashboard}
}

// Create godoc
// @Summary Create production order
// @Description Register a new order in PENDING with a generated reference number
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateOrderRequest true "Order payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /production-order [post]
func (h *OrderHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid order payload"))
		return
	}

	order, err := h.service.Create(c.Request.Context(), req, claims.UserID, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.invalidateDashboards(c)
	response.Created(c, order)
}

// List godoc
// @Summary List production orders
// @Description List every order with creator identity and earliest inspection summary
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /production-orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, orders)
}

// Detail godoc
// @Summary Completed order detail
// @Description Full view of a COMPLETED order including its inspection history
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param referenceNo path string true "Order reference number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /production-order/{referenceNo} [get]
func (h *OrderHandler) Detail(c *gin.Context) {
	detail, err := h.service.Detail(c.Request.Context(), c.Param("referenceNo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// UpdateStatus godoc
// @Summary Update order status
// @Description Apply a manual status transition by reference number
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param referenceNo path string true "Order reference number"
// @Param payload body models.UpdateOrderStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /production-order/{referenceNo} [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}

	referenceNo := c.Param("referenceNo")
	if err := h.service.UpdateStatus(c.Request.Context(), referenceNo, req, claims.UserID, requestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}

	h.invalidateDashboards(c)
	response.Message(c, http.StatusOK, "order status updated")
}

// Delete godoc
// @Summary Delete pending order
// @Description Remove an order that is still PENDING
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param referenceNo path string true "Order reference number"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /production-order/{referenceNo} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	referenceNo := c.Param("referenceNo")
	if err := h.service.Delete(c.Request.Context(), referenceNo, claims.UserID, requestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}

	h.invalidateDashboards(c)
	response.Message(c, http.StatusOK, "order deleted")
}

func (h *OrderHandler) invalidateDashboards(c *gin.Context) {
	if h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context())
	}
}
