package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mes-workflow-api/internal/service"
	"github.com/noah-isme/mes-workflow-api/pkg/response"
)

// DashboardHandler exposes monthly rollup endpoints.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Production godoc
// @Summary Production rollup
// @Description Orders per terminal bucket for the current month
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/production [get]
func (h *DashboardHandler) Production(c *gin.Context) {
	rollup, err := h.service.Production(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rollup)
}

// Inspections godoc
// @Summary Inspection rollup
// @Description Pass and fail verdict counts for the current month
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/inspections [get]
func (h *DashboardHandler) Inspections(c *gin.Context) {
	rollup, err := h.service.Inspections(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rollup)
}

// Users godoc
// @Summary User rollup
// @Description Account counts per role
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/users [get]
func (h *DashboardHandler) Users(c *gin.Context) {
	rollup, err := h.service.Users(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rollup)
}
