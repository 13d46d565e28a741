package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mes-workflow-api/internal/models"
	"github.com/noah-isme/mes-workflow-api/internal/service"
	appErrors "github.com/noah-isme/mes-workflow-api/pkg/errors"
	"github.com/noah-isme/mes-workflow-api/pkg/response"
)

// QCHandler exposes inspection recording and report export endpoints.
type QCHandler struct {
	service   *service.QCService
	dashboard *service.DashboardService
}

// NewQCHandler creates a new handler.
func NewQCHandler(svc *service.QCService, dashboard *service.DashboardService) *QCHandler {
	return &QCHandler{service: svc, dashboard: dashboard}
}

// Record godoc
// @Summary Record inspection
// @Description Append an inspection; a passing verdict completes the order atomically
// @Tags QC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productionId path string true "Production order ID"
// @Param payload body models.RecordInspectionRequest true "Inspection payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /qc-report/{productionId} [post]
func (h *QCHandler) Record(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.RecordInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid inspection payload"))
		return
	}

	inspection, err := h.service.Record(c.Request.Context(), c.Param("productionId"), claims.UserID, req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context())
	}
	response.Created(c, inspection)
}

// Export godoc
// @Summary Export QC report
// @Description Download the inspection report of a COMPLETED order as PDF
// @Tags QC
// @Produce application/pdf
// @Security BearerAuth
// @Param referenceNo path string true "Order reference number"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /qc-report/{referenceNo} [get]
func (h *QCHandler) Export(c *gin.Context) {
	report, err := h.service.Export(c.Request.Context(), c.Param("referenceNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", report.Filename))
	c.Data(http.StatusOK, "application/pdf", report.Content)
}
