package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mes-workflow-api/internal/middleware"
	"github.com/noah-isme/mes-workflow-api/internal/models"
)

// claimsFromContext returns the authenticated claims, or nil when the route
// was reached without passing the JWT middleware.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, _ := c.Get(middleware.ContextUserKey)
	claims, _ := value.(*models.JWTClaims)
	return claims
}

// requestMeta captures the caller identity recorded alongside audit entries.
func requestMeta(c *gin.Context) models.RequestMeta {
	return models.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}
