package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mes-workflow-api/internal/middleware"
	"github.com/noah-isme/mes-workflow-api/internal/models"
	"github.com/noah-isme/mes-workflow-api/internal/service"
	"github.com/noah-isme/mes-workflow-api/pkg/config"
	appErrors "github.com/noah-isme/mes-workflow-api/pkg/errors"
	"github.com/noah-isme/mes-workflow-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service. It owns the refresh
// cookie lifecycle; the refresh token never appears in a response body.
type AuthHandler struct {
	service *service.AuthService
	cfg     *config.Config
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{service: svc, cfg: cfg}
}

type sessionEnvelope struct {
	Success bool `json:"success"`
	models.LoginResponse
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate by email and password, set the refresh cookie and return an access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} response.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setRefreshCookie(c, res.RefreshToken)
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, sessionEnvelope{
		Success: true,
		LoginResponse: models.LoginResponse{
			User:        res.User,
			AccessToken: res.AccessToken,
		},
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchange the refresh cookie for a new access token
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} response.Envelope
// @Router /refresh-token [get]
func (h *AuthHandler) Refresh(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	token, err := c.Cookie(middleware.RefreshCookieName)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "no refresh token provided"))
		return
	}

	res, err := h.service.Refresh(c.Request.Context(), claims.UserID, token)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, sessionEnvelope{
		Success: true,
		LoginResponse: models.LoginResponse{
			User:        res.User,
			AccessToken: res.AccessToken,
		},
	})
}

// Logout godoc
// @Summary Logout current session
// @Description Revoke the refresh session and clear the cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /logout [delete]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Logout(c.Request.Context(), claims.UserID, requestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}

	h.clearRefreshCookie(c)
	response.Message(c, http.StatusOK, "logged out")
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.RefreshCookieName, token, int(h.cfg.JWT.CookieMaxAge.Seconds()), "/", "", h.cfg.IsProduction(), true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.RefreshCookieName, "", -1, "/", "", h.cfg.IsProduction(), true)
}
