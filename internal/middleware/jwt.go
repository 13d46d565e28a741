package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mes-workflow-api/internal/models"
	appErrors "github.com/noah-isme/mes-workflow-api/pkg/errors"
	"github.com/noah-isme/mes-workflow-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// RefreshCookieName is the HTTP-only cookie carrying the refresh token.
const RefreshCookieName = "refreshToken"

// TokenVerifier validates signed tokens. Verification is pure: identity and
// role come entirely from the signature, never a store lookup.
type TokenVerifier interface {
	VerifyAccess(token string) (*models.JWTClaims, error)
	VerifyRefresh(token string) (*models.JWTClaims, error)
}

// JWT protects routes by requiring a valid bearer access token. Fails closed
// on absent, malformed, expired or tampered tokens.
func JWT(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccess(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// RefreshCookie guards the two endpoints that only need refresh-level trust
// (refresh, logout). The token comes from the persisted cookie, not a header.
func RefreshCookie(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(RefreshCookieName)
		if err != nil || token == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "no refresh token provided"))
			c.Abort()
			return
		}

		claims, err := tokens.VerifyRefresh(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}
