package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/mes-workflow-api/internal/models"
	"github.com/noah-isme/mes-workflow-api/pkg/config"
	appErrors "github.com/noah-isme/mes-workflow-api/pkg/errors"
)

// TokenService issues and verifies access and refresh tokens. The two kinds
// are signed with distinct secrets, so a leaked access token never validates
// as a refresh token and vice versa. Verification is pure: no I/O.
type TokenService struct {
	cfg config.JWTConfig
	now func() time.Time
}

// NewTokenService constructs a TokenService.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{cfg: cfg, now: time.Now}
}

// IssueAccessToken signs a short-lived access token for the user.
func (s *TokenService) IssueAccessToken(user *models.User) (string, error) {
	return s.issue(user, s.cfg.AccessSecret, s.cfg.AccessExpiration, true)
}

// IssueRefreshToken signs a long-lived refresh token for the user.
func (s *TokenService) IssueRefreshToken(user *models.User) (string, error) {
	return s.issue(user, s.cfg.RefreshSecret, s.cfg.RefreshExpiration, false)
}

// VerifyAccess validates an access token and returns its claims.
func (s *TokenService) VerifyAccess(token string) (*models.JWTClaims, error) {
	return s.verify(token, s.cfg.AccessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (s *TokenService) VerifyRefresh(token string) (*models.JWTClaims, error) {
	return s.verify(token, s.cfg.RefreshSecret)
}

// Fingerprint computes the server-side stored form of a refresh token. The
// raw token never sits at rest.
func (s *TokenService) Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *TokenService) issue(user *models.User, secret string, ttl time.Duration, withEmail bool) (string, error) {
	issuedAt := s.now().UTC()
	claims := &models.JWTClaims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	if withEmail {
		claims.Email = user.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) verify(tokenString, secret string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "token invalid")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token invalid")
	}

	return claims, nil
}
