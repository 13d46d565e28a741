package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/mes-workflow-api/internal/models"
	appErrors "github.com/noah-isme/mes-workflow-api/pkg/errors"
)

type mockAuthRepo struct {
	user        *models.User
	findErr     error
	setErr      error
	fingerprint *string
	cleared     bool
	auditLogs   []*models.AuditLog
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.user == nil || m.user.Email != email {
		return nil, sql.ErrNoRows
	}
	return m.user, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.user, nil
}

func (m *mockAuthRepo) SetRefreshFingerprint(ctx context.Context, id string, fingerprint *string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.fingerprint = fingerprint
	if fingerprint == nil {
		m.cleared = true
	}
	if m.user != nil {
		m.user.RefreshFingerprint = fingerprint
	}
	return nil
}

func (m *mockAuthRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func newAuthFixture(t *testing.T, password string) (*AuthService, *mockAuthRepo, *TokenService) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &mockAuthRepo{user: &models.User{
		ID:           "u1",
		Name:         "Operator",
		Email:        "op@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleOperator,
	}}
	tokens := NewTokenService(testJWTConfig())
	return NewAuthService(repo, tokens, NewValidator(), nil), repo, tokens
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc, repo, tokens := newAuthFixture(t, "password")

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "op@example.com", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "op@example.com", res.User.Email)

	require.NotNil(t, repo.fingerprint)
	assert.Equal(t, tokens.Fingerprint(res.RefreshToken), *repo.fingerprint)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionLogin, repo.auditLogs[0].Action)
}

func TestAuthServiceLoginNormalizesEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "password")

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "  OP@Example.Com ", Password: "password"})
	require.NoError(t, err)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, repo, _ := newAuthFixture(t, "password")

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "op@example.com", Password: "wrong"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "user not found", appErr.Message)
	assert.Nil(t, repo.fingerprint)
}

func TestAuthServiceLoginUnknownEmailSameMessage(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "password")

	_, wrongPassword := svc.Login(context.Background(), models.LoginRequest{Email: "op@example.com", Password: "wrong"})
	_, unknownEmail := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "password"})
	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, appErrors.FromError(wrongPassword).Message, appErrors.FromError(unknownEmail).Message)
}

func TestAuthServiceLoginValidation(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "password")

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: "password"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.NotEmpty(t, appErr.Fields)
	assert.Equal(t, "email", appErr.Fields[0].Path)
}

func TestAuthServiceRefreshSuccess(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "password")

	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "op@example.com", Password: "password"})
	require.NoError(t, err)

	res, err := svc.Refresh(context.Background(), "u1", login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Empty(t, res.RefreshToken)
}

func TestAuthServiceRefreshSupersededSession(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "password")

	first, err := svc.Login(context.Background(), models.LoginRequest{Email: "op@example.com", Password: "password"})
	require.NoError(t, err)

	// A second login replaces the stored fingerprint.
	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "op@example.com", Password: "password"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), "u1", first.RefreshToken)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, "refresh token not found", appErr.Message)
}

func TestAuthServiceRefreshAfterLogout(t *testing.T) {
	svc, repo, _ := newAuthFixture(t, "password")

	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "op@example.com", Password: "password"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "u1", models.RequestMeta{}))
	assert.True(t, repo.cleared)

	_, err = svc.Refresh(context.Background(), "u1", login.RefreshToken)
	require.Error(t, err)
}

func TestAuthServiceLogoutAudits(t *testing.T) {
	svc, repo, _ := newAuthFixture(t, "password")

	require.NoError(t, svc.Logout(context.Background(), "u1", models.RequestMeta{IP: "10.0.0.1"}))
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionLogout, repo.auditLogs[0].Action)
	assert.Equal(t, "10.0.0.1", repo.auditLogs[0].IPAddress)
}
