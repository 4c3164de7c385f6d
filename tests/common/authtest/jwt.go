//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"session-booking/internal/domain/identity"
	"session-booking/internal/pkg/config"
	"session-booking/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, guestRef string, role identity.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	service := jwt.NewService(h.cfg.Secret, duration)
	token, err := service.GenerateToken(guestRef, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) GuestToken(t *testing.T, guestRef string) string {
	t.Helper()
	return h.GenerateToken(t, guestRef, identity.RoleGuest)
}

func (h *JWTHelper) OperatorToken(t *testing.T) string {
	t.Helper()
	return h.GenerateToken(t, "operator-e2e", identity.RoleOperator)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, guestRef string, role identity.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(guestRef, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
