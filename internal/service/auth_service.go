package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/dreamhome-service/internal/auth"
	"github.com/spec-kit/dreamhome-service/internal/config"
	"github.com/spec-kit/dreamhome-service/internal/domain"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

// AuthService issues operator tokens for the configured admin account.
type AuthService struct {
	tokenMgr     *auth.TokenManager
	adminEmail   string
	adminPwdHash string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		tokenMgr:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		adminEmail:   cfg.AdminEmail,
		adminPwdHash: cfg.AdminPasswordHash,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login checks the admin credentials and returns a signed token.
func (s *AuthService) Login(_ context.Context, email, password string) (domain.Token, error) {
	if s.adminEmail == "" || s.adminPwdHash == "" {
		return domain.Token{}, apperrors.NewUnauthorized("login disabled")
	}
	if !strings.EqualFold(strings.TrimSpace(email), s.adminEmail) {
		return domain.Token{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(s.adminPwdHash, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return domain.Token{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return domain.Token{}, apperrors.NewInternalError(err)
	}

	token, err := s.tokenMgr.GenerateToken(domain.Operator{Email: s.adminEmail, Role: domain.RoleAdmin})
	if err != nil {
		return domain.Token{}, apperrors.NewInternalError(err)
	}
	return token, nil
}
