package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/dreamhome-service/internal/auth"
	"github.com/spec-kit/dreamhome-service/internal/config"
	"github.com/spec-kit/dreamhome-service/internal/domain"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		AdminEmail:            "admin@dreamhome.co.uk",
		AdminPasswordHash:     hash,
	})
	ctx := context.Background()

	_, err = svc.Login(ctx, "admin@dreamhome.co.uk", "wrong")
	require.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	_, err = svc.Login(ctx, "someone@dreamhome.co.uk", "s3cret")
	require.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	token, err := svc.Login(ctx, "Admin@DreamHome.co.uk", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token.Value)

	claims, err := svc.TokenManager().ParseToken(token.Value)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_LoginDisabledWithoutAdmin(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{JWTSecret: "x"})
	_, err := svc.Login(context.Background(), "a@b.c", "pw")
	require.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}
