package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/service"
)

// Token parsing and signature checks run before any session lookup, so
// these paths are testable without Redis.

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := service.NewAuthService(setupTestDB(t), nil, "secret", time.Hour)

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := service.NewAuthService(setupTestDB(t), nil, "secret", time.Hour)

	claims := jwt.MapClaims{
		"user_id": uuid.New().String(),
		"sid":     uuid.New().String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), forged)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := service.NewAuthService(setupTestDB(t), nil, "secret", time.Hour)

	claims := jwt.MapClaims{
		"user_id": uuid.New().String(),
		"sid":     uuid.New().String(),
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), expired)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateTokenRejectsMissingClaims(t *testing.T) {
	svc := service.NewAuthService(setupTestDB(t), nil, "secret", time.Hour)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}
