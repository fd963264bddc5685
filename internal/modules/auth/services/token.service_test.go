package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cetime-core/internal/app/config"
	"cetime-core/internal/modules/auth/dto"
	authMiddleware "cetime-core/internal/shared/middleware/auth"
)

func newTestTokenService(secret string, expiresIn time.Duration) *TokenService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:    secret,
			ExpiresIn: expiresIn,
			Issuer:    "cetime-core",
		},
	}
	return NewTokenService(cfg)
}

func TestTokenService_GenerateAndParse(t *testing.T) {
	service := newTestTokenService("secret-de-test", time.Hour)

	signed, err := service.Generate(dto.UserData{
		ID:        42,
		Role:      RoleAgent,
		Email:     "agent@cetime.tn",
		Name:      "Agent Essais",
		PartnerID: 7,
	})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims := &authMiddleware.Claims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret-de-test"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, RoleAgent, claims.Role)
	assert.Equal(t, "agent@cetime.tn", claims.Email)
	assert.Equal(t, "Agent Essais", claims.Name)
	assert.Equal(t, 7, claims.PartnerID)
	assert.Equal(t, "cetime-core", claims.Issuer)

	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	service := newTestTokenService("bon-secret", time.Hour)

	signed, err := service.Generate(dto.UserData{ID: 1, Role: RoleClient})
	require.NoError(t, err)

	claims := &authMiddleware.Claims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("mauvais-secret"), nil
	})
	assert.Error(t, err)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	service := newTestTokenService("secret-de-test", -time.Minute)

	signed, err := service.Generate(dto.UserData{ID: 1, Role: RoleClient})
	require.NoError(t, err)

	claims := &authMiddleware.Claims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret-de-test"), nil
	})
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
