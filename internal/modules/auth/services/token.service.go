package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cetime-core/internal/app/config"
	"cetime-core/internal/modules/auth/dto"
	authMiddleware "cetime-core/internal/shared/middleware/auth"
)

// TokenService émet les jetons d'accès HS256 de la plateforme
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
	issuer    string
}

// NewTokenService crée une nouvelle instance du service de jetons
func NewTokenService(cfg *config.Config) *TokenService {
	jwtConfig := cfg.GetJWT()
	return &TokenService{
		secret:    []byte(jwtConfig.Secret),
		expiresIn: jwtConfig.ExpiresIn,
		issuer:    jwtConfig.Issuer,
	}
}

// Generate émet un jeton signé pour le compte donné
func (t *TokenService) Generate(user dto.UserData) (string, error) {
	now := time.Now()

	claims := authMiddleware.Claims{
		UserID:    user.ID,
		Role:      user.Role,
		Email:     user.Email,
		Name:      user.Name,
		PartnerID: user.PartnerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signature jeton échouée: %w", err)
	}

	return signed, nil
}

// ExpiresIn retourne la durée de vie configurée des jetons
func (t *TokenService) ExpiresIn() time.Duration {
	return t.expiresIn
}
