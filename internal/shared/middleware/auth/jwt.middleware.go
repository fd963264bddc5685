package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"cetime-core/internal/app/config"
)

// Clés de contexte Gin posées par le middleware JWT
const (
	ContextUserID    = "user_id"
	ContextUserRole  = "user_role"
	ContextUserEmail = "user_email"
	ContextUserName  = "user_name"
	ContextPartnerID = "partner_id"
)

// Claims structure des jetons d'accès de la plateforme
type Claims struct {
	UserID    int    `json:"id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	PartnerID int    `json:"partner_id"`
	jwt.RegisteredClaims
}

// JWTMiddleware vérifie les jetons Bearer et pose l'identité dans le contexte Gin
type JWTMiddleware struct {
	secret []byte
}

// NewJWTMiddleware crée une nouvelle instance du middleware JWT
func NewJWTMiddleware(cfg *config.Config) *JWTMiddleware {
	return &JWTMiddleware{
		secret: []byte(cfg.GetJWT().Secret),
	}
}

// Handler retourne le gin.HandlerFunc de vérification du jeton
func (m *JWTMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Jeton d'authentification manquant",
				"details": map[string]interface{}{
					"code": "TOKEN_MISSING",
				},
			})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Jeton invalide ou expiré",
				"details": map[string]interface{}{
					"code": "TOKEN_INVALID",
				},
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, strings.ToUpper(claims.Role))
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserName, claims.Name)
		c.Set(ContextPartnerID, claims.PartnerID)

		c.Next()
	}
}

// extractBearerToken extrait le jeton du header Authorization
func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// CurrentUserID retourne l'identifiant utilisateur posé par le middleware
func CurrentUserID(c *gin.Context) int {
	return c.GetInt(ContextUserID)
}

// CurrentUserRole retourne le rôle posé par le middleware
func CurrentUserRole(c *gin.Context) string {
	return c.GetString(ContextUserRole)
}

// CurrentUserEmail retourne l'email posé par le middleware
func CurrentUserEmail(c *gin.Context) string {
	return c.GetString(ContextUserEmail)
}

// CurrentUserName retourne le nom posé par le middleware
func CurrentUserName(c *gin.Context) string {
	return c.GetString(ContextUserName)
}

// CurrentPartnerID retourne l'identifiant partner posé par le middleware
func CurrentPartnerID(c *gin.Context) int {
	return c.GetInt(ContextPartnerID)
}
