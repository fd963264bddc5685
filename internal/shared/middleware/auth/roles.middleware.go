package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles n'autorise que les rôles listés (comparaison sur le rôle du jeton)
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role := CurrentUserRole(c)
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Accès refusé pour ce rôle",
				"details": map[string]interface{}{
					"code": "FORBIDDEN_ROLE",
					"role": role,
				},
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin n'autorise que les administrateurs
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles("ADMIN")
}

// RequireAgent n'autorise que les agents (EMPLOYEE est un alias historique)
func RequireAgent() gin.HandlerFunc {
	return RequireRoles("AGENT", "EMPLOYEE")
}

// RequireAgentOrAdmin autorise agents et administrateurs
func RequireAgentOrAdmin() gin.HandlerFunc {
	return RequireRoles("AGENT", "EMPLOYEE", "ADMIN")
}

// RequireClient n'autorise que les comptes clients
func RequireClient() gin.HandlerFunc {
	return RequireRoles("CLIENT")
}
