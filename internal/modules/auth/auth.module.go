package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"cetime-core/internal/modules/auth/controllers"
	"cetime-core/internal/modules/auth/services"
	authMiddleware "cetime-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers du domaine Auth
var Module = fx.Options(
	// Services (utilisent queries directement)
	fx.Provide(services.NewRoleResolver),
	fx.Provide(services.NewTokenService),
	fx.Provide(services.NewAuthService),

	// Controllers
	fx.Provide(controllers.NewAuthController),

	// Configuration des routes
	fx.Invoke(RegisterAuthRoutes),
)

// RegisterAuthRoutes configure les routes Gin pour l'authentification
func RegisterAuthRoutes(
	r *gin.Engine,
	authController *controllers.AuthController,
	jwtMiddleware *authMiddleware.JWTMiddleware,
) {
	// Routes publiques
	authAPI := r.Group("/api/v1/auth")
	{
		authAPI.POST("/login", authController.Login)
		authAPI.POST("/register", authController.Register)
	}

	// Gestion des comptes (token requis)
	usersAPI := r.Group("/api/v1/auth/users")
	usersAPI.Use(jwtMiddleware.Handler())
	{
		usersAPI.GET("/stats", authMiddleware.RequireAdmin(), authController.GetUserStats)
		usersAPI.GET("/:id", authController.GetUser)
		usersAPI.PUT("/:id", authController.UpdateUser)
	}

	// Annuaire clients (administrateurs)
	clientsAPI := r.Group("/api/v1/auth/clients")
	clientsAPI.Use(jwtMiddleware.Handler(), authMiddleware.RequireAdmin())
	{
		clientsAPI.GET("", authController.GetClients)
	}
}
