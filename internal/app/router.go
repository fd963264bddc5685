package app

import (
	"net/http"

	"cetime-core/internal/app/config"
	"cetime-core/internal/shared/middleware/core"
	"cetime-core/internal/shared/middleware/logging"
	"cetime-core/internal/shared/middleware/security"

	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	// Set Gin mode based on environment
	configureGinMode(cfg.Environment)

	// Create router without default middleware for custom configuration
	r := gin.New()

	// Middlewares globaux dans l'ordre d'importance
	r.Use(logging.NewGinLoggerWithDefaults(cfg.Environment))
	r.Use(gin.HandlerFunc(core.RecoveryMiddleware()))
	r.Use(gin.HandlerFunc(security.CORSMiddleware(cfg)))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "healthy",
			},
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "ready",
			},
		})
	})

	// Les routes métier sont enregistrées par chaque module via fx.Invoke

	return r
}

// configureGinMode configure le mode Gin selon l'environnement
func configureGinMode(environment string) {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "staging":
		gin.SetMode(gin.ReleaseMode)
	case "development":
		gin.SetMode(gin.DebugMode)
	default:
		// Mode debug par défaut pour développement local
		gin.SetMode(gin.DebugMode)
	}
}
