package notification

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"cetime-core/internal/modules/notification/controllers"
	"cetime-core/internal/modules/notification/services"
	authMiddleware "cetime-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers du domaine Notification
var Module = fx.Options(
	fx.Provide(services.NewJournalService),
	fx.Provide(services.NewDispatcher),

	fx.Provide(controllers.NewNotificationController),

	fx.Invoke(RegisterNotificationRoutes),
)

// RegisterNotificationRoutes configure les routes Gin du journal des notifications
func RegisterNotificationRoutes(
	r *gin.Engine,
	notificationController *controllers.NotificationController,
	jwtMiddleware *authMiddleware.JWTMiddleware,
) {
	api := r.Group("/api/v1/notifications")
	api.Use(jwtMiddleware.Handler(), authMiddleware.RequireAdmin())
	{
		api.GET("", notificationController.List)
	}
}
