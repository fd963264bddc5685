package rendezvous

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	notifServices "cetime-core/internal/modules/notification/services"
	"cetime-core/internal/modules/rendezvous/controllers"
	"cetime-core/internal/modules/rendezvous/services"
	authMiddleware "cetime-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers du domaine Rendez-vous
var Module = fx.Options(
	fx.Provide(services.NewStore),
	fx.Provide(func(d *notifServices.Dispatcher) services.Notifier { return d }),

	fx.Provide(services.NewBookingService),
	fx.Provide(services.NewLifecycleService),
	fx.Provide(services.NewDisponibiliteService),

	fx.Provide(controllers.NewRendezVousController),
	fx.Provide(controllers.NewDisponibiliteController),

	fx.Invoke(RegisterRendezVousRoutes),
)

// RegisterRendezVousRoutes configure les routes Gin du domaine rendez-vous
func RegisterRendezVousRoutes(
	r *gin.Engine,
	rdvController *controllers.RendezVousController,
	dispoController *controllers.DisponibiliteController,
	jwtMiddleware *authMiddleware.JWTMiddleware,
) {
	rdvAPI := r.Group("/api/v1/rendezvous")
	rdvAPI.Use(jwtMiddleware.Handler())
	{
		// Client
		rdvAPI.POST("/reserver", authMiddleware.RequireClient(), rdvController.Reserver)
		rdvAPI.GET("/client", authMiddleware.RequireClient(), rdvController.ClientRdvs)

		// Agent
		rdvAPI.GET("/agent/:agentId", authMiddleware.RequireAgent(), rdvController.AgentRdvs)
		rdvAPI.GET("/pending-validation", authMiddleware.RequireAgent(), rdvController.PendingValidation)
		rdvAPI.PUT("/agent/valider/:id", authMiddleware.RequireAgent(), rdvController.AgentValider)

		// Admin
		rdvAPI.GET("/admin", authMiddleware.RequireAdmin(), rdvController.AdminCalendar)
		rdvAPI.POST("/confirmer/:id", authMiddleware.RequireAdmin(), rdvController.Confirmer)
		rdvAPI.PUT("/annuler/:id", authMiddleware.RequireAdmin(), rdvController.Annuler)
		rdvAPI.PUT("/:id/reassign", authMiddleware.RequireAdmin(), rdvController.Reassign)
		rdvAPI.POST("/affecter/admin", authMiddleware.RequireAdmin(), dispoController.AffecterByAdmin)
	}

	dispoAPI := r.Group("/api/v1/disponibilites")
	dispoAPI.Use(jwtMiddleware.Handler())
	{
		dispoAPI.POST("", authMiddleware.RequireAgentOrAdmin(), dispoController.Declare)
		dispoAPI.GET("/all", authMiddleware.RequireAgentOrAdmin(), dispoController.ListAll)
		dispoAPI.GET("/agent/:agentId", dispoController.ListByAgent)
	}
}
