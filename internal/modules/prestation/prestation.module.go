package prestation

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"cetime-core/internal/modules/prestation/controllers"
	"cetime-core/internal/modules/prestation/services"
	authMiddleware "cetime-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers du domaine Prestation
var Module = fx.Options(
	fx.Provide(services.NewPrestationService),
	fx.Provide(services.NewLookupService),

	fx.Provide(controllers.NewPrestationController),
	fx.Provide(controllers.NewLookupController),

	fx.Invoke(RegisterPrestationRoutes),
)

// RegisterPrestationRoutes configure les routes Gin du registre des prestations
func RegisterPrestationRoutes(
	r *gin.Engine,
	prestationController *controllers.PrestationController,
	lookupController *controllers.LookupController,
	jwtMiddleware *authMiddleware.JWTMiddleware,
) {
	dossiersAPI := r.Group("/api/v1/dossiers")
	dossiersAPI.Use(jwtMiddleware.Handler())
	{
		dossiersAPI.POST("", authMiddleware.RequireAgentOrAdmin(), prestationController.Create)
		dossiersAPI.GET("/prestations/summary", prestationController.Summary)
		dossiersAPI.GET("/prestations", prestationController.ListByState)
		dossiersAPI.GET("/all", prestationController.List)
		dossiersAPI.GET("/by-client", authMiddleware.RequireClient(), prestationController.ByClient)
		dossiersAPI.GET("/:id", prestationController.GetByID)
		dossiersAPI.GET("/:id/full", prestationController.GetFull)
		dossiersAPI.PUT("/:id", authMiddleware.RequireAgentOrAdmin(), prestationController.Update)
		dossiersAPI.DELETE("/:id", authMiddleware.RequireAgentOrAdmin(), prestationController.Delete)
	}

	lookupsAPI := r.Group("/api/v1/lookups")
	lookupsAPI.Use(jwtMiddleware.Handler())
	{
		lookupsAPI.GET("/activities", lookupController.SearchActivities)
		lookupsAPI.GET("/departments", lookupController.ListDepartments)
		lookupsAPI.GET("/users/by-group", lookupController.UsersByGroup)
	}
}
