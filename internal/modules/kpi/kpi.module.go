package kpi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"cetime-core/internal/modules/kpi/controllers"
	"cetime-core/internal/modules/kpi/services"
	authMiddleware "cetime-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers du domaine KPI
var Module = fx.Options(
	fx.Provide(services.NewKPIService),

	fx.Provide(controllers.NewKPIController),

	fx.Invoke(RegisterKPIRoutes),
)

// RegisterKPIRoutes configure les routes Gin des indicateurs
func RegisterKPIRoutes(
	r *gin.Engine,
	kpiController *controllers.KPIController,
	jwtMiddleware *authMiddleware.JWTMiddleware,
) {
	kpiAPI := r.Group("/api/v1/kpi")
	kpiAPI.Use(jwtMiddleware.Handler(), authMiddleware.RequireAgentOrAdmin())
	{
		kpiAPI.GET("/dashboard", kpiController.Dashboard)
		kpiAPI.GET("/prestations-by-activity", kpiController.PrestationsByActivity)
		kpiAPI.GET("/prestations-by-state", kpiController.PrestationsByState)
	}
}
