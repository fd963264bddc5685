package document

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"cetime-core/internal/modules/document/controllers"
	"cetime-core/internal/modules/document/services"
	authMiddleware "cetime-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers du domaine Document
var Module = fx.Options(
	fx.Provide(services.NewDocumentService),

	fx.Provide(controllers.NewDocumentController),

	fx.Invoke(RegisterDocumentRoutes),
)

// RegisterDocumentRoutes configure les routes Gin du registre des documents
func RegisterDocumentRoutes(
	r *gin.Engine,
	documentController *controllers.DocumentController,
	jwtMiddleware *authMiddleware.JWTMiddleware,
) {
	api := r.Group("/api/v1/documents")
	api.Use(jwtMiddleware.Handler())
	{
		api.POST("/document", authMiddleware.RequireAgentOrAdmin(), documentController.Upload)
		api.POST("/document/bulk", authMiddleware.RequireAgentOrAdmin(), documentController.UploadBulk)
		api.GET("", documentController.ListAll)
		api.GET("/:id", documentController.GetByID)
		api.GET("/byPrestation/:prestationId", documentController.ListByPrestation)
	}
}
