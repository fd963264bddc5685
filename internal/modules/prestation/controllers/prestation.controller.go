package controllers

import (
	"net/http"
	"strconv"

	"cetime-core/internal/modules/prestation/dto"
	"cetime-core/internal/modules/prestation/services"
	authMiddleware "cetime-core/internal/shared/middleware/auth"

	"github.com/gin-gonic/gin"
)

type PrestationController struct {
	prestationService *services.PrestationService
}

func NewPrestationController(prestationService *services.PrestationService) *PrestationController {
	return &PrestationController{
		prestationService: prestationService,
	}
}

// Create - POST /api/v1/dossiers
func (c *PrestationController) Create(ctx *gin.Context) {
	var req dto.CreatePrestationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidFormat(ctx, err)
		return
	}

	id, err := c.prestationService.Create(ctx.Request.Context(), req)
	if err != nil {
		handlePrestError(ctx, err, "Erreur lors de la création")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id": id,
		},
	})
}

// Summary - GET /api/v1/dossiers/prestations/summary
func (c *PrestationController) Summary(ctx *gin.Context) {
	result, err := c.prestationService.Summary(ctx.Request.Context())
	if err != nil {
		handlePrestError(ctx, err, "Erreur summary")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// ListByState - GET /api/v1/dossiers/prestations?state=&page=&pageSize=&q=
func (c *PrestationController) ListByState(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))

	result, err := c.prestationService.ListByState(ctx.Request.Context(),
		ctx.Query("state"), ctx.Query("q"), page, pageSize)
	if err != nil {
		handlePrestError(ctx, err, "Erreur listByState")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// List - GET /api/v1/dossiers/all?q=&state=&limit=&offset=
func (c *PrestationController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "1000"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	result, err := c.prestationService.List(ctx.Request.Context(),
		ctx.Query("state"), ctx.Query("q"), limit, offset)
	if err != nil {
		handlePrestError(ctx, err, "Erreur lors de la récupération des prestations.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// ByClient - GET /api/v1/dossiers/by-client
func (c *PrestationController) ByClient(ctx *gin.Context) {
	clientID := authMiddleware.CurrentUserID(ctx)

	result, err := c.prestationService.ListByClient(ctx.Request.Context(), clientID)
	if err != nil {
		handlePrestError(ctx, err, "Erreur prestations client")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetByID - GET /api/v1/dossiers/:id
func (c *PrestationController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	result, err := c.prestationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		handlePrestError(ctx, err, "Erreur récupération Prestation")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetFull - GET /api/v1/dossiers/:id/full
func (c *PrestationController) GetFull(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	result, err := c.prestationService.GetFull(ctx.Request.Context(), id)
	if err != nil {
		handlePrestError(ctx, err, "Erreur détail Prestation")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// Update - PUT /api/v1/dossiers/:id
func (c *PrestationController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePrestationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidFormat(ctx, err)
		return
	}

	result, err := c.prestationService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		handlePrestError(ctx, err, "Erreur mise à jour Prestation")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// Delete - DELETE /api/v1/dossiers/:id
func (c *PrestationController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.prestationService.Delete(ctx.Request.Context(), id); err != nil {
		handlePrestError(ctx, err, "Erreur suppression Prestation")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Prestation supprimée",
	})
}

func parseIDParam(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Identifiant invalide",
			"details": map[string]interface{}{
				"code": "INVALID_ID",
			},
		})
		return 0, false
	}
	return id, true
}

func respondInvalidFormat(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"error": "Format de requête invalide",
		"details": map[string]interface{}{
			"code":              "INVALID_REQUEST_FORMAT",
			"validation_errors": err.Error(),
		},
	})
}

// handlePrestError convertit les erreurs métier en statuts HTTP
func handlePrestError(ctx *gin.Context, err error, fallback string) {
	if prestErr, ok := err.(*dto.PrestError); ok {
		var statusCode int
		switch prestErr.Code {
		case "MISSING_NOM_PROJET", "INVALID_ACTIVITY", "NO_ANALYTIC_ACCOUNT",
			"MISSING_STATE", "INVALID_STATE":
			statusCode = http.StatusBadRequest
		case "PRESTATION_NOT_FOUND":
			statusCode = http.StatusNotFound
		default:
			statusCode = http.StatusInternalServerError
		}

		details := prestErr.Details
		if details == nil {
			details = map[string]interface{}{}
		}
		details["code"] = prestErr.Code

		ctx.JSON(statusCode, gin.H{
			"error":   prestErr.Message,
			"details": details,
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{
		"error": fallback,
		"details": map[string]interface{}{
			"code": "INTERNAL_ERROR",
		},
	})
}
