package controllers

import (
	"net/http"
	"strconv"

	"cetime-core/internal/modules/kpi/services"

	"github.com/gin-gonic/gin"
)

type KPIController struct {
	kpiService *services.KPIService
}

func NewKPIController(kpiService *services.KPIService) *KPIController {
	return &KPIController{
		kpiService: kpiService,
	}
}

// Dashboard - GET /api/v1/kpi/dashboard?year=2025&deadline=30
func (c *KPIController) Dashboard(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.DefaultQuery("year", strconv.Itoa(services.DefaultYear)))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Paramètre year invalide",
			"details": gin.H{"code": "INVALID_YEAR"},
		})
		return
	}

	deadline, err := strconv.Atoi(ctx.DefaultQuery("deadline", strconv.Itoa(services.DefaultDeadlineDays)))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Paramètre deadline invalide",
			"details": gin.H{"code": "INVALID_DEADLINE"},
		})
		return
	}

	payload, err := c.kpiService.Dashboard(ctx.Request.Context(), year, deadline)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erreur calcul des indicateurs",
			"details": gin.H{"code": "KPI_ERROR"},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payload,
	})
}

// PrestationsByActivity - GET /api/v1/kpi/prestations-by-activity?from=&to=&state=
func (c *KPIController) PrestationsByActivity(ctx *gin.Context) {
	result, err := c.kpiService.PrestationsByActivity(ctx.Request.Context(),
		ctx.Query("from"), ctx.Query("to"), ctx.Query("state"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erreur calcul des indicateurs",
			"details": gin.H{"code": "KPI_ERROR"},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// PrestationsByState - GET /api/v1/kpi/prestations-by-state?from=&to=
func (c *KPIController) PrestationsByState(ctx *gin.Context) {
	result, err := c.kpiService.PrestationsByState(ctx.Request.Context(),
		ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erreur calcul des indicateurs",
			"details": gin.H{"code": "KPI_ERROR"},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
