package controllers

import (
	"net/http"
	"strconv"

	"cetime-core/internal/modules/prestation/services"

	"github.com/gin-gonic/gin"
)

type LookupController struct {
	lookupService *services.LookupService
}

func NewLookupController(lookupService *services.LookupService) *LookupController {
	return &LookupController{
		lookupService: lookupService,
	}
}

// SearchActivities - GET /api/v1/lookups/activities?q=
func (c *LookupController) SearchActivities(ctx *gin.Context) {
	result, err := c.lookupService.SearchActivities(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		handlePrestError(ctx, err, "Erreur recherche activités")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// ListDepartments - GET /api/v1/lookups/departments?code=
func (c *LookupController) ListDepartments(ctx *gin.Context) {
	result, err := c.lookupService.ListDepartments(ctx.Request.Context(), ctx.Query("code"))
	if err != nil {
		handlePrestError(ctx, err, "Erreur liste départements")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// UsersByGroup - GET /api/v1/lookups/users/by-group?group=&groupId=&q=&limit=
func (c *LookupController) UsersByGroup(ctx *gin.Context) {
	groupID, _ := strconv.Atoi(ctx.DefaultQuery("groupId", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "200"))

	result, err := c.lookupService.UsersByGroup(ctx.Request.Context(),
		ctx.DefaultQuery("group", "client"), groupID, ctx.Query("q"), limit)
	if err != nil {
		handlePrestError(ctx, err, "Erreur récupération utilisateurs par groupe")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
