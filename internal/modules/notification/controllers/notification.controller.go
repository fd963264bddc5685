package controllers

import (
	"net/http"
	"strconv"

	"cetime-core/internal/modules/notification/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	journalService *services.JournalService
}

func NewNotificationController(journalService *services.JournalService) *NotificationController {
	return &NotificationController{
		journalService: journalService,
	}
}

// List - GET /api/v1/notifications?limit=
func (c *NotificationController) List(ctx *gin.Context) {
	limit, _ := strconv.ParseInt(ctx.DefaultQuery("limit", "100"), 10, 64)

	entries, err := c.journalService.List(ctx.Request.Context(), limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de la lecture du journal des notifications",
			"details": map[string]interface{}{
				"code": "JOURNAL_READ_ERROR",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}
