package controllers

import (
	"net/http"

	"cetime-core/internal/modules/auth/services"
	"cetime-core/internal/modules/rendezvous/dto"
	rdvServices "cetime-core/internal/modules/rendezvous/services"
	authMiddleware "cetime-core/internal/shared/middleware/auth"

	"github.com/gin-gonic/gin"
)

type DisponibiliteController struct {
	disponibiliteService *rdvServices.DisponibiliteService
}

func NewDisponibiliteController(disponibiliteService *rdvServices.DisponibiliteService) *DisponibiliteController {
	return &DisponibiliteController{
		disponibiliteService: disponibiliteService,
	}
}

// Declare - POST /api/v1/disponibilites
func (c *DisponibiliteController) Declare(ctx *gin.Context) {
	var req dto.DisponibiliteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidFormat(ctx, err)
		return
	}

	agentID := authMiddleware.CurrentUserID(ctx)

	dispo, err := c.disponibiliteService.Declare(ctx.Request.Context(), agentID, req)
	if err != nil {
		handleRdvError(ctx, err, "Erreur lors de l'ajout de la disponibilité")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    dispo,
	})
}

// AffecterByAdmin - POST /api/v1/rendezvous/affecter/admin
func (c *DisponibiliteController) AffecterByAdmin(ctx *gin.Context) {
	var req dto.AffecterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidFormat(ctx, err)
		return
	}

	dispo, err := c.disponibiliteService.AffecterByAdmin(ctx.Request.Context(), req)
	if err != nil {
		handleRdvError(ctx, err, "Erreur lors de l'affectation du créneau")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    dispo,
	})
}

// ListByAgent - GET /api/v1/disponibilites/agent/:agentId
func (c *DisponibiliteController) ListByAgent(ctx *gin.Context) {
	agentID, ok := parseIDParam(ctx, "agentId")
	if !ok {
		return
	}

	requesterID := authMiddleware.CurrentUserID(ctx)
	isAdmin := authMiddleware.CurrentUserRole(ctx) == services.RoleAdmin

	dispos, err := c.disponibiliteService.ListByAgent(ctx.Request.Context(), requesterID, isAdmin, agentID)
	if err != nil {
		handleRdvError(ctx, err, "Erreur chargement des disponibilités")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dispos,
	})
}

// ListAll - GET /api/v1/disponibilites/all
func (c *DisponibiliteController) ListAll(ctx *gin.Context) {
	dispos, err := c.disponibiliteService.ListAll(ctx.Request.Context())
	if err != nil {
		handleRdvError(ctx, err, "Erreur chargement des disponibilités")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dispos,
	})
}
