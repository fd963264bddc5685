package controllers

import (
	"net/http"
	"strconv"

	"cetime-core/internal/modules/rendezvous/dto"
	"cetime-core/internal/modules/rendezvous/services"
	authMiddleware "cetime-core/internal/shared/middleware/auth"

	"github.com/gin-gonic/gin"
)

type RendezVousController struct {
	bookingService   *services.BookingService
	lifecycleService *services.LifecycleService
}

func NewRendezVousController(
	bookingService *services.BookingService,
	lifecycleService *services.LifecycleService,
) *RendezVousController {
	return &RendezVousController{
		bookingService:   bookingService,
		lifecycleService: lifecycleService,
	}
}

// Reserver - POST /api/v1/rendezvous/reserver
func (c *RendezVousController) Reserver(ctx *gin.Context) {
	var req dto.ReserverRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidFormat(ctx, err)
		return
	}

	clientID := authMiddleware.CurrentUserID(ctx)

	result, err := c.bookingService.Reserver(ctx.Request.Context(), clientID, req)
	if err != nil {
		handleRdvError(ctx, err, "Erreur lors de la réservation")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result,
	})
}

// ClientRdvs - GET /api/v1/rendezvous/client
func (c *RendezVousController) ClientRdvs(ctx *gin.Context) {
	clientID := authMiddleware.CurrentUserID(ctx)

	rdvs, err := c.lifecycleService.ClientRdvs(ctx.Request.Context(), clientID)
	if err != nil {
		handleRdvError(ctx, err, "Erreur chargement des rendez-vous")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rdvs,
	})
}

// AgentRdvs - GET /api/v1/rendezvous/agent/:agentId
func (c *RendezVousController) AgentRdvs(ctx *gin.Context) {
	agentID, ok := parseIDParam(ctx, "agentId")
	if !ok {
		return
	}

	rdvs, err := c.lifecycleService.AgentRdvs(ctx.Request.Context(), agentID)
	if err != nil {
		handleRdvError(ctx, err, "Erreur chargement des rendez-vous agent")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rdvs,
	})
}

// AdminCalendar - GET /api/v1/rendezvous/admin
func (c *RendezVousController) AdminCalendar(ctx *gin.Context) {
	events, err := c.lifecycleService.AdminCalendar(ctx.Request.Context())
	if err != nil {
		handleRdvError(ctx, err, "Erreur chargement du calendrier")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    events,
	})
}

// PendingValidation - GET /api/v1/rendezvous/pending-validation
func (c *RendezVousController) PendingValidation(ctx *gin.Context) {
	rdvs, err := c.lifecycleService.PendingForAgents(ctx.Request.Context())
	if err != nil {
		handleRdvError(ctx, err, "Erreur chargement des demandes en attente")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rdvs,
	})
}

// AgentValider - PUT /api/v1/rendezvous/agent/valider/:id
func (c *RendezVousController) AgentValider(ctx *gin.Context) {
	rdvID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidFormat(ctx, err)
		return
	}

	agentID := authMiddleware.CurrentUserID(ctx)

	rdv, err := c.lifecycleService.AgentValider(ctx.Request.Context(), agentID, rdvID, req.Decision)
	if err != nil {
		handleRdvError(ctx, err, "Erreur de validation")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rdv,
	})
}

// Reassign - PUT /api/v1/rendezvous/:id/reassign
func (c *RendezVousController) Reassign(ctx *gin.Context) {
	rdvID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReassignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidFormat(ctx, err)
		return
	}

	if req.AgentID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "agentId requis",
			"details": map[string]interface{}{
				"code": "MISSING_REQUIRED_FIELDS",
			},
		})
		return
	}

	rdv, err := c.lifecycleService.Reassign(ctx.Request.Context(), rdvID, req.AgentID)
	if err != nil {
		handleRdvError(ctx, err, "Erreur réaffectation")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rdv,
	})
}

// Confirmer - POST /api/v1/rendezvous/confirmer/:id
func (c *RendezVousController) Confirmer(ctx *gin.Context) {
	rdvID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	rdv, err := c.lifecycleService.Confirmer(ctx.Request.Context(), rdvID)
	if err != nil {
		handleRdvError(ctx, err, "Erreur lors de la confirmation")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rdv,
	})
}

// Annuler - PUT /api/v1/rendezvous/annuler/:id
func (c *RendezVousController) Annuler(ctx *gin.Context) {
	rdvID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	rdv, err := c.lifecycleService.Annuler(ctx.Request.Context(), rdvID)
	if err != nil {
		handleRdvError(ctx, err, "Erreur lors de l'annulation")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rdv,
	})
}

func parseIDParam(ctx *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(ctx.Param(name))
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

// handleRdvError convertit les erreurs métier en statuts HTTP
func handleRdvError(ctx *gin.Context, err error, fallback string) {
	if rdvErr, ok := err.(*dto.RdvError); ok {
		var statusCode int
		switch rdvErr.Code {
		case "MISSING_REQUIRED_FIELDS", "INVALID_WINDOW", "INVALID_DECISION":
			statusCode = http.StatusBadRequest
		case "FORBIDDEN":
			statusCode = http.StatusForbidden
		case "RDV_NOT_FOUND", "RDV_ALREADY_PROCESSED":
			statusCode = http.StatusNotFound
		case "AGENT_DAY_CONFLICT", "WINDOW_DAY_CONFLICT":
			statusCode = http.StatusConflict
		default:
			statusCode = http.StatusInternalServerError
		}

		details := rdvErr.Details
		if details == nil {
			details = map[string]interface{}{}
		}
		details["code"] = rdvErr.Code

		ctx.JSON(statusCode, gin.H{
			"error":   rdvErr.Message,
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
