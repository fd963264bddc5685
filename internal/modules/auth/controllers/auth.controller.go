package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"cetime-core/internal/modules/auth/dto"
	"cetime-core/internal/modules/auth/services"
	authMiddleware "cetime-core/internal/shared/middleware/auth"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
}

// NewAuthController crée une nouvelle instance du contrôleur d'authentification
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login - POST /api/v1/auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Données de connexion invalides",
			"details": map[string]interface{}{
				"code":              "INVALID_REQUEST_FORMAT",
				"validation_errors": err.Error(),
			},
		})
		return
	}

	if strings.TrimSpace(req.LoginOrEmail) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Login ou email requis",
			"details": map[string]interface{}{
				"code": "IDENTIFIANT_REQUIRED",
			},
		})
		return
	}

	if strings.TrimSpace(req.Password) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Mot de passe requis",
			"details": map[string]interface{}{
				"code": "PASSWORD_REQUIRED",
			},
		})
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		c.handleAuthError(ctx, err, "Erreur interne lors de l'authentification")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// Register - POST /api/v1/auth/register
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Données d'inscription invalides",
			"details": map[string]interface{}{
				"code":              "INVALID_REQUEST_FORMAT",
				"validation_errors": err.Error(),
			},
		})
		return
	}

	if strings.TrimSpace(req.Login) == "" || strings.TrimSpace(req.Password) == "" ||
		strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Nom, email, login et mot de passe requis",
			"details": map[string]interface{}{
				"code": "MISSING_REQUIRED_FIELDS",
			},
		})
		return
	}

	if req.Role == "" {
		req.Role = services.RoleClient
	}

	result, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		c.handleAuthError(ctx, err, "Erreur interne lors de l'inscription")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetUser - GET /api/v1/users/:id
func (c *AuthController) GetUser(ctx *gin.Context) {
	targetID, ok := c.parseUserID(ctx)
	if !ok {
		return
	}

	requesterID := authMiddleware.CurrentUserID(ctx)
	requesterRole := authMiddleware.CurrentUserRole(ctx)

	if requesterID != targetID && requesterRole != services.RoleAdmin {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error": "Accès refusé",
			"details": map[string]interface{}{
				"code": "FORBIDDEN",
			},
		})
		return
	}

	result, err := c.authService.GetUserByID(ctx.Request.Context(), targetID)
	if err != nil {
		c.handleAuthError(ctx, err, "Erreur lors de la récupération de l'utilisateur")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// UpdateUser - PUT /api/v1/users/:id
func (c *AuthController) UpdateUser(ctx *gin.Context) {
	targetID, ok := c.parseUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Données de mise à jour invalides",
			"details": map[string]interface{}{
				"code":              "INVALID_REQUEST_FORMAT",
				"validation_errors": err.Error(),
			},
		})
		return
	}

	requesterID := authMiddleware.CurrentUserID(ctx)
	requesterRole := authMiddleware.CurrentUserRole(ctx)

	result, err := c.authService.UpdateUser(ctx.Request.Context(), targetID, req, requesterID, requesterRole)
	if err != nil {
		c.handleAuthError(ctx, err, "Erreur lors de la mise à jour de l'utilisateur")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetUserStats - GET /api/v1/users/stats
func (c *AuthController) GetUserStats(ctx *gin.Context) {
	result, err := c.authService.GetUserStats(ctx.Request.Context())
	if err != nil {
		c.handleAuthError(ctx, err, "Erreur lors de la récupération des statistiques")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetClients - GET /api/v1/clients
func (c *AuthController) GetClients(ctx *gin.Context) {
	result, err := c.authService.GetClients(ctx.Request.Context())
	if err != nil {
		c.handleAuthError(ctx, err, "Erreur lors de la récupération des clients")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

func (c *AuthController) parseUserID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Identifiant utilisateur invalide",
			"details": map[string]interface{}{
				"code": "INVALID_USER_ID",
			},
		})
		return 0, false
	}
	return id, true
}

// handleAuthError convertit les erreurs métier en statuts HTTP
func (c *AuthController) handleAuthError(ctx *gin.Context, err error, fallback string) {
	if authErr, ok := err.(*dto.AuthError); ok {
		var statusCode int
		switch authErr.Code {
		case "USER_NOT_FOUND":
			statusCode = http.StatusNotFound
		case "INVALID_PASSWORD":
			statusCode = http.StatusUnauthorized
		case "RATE_LIMIT_EXCEEDED":
			statusCode = http.StatusTooManyRequests
		case "LOGIN_TAKEN":
			statusCode = http.StatusConflict
		case "GROUP_NOT_FOUND":
			statusCode = http.StatusBadRequest
		case "FORBIDDEN":
			statusCode = http.StatusForbidden
		default:
			statusCode = http.StatusInternalServerError
		}

		details := authErr.Details
		if details == nil {
			details = map[string]interface{}{}
		}
		details["code"] = authErr.Code

		ctx.JSON(statusCode, gin.H{
			"error":   authErr.Message,
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
