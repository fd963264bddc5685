package controllers

import (
	"net/http"
	"strconv"

	"cetime-core/internal/modules/document/dto"
	"cetime-core/internal/modules/document/services"

	"github.com/gin-gonic/gin"
)

type DocumentController struct {
	documentService *services.DocumentService
}

func NewDocumentController(documentService *services.DocumentService) *DocumentController {
	return &DocumentController{
		documentService: documentService,
	}
}

// Upload - POST /api/v1/documents/document (multipart, champ 'file')
func (c *DocumentController) Upload(ctx *gin.Context) {
	meta := c.readMeta(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		file = nil
	}

	doc, err := c.documentService.Upload(ctx.Request.Context(), file, meta)
	if err != nil {
		handleDocError(ctx, err, "Erreur lors de la création du document")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    doc,
	})
}

// UploadBulk - POST /api/v1/documents/document/bulk (multipart, champ 'files')
func (c *DocumentController) UploadBulk(ctx *gin.Context) {
	meta := c.readMeta(ctx)

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Formulaire multipart invalide",
			"details": map[string]interface{}{
				"code": "INVALID_MULTIPART",
			},
		})
		return
	}

	result, err := c.documentService.UploadBulk(ctx.Request.Context(), form.File["files"], meta)
	if err != nil {
		handleDocError(ctx, err, "Erreur lors de la création des documents")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result,
	})
}

// ListAll - GET /api/v1/documents
func (c *DocumentController) ListAll(ctx *gin.Context) {
	docs, err := c.documentService.ListAll(ctx.Request.Context())
	if err != nil {
		handleDocError(ctx, err, "Erreur lors de la récupération des documents")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    docs,
	})
}

// GetByID - GET /api/v1/documents/:id
func (c *DocumentController) GetByID(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Identifiant invalide",
			"details": map[string]interface{}{
				"code": "INVALID_ID",
			},
		})
		return
	}

	doc, err := c.documentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		handleDocError(ctx, err, "Erreur lors de la récupération du document")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    doc,
	})
}

// ListByPrestation - GET /api/v1/documents/byPrestation/:prestationId
func (c *DocumentController) ListByPrestation(ctx *gin.Context) {
	prestationID, err := strconv.Atoi(ctx.Param("prestationId"))
	if err != nil || prestationID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Identifiant de prestation invalide",
			"details": map[string]interface{}{
				"code": "INVALID_ID",
			},
		})
		return
	}

	docs, err := c.documentService.ListByPrestation(ctx.Request.Context(), prestationID)
	if err != nil {
		handleDocError(ctx, err, "Erreur récupération documents par prestation")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    docs,
	})
}

func (c *DocumentController) readMeta(ctx *gin.Context) dto.UploadMeta {
	prestationID, _ := strconv.Atoi(ctx.PostForm("prestationId"))
	return dto.UploadMeta{
		Type:           ctx.PostForm("type"),
		PrestationID:   prestationID,
		PrestationName: ctx.PostForm("nom_projet"),
		ClientName:     ctx.PostForm("client"),
	}
}

// handleDocError convertit les erreurs métier en statuts HTTP
func handleDocError(ctx *gin.Context, err error, fallback string) {
	if docErr, ok := err.(*dto.DocError); ok {
		var statusCode int
		switch docErr.Code {
		case "MISSING_REQUIRED_FIELDS", "NO_FILE", "FILE_TOO_LARGE", "INVALID_MULTIPART":
			statusCode = http.StatusBadRequest
		case "DOCUMENT_NOT_FOUND":
			statusCode = http.StatusNotFound
		default:
			statusCode = http.StatusInternalServerError
		}

		details := docErr.Details
		if details == nil {
			details = map[string]interface{}{}
		}
		details["code"] = docErr.Code

		ctx.JSON(statusCode, gin.H{
			"error":   docErr.Message,
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
