package dto

import "time"

// Document est un fichier rattaché à une prestation, avec les champs
// dénormalisés conservés du schéma historique
type Document struct {
	ID             int       `json:"id"`
	PrestationID   int       `json:"prestationId"`
	Type           string    `json:"type"`
	OriginalName   string    `json:"nom"`
	FilePath       string    `json:"cheminFichier"`
	FileSize       int64     `json:"taille"`
	MimeType       string    `json:"mimeType"`
	PrestationName string    `json:"nom_projet,omitempty"`
	ClientName     string    `json:"client,omitempty"`
	UploadDate     time.Time `json:"dateUpload"`
}

// UploadMeta porte les métadonnées communes d'un envoi de fichiers
type UploadMeta struct {
	Type           string
	PrestationID   int
	PrestationName string
	ClientName     string
}

// BulkResponse est la réponse d'un envoi multi-fichiers
type BulkResponse struct {
	Count     int        `json:"count"`
	Documents []Document `json:"documents"`
}

// DocError représente les erreurs du domaine document
type DocError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *DocError) Error() string {
	return e.Message
}

// NewDocError crée une nouvelle erreur du domaine document
func NewDocError(code, message string, details map[string]interface{}) *DocError {
	return &DocError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
