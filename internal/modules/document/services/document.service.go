package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"cetime-core/internal/app/config"
	"cetime-core/internal/infrastructure/database/postgres"
	"cetime-core/internal/modules/document/dto"
	"cetime-core/internal/modules/document/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DocumentService stocke les fichiers sur disque sous un nom préfixé
// UUID et enregistre leurs métadonnées en base
type DocumentService struct {
	db      *postgres.Client
	storage config.StorageConfig
}

func NewDocumentService(db *postgres.Client, cfg *config.Config) *DocumentService {
	return &DocumentService{
		db:      db,
		storage: cfg.GetStorage(),
	}
}

// Upload enregistre un fichier unique et sa ligne documents
func (s *DocumentService) Upload(ctx context.Context, file *multipart.FileHeader, meta dto.UploadMeta) (*dto.Document, error) {
	if meta.Type == "" || meta.PrestationID <= 0 {
		return nil, dto.NewDocError("MISSING_REQUIRED_FIELDS",
			"Champs requis manquants : type ou prestationId.", nil)
	}
	if file == nil {
		return nil, dto.NewDocError("NO_FILE", "Aucun fichier reçu (champ 'file').", nil)
	}

	doc, err := s.saveOne(ctx, file, meta)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// UploadBulk enregistre plusieurs fichiers partageant les mêmes métadonnées
func (s *DocumentService) UploadBulk(ctx context.Context, files []*multipart.FileHeader, meta dto.UploadMeta) (*dto.BulkResponse, error) {
	if meta.PrestationID <= 0 {
		return nil, dto.NewDocError("MISSING_REQUIRED_FIELDS", "prestationId est requis.", nil)
	}
	if len(files) == 0 {
		return nil, dto.NewDocError("NO_FILE", "Aucun fichier reçu (champ 'files').", nil)
	}

	if meta.Type == "" {
		meta.Type = "document"
	}

	result := &dto.BulkResponse{Documents: []dto.Document{}}
	for _, file := range files {
		doc, err := s.saveOne(ctx, file, meta)
		if err != nil {
			return nil, err
		}
		result.Documents = append(result.Documents, *doc)
	}
	result.Count = len(result.Documents)

	return result, nil
}

// ListAll retourne tous les documents
func (s *DocumentService) ListAll(ctx context.Context) ([]dto.Document, error) {
	return s.list(ctx, queries.DocumentQueries.ListAll)
}

// GetByID retourne un document par identifiant
func (s *DocumentService) GetByID(ctx context.Context, id int) (*dto.Document, error) {
	row := s.db.QueryRow(ctx, queries.DocumentQueries.GetByID, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.NewDocError("DOCUMENT_NOT_FOUND", "Document non trouvé.", nil)
		}
		return nil, fmt.Errorf("erreur récupération document: %w", err)
	}

	return &doc, nil
}

// ListByPrestation retourne les documents d'une prestation, plus
// récents en premier
func (s *DocumentService) ListByPrestation(ctx context.Context, prestationID int) ([]dto.Document, error) {
	return s.list(ctx, queries.DocumentQueries.ListByPrestation, prestationID)
}

func (s *DocumentService) saveOne(ctx context.Context, file *multipart.FileHeader, meta dto.UploadMeta) (*dto.Document, error) {
	if s.storage.MaxUploadSize > 0 && file.Size > s.storage.MaxUploadSize {
		return nil, dto.NewDocError("FILE_TOO_LARGE", "Fichier trop volumineux.", map[string]interface{}{
			"max_bytes": s.storage.MaxUploadSize,
		})
	}

	path, err := s.writeFile(file)
	if err != nil {
		return nil, err
	}

	doc := dto.Document{
		PrestationID:   meta.PrestationID,
		Type:           meta.Type,
		OriginalName:   file.Filename,
		FilePath:       path,
		FileSize:       file.Size,
		MimeType:       file.Header.Get("Content-Type"),
		PrestationName: meta.PrestationName,
		ClientName:     meta.ClientName,
	}
	if doc.OriginalName == "" {
		doc.OriginalName = "Sans nom"
	}

	err = s.db.QueryRow(ctx, queries.DocumentQueries.Insert,
		doc.PrestationID, doc.Type, doc.OriginalName, doc.FilePath,
		doc.FileSize, doc.MimeType, doc.PrestationName, doc.ClientName).
		Scan(&doc.ID, &doc.UploadDate)
	if err != nil {
		// Fichier orphelin retiré du disque
		os.Remove(path)
		return nil, fmt.Errorf("erreur enregistrement document: %w", err)
	}

	return &doc, nil
}

// writeFile copie le fichier reçu sous un nom unique dans le
// répertoire de stockage
func (s *DocumentService) writeFile(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.storage.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("erreur création répertoire uploads: %w", err)
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename))
	path := filepath.Join(s.storage.UploadDir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("erreur ouverture fichier reçu: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("erreur création fichier: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("erreur écriture fichier: %w", err)
	}

	return path, nil
}

func (s *DocumentService) list(ctx context.Context, sql string, args ...interface{}) ([]dto.Document, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("erreur liste documents: %w", err)
	}
	defer rows.Close()

	docs := []dto.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("erreur lecture document: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func scanDocument(row pgx.Row) (dto.Document, error) {
	var doc dto.Document
	err := row.Scan(&doc.ID, &doc.PrestationID, &doc.Type, &doc.OriginalName,
		&doc.FilePath, &doc.FileSize, &doc.MimeType,
		&doc.PrestationName, &doc.ClientName, &doc.UploadDate)
	return doc, err
}
