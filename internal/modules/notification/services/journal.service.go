package services

import (
	"context"
	"fmt"

	"cetime-core/internal/infrastructure/database/mongodb"
	"cetime-core/internal/modules/notification/dto"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// JournalService persiste les tentatives d'envoi dans MongoDB
type JournalService struct {
	mongo *mongodb.Client
}

func NewJournalService(mongo *mongodb.Client) *JournalService {
	return &JournalService{mongo: mongo}
}

// Record enregistre une tentative d'envoi. L'échec d'écriture est
// remonté à l'appelant qui décide d'ignorer ou non.
func (s *JournalService) Record(ctx context.Context, entry dto.JournalEntry) error {
	_, err := s.mongo.Collection(mongodb.NotificationsCollection).InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("erreur journalisation notification: %w", err)
	}
	return nil
}

// List retourne les dernières tentatives, plus récentes en premier
func (s *JournalService) List(ctx context.Context, limit int64) ([]dto.JournalEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.mongo.Collection(mongodb.NotificationsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lecture journal notifications: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []dto.JournalEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("erreur décodage journal notifications: %w", err)
	}

	return entries, nil
}
