package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationsCollection nom de la collection journal des notifications
const NotificationsCollection = "notifications"

type CollectionManager struct {
	client *Client
}

func NewCollectionManager(client *Client) *CollectionManager {
	return &CollectionManager{client: client}
}

// CreateNotificationsCollection prépare le journal des notifications mail
func (cm *CollectionManager) CreateNotificationsCollection(ctx context.Context) error {
	exists, err := cm.CollectionExists(ctx, NotificationsCollection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	// Schéma de validation du journal d'envoi
	validator := bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"recipient", "subject", "status", "created_at"},
			"properties": bson.M{
				"recipient": bson.M{
					"bsonType":    "string",
					"description": "Adresse du destinataire",
				},
				"subject": bson.M{
					"bsonType":    "string",
					"description": "Sujet du courriel",
				},
				"kind": bson.M{
					"bsonType":    "string",
					"description": "Type de notification (admin, client)",
				},
				"status": bson.M{
					"enum":        []string{"sent", "failed"},
					"description": "Résultat de la tentative d'envoi",
				},
				"error": bson.M{
					"bsonType":    "string",
					"description": "Message d'erreur si l'envoi a échoué",
				},
				"created_at": bson.M{
					"bsonType":    "date",
					"description": "Date de la tentative",
				},
			},
		},
	}

	opts := options.CreateCollection().SetValidator(validator)

	if err := cm.client.CreateCollection(ctx, NotificationsCollection, opts); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", NotificationsCollection, err)
	}

	// Index destinataire + date pour la consultation du journal
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "recipient", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	return cm.client.CreateIndexes(ctx, NotificationsCollection, indexes)
}

func (cm *CollectionManager) ListCollections(ctx context.Context) ([]string, error) {
	return cm.client.ListCollectionNames(ctx)
}

func (cm *CollectionManager) CollectionExists(ctx context.Context, name string) (bool, error) {
	collections, err := cm.client.ListCollectionNames(ctx)
	if err != nil {
		return false, err
	}

	for _, coll := range collections {
		if coll == name {
			return true, nil
		}
	}
	return false, nil
}

func (cm *CollectionManager) DropCollection(ctx context.Context, name string) error {
	return cm.client.DropCollection(ctx, name)
}
