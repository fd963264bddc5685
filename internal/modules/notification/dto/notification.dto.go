package dto

import "time"

// Statuts de livraison journalisés
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Types de destinataires
const (
	KindAdmin  = "admin"
	KindClient = "client"
)

// JournalEntry représente une tentative d'envoi journalisée dans MongoDB
type JournalEntry struct {
	Recipient string    `bson:"recipient" json:"recipient"`
	Subject   string    `bson:"subject" json:"subject"`
	Kind      string    `bson:"kind" json:"kind"`
	Status    string    `bson:"status" json:"status"`
	Error     string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
