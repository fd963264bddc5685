package dto

import "time"

// Statuts du cycle de vie d'un rendez-vous
const (
	StatutEnAttente = "en_attente"
	StatutValide    = "valide"
	StatutAnnule    = "annule"
)

// Couleurs du calendrier administrateur par statut
const (
	ColorEnAttente = "#ff9800"
	ColorValide    = "#4caf50"
	ColorAnnule    = "#f44336"
)

// RendezVous est la vue complète d'un rendez-vous avec les
// informations partner dénormalisées du client et de l'agent
type RendezVous struct {
	ID          int       `json:"id"`
	ClientID    int       `json:"clientId"`
	AgentID     *int      `json:"agentId"`
	DateRdv     time.Time `json:"dateRdv"`
	Duree       int       `json:"duree"`
	Statut      string    `json:"statut"`
	Objet       string    `json:"objet,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	ClientName  string    `json:"clientName,omitempty"`
	ClientEmail string    `json:"clientEmail,omitempty"`
	AgentName   string    `json:"agentName,omitempty"`
}

// Disponibilite est un créneau déclaré par un agent
type Disponibilite struct {
	ID      int       `json:"id"`
	AgentID int       `json:"agentId"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// ReserverRequest est la demande de réservation d'un client
type ReserverRequest struct {
	DateRdv time.Time `json:"dateRdv"`
	Duree   int       `json:"duree"`
	Objet   string    `json:"objet"`
	Notes   string    `json:"notes"`
}

// ReserverResponse retourne le rendez-vous créé et l'issue de l'allocation
type ReserverResponse struct {
	Message string     `json:"message"`
	Rdv     RendezVous `json:"rdv"`
}

// DecisionRequest porte la décision d'un agent sur une demande en attente
type DecisionRequest struct {
	Decision string `json:"decision"`
}

// ReassignRequest porte la réaffectation d'un rendez-vous par l'admin
type ReassignRequest struct {
	AgentID int `json:"agentId"`
}

// DisponibiliteRequest est la déclaration de créneau d'un agent
type DisponibiliteRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AffecterRequest est la création de créneau par l'administrateur
type AffecterRequest struct {
	AgentID int       `json:"agentId"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// CalendarEvent est l'événement formaté du calendrier administrateur
type CalendarEvent struct {
	ID              int       `json:"id"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Title           string    `json:"title"`
	Statut          string    `json:"statut"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
}

// RdvError représente les erreurs du domaine rendez-vous
type RdvError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *RdvError) Error() string {
	return e.Message
}

// NewRdvError crée une nouvelle erreur du domaine rendez-vous
func NewRdvError(code, message string, details map[string]interface{}) *RdvError {
	return &RdvError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
