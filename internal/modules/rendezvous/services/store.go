package services

import (
	"context"
	"errors"
	"time"

	"cetime-core/internal/modules/rendezvous/dto"
)

var (
	// ErrNotFound signale un rendez-vous ou un créneau inexistant
	ErrNotFound = errors.New("enregistrement introuvable")

	// ErrDayConflict signale qu'un agent a déjà un rendez-vous validé
	// le même jour calendaire (index partiel rendezvous_agent_jour_valide_uniq)
	ErrDayConflict = errors.New("agent déjà occupé ce jour")
)

// Store abstrait la persistance du domaine rendez-vous.
// L'implémentation PostgreSQL traduit les violations de l'index
// partiel en ErrDayConflict et l'absence de ligne en ErrNotFound.
type Store interface {
	// Créneaux de disponibilité
	CreateDisponibilite(ctx context.Context, agentID int, start, end time.Time) (dto.Disponibilite, error)
	ListDisponibilitesByAgent(ctx context.Context, agentID int) ([]dto.Disponibilite, error)
	ListAllDisponibilites(ctx context.Context) ([]dto.Disponibilite, error)
	AgentHasWindowOnDay(ctx context.Context, agentID int, day time.Time) (bool, error)
	FindCoveringAgent(ctx context.Context, start, end time.Time) (*int, error)

	// Rendez-vous
	InsertRendezVous(ctx context.Context, rdv dto.RendezVous) (int, error)
	GetRendezVous(ctx context.Context, id int) (dto.RendezVous, error)
	UpdateStatutAgent(ctx context.Context, id int, statut string, agentID *int) error
	AgentHasConfirmedOnDay(ctx context.Context, agentID int, day time.Time, excludeRdvID int) (bool, error)

	// Listes
	ListByClient(ctx context.Context, clientID int) ([]dto.RendezVous, error)
	ListByAgent(ctx context.Context, agentID int) ([]dto.RendezVous, error)
	ListAll(ctx context.Context) ([]dto.RendezVous, error)
	ListPendingUnassigned(ctx context.Context) ([]dto.RendezVous, error)

	// Annuaire
	GetUserContact(ctx context.Context, userID int) (name string, email string, err error)
}
