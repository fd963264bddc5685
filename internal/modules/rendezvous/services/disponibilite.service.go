package services

import (
	"context"
	"time"

	"cetime-core/internal/modules/rendezvous/dto"
)

// DisponibiliteService gère les créneaux de disponibilité des agents
type DisponibiliteService struct {
	store Store
}

func NewDisponibiliteService(store Store) *DisponibiliteService {
	return &DisponibiliteService{store: store}
}

// Declare enregistre un créneau déclaré par un agent
func (s *DisponibiliteService) Declare(ctx context.Context, agentID int, req dto.DisponibiliteRequest) (*dto.Disponibilite, error) {
	if err := validateWindow(req.Start, req.End); err != nil {
		return nil, err
	}

	dispo, err := s.store.CreateDisponibilite(ctx, agentID, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	return &dispo, nil
}

// AffecterByAdmin crée un créneau pour un agent à l'initiative de
// l'administrateur. Refusé si l'agent a déjà un créneau ce jour-là.
func (s *DisponibiliteService) AffecterByAdmin(ctx context.Context, req dto.AffecterRequest) (*dto.Disponibilite, error) {
	if req.AgentID <= 0 {
		return nil, dto.NewRdvError("MISSING_REQUIRED_FIELDS", "Champs requis : agentId, start, end", nil)
	}
	if err := validateWindow(req.Start, req.End); err != nil {
		return nil, err
	}

	exists, err := s.store.AgentHasWindowOnDay(ctx, req.AgentID, req.Start)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, dto.NewRdvError("WINDOW_DAY_CONFLICT", "L'agent a déjà un créneau ce jour-là", nil)
	}

	dispo, err := s.store.CreateDisponibilite(ctx, req.AgentID, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	return &dispo, nil
}

// ListByAgent retourne les créneaux d'un agent, réservé à l'agent
// lui-même ou à un administrateur
func (s *DisponibiliteService) ListByAgent(ctx context.Context, requesterID int, isAdmin bool, agentID int) ([]dto.Disponibilite, error) {
	if !isAdmin && requesterID != agentID {
		return nil, dto.NewRdvError("FORBIDDEN", "Accès refusé", nil)
	}
	return s.store.ListDisponibilitesByAgent(ctx, agentID)
}

// ListAll retourne tous les créneaux déclarés
func (s *DisponibiliteService) ListAll(ctx context.Context) ([]dto.Disponibilite, error) {
	return s.store.ListAllDisponibilites(ctx)
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return dto.NewRdvError("MISSING_REQUIRED_FIELDS", "Champs requis : start et end", nil)
	}
	if !end.After(start) {
		return dto.NewRdvError("INVALID_WINDOW", "La fin du créneau doit être après son début", nil)
	}
	return nil
}
