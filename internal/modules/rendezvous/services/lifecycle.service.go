package services

import (
	"context"
	"errors"
	"fmt"

	"cetime-core/internal/modules/rendezvous/dto"
)

// Décisions acceptées sur une demande en attente
const (
	DecisionValider = "valider"
	DecisionRefuser = "refuser"
)

// LifecycleService gère les transitions d'état des rendez-vous
// après leur création: validation agent, réaffectation, confirmation
// et annulation administrateur.
type LifecycleService struct {
	store    Store
	notifier Notifier
}

func NewLifecycleService(store Store, notifier Notifier) *LifecycleService {
	return &LifecycleService{
		store:    store,
		notifier: notifier,
	}
}

// AgentValider applique la décision d'un agent sur une demande en attente.
// Seules les demandes en_attente sans agent sont traitables, toute autre
// cible répond introuvable.
func (s *LifecycleService) AgentValider(ctx context.Context, agentID, rdvID int, decision string) (*dto.RendezVous, error) {
	if decision != DecisionValider && decision != DecisionRefuser {
		return nil, dto.NewRdvError("INVALID_DECISION", "Décision invalide", map[string]interface{}{
			"valid_decisions": []string{DecisionValider, DecisionRefuser},
		})
	}

	rdv, err := s.store.GetRendezVous(ctx, rdvID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errRdvDejaTraite()
		}
		return nil, err
	}
	if rdv.Statut != dto.StatutEnAttente || rdv.AgentID != nil {
		return nil, errRdvDejaTraite()
	}

	if decision == DecisionRefuser {
		if err := s.store.UpdateStatutAgent(ctx, rdvID, dto.StatutAnnule, nil); err != nil {
			return nil, err
		}
		rdv.Statut = dto.StatutAnnule
		return &rdv, nil
	}

	busy, err := s.store.AgentHasConfirmedOnDay(ctx, agentID, rdv.DateRdv, rdvID)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, errAgentOccupe()
	}

	if err := s.store.UpdateStatutAgent(ctx, rdvID, dto.StatutValide, &agentID); err != nil {
		if errors.Is(err, ErrDayConflict) {
			return nil, errAgentOccupe()
		}
		return nil, err
	}

	rdv.Statut = dto.StatutValide
	rdv.AgentID = &agentID

	if rdv.ClientEmail != "" {
		s.notifier.ClientValidation(rdv.ClientEmail, clientDisplayName(rdv), rdv.DateRdv, rdv.Duree)
	}

	return &rdv, nil
}

// Reassign change l'agent d'un rendez-vous et promeut une demande en
// attente en rendez-vous validé. Un rendez-vous annulé n'est pas
// réaffectable. Le client est notifié avec le nom du nouvel agent.
func (s *LifecycleService) Reassign(ctx context.Context, rdvID, newAgentID int) (*dto.RendezVous, error) {
	rdv, err := s.store.GetRendezVous(ctx, rdvID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, dto.NewRdvError("RDV_NOT_FOUND", "Rendez-vous non trouvé", nil)
		}
		return nil, err
	}
	if rdv.Statut == dto.StatutAnnule {
		return nil, errRdvDejaTraite()
	}

	busy, err := s.store.AgentHasConfirmedOnDay(ctx, newAgentID, rdv.DateRdv, rdvID)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, errAgentOccupe()
	}

	statut := rdv.Statut
	if statut == dto.StatutEnAttente {
		statut = dto.StatutValide
	}

	if err := s.store.UpdateStatutAgent(ctx, rdvID, statut, &newAgentID); err != nil {
		if errors.Is(err, ErrDayConflict) {
			return nil, errAgentOccupe()
		}
		return nil, err
	}

	rdv.Statut = statut
	rdv.AgentID = &newAgentID

	agentName, _, err := s.store.GetUserContact(ctx, newAgentID)
	if err != nil {
		agentName = ""
	}
	rdv.AgentName = agentName

	if rdv.ClientEmail != "" {
		s.notifier.ClientReassignment(rdv.ClientEmail, clientDisplayName(rdv), rdv.DateRdv, rdv.Duree, agentName)
	}

	return &rdv, nil
}

// Confirmer valide une demande en attente sans passer par un agent.
// Seules les demandes en_attente sont confirmables, aucune transition
// ne quitte annule. Le conflit de jour éventuel de l'agent déjà
// affecté est laissé à l'index d'unicité.
func (s *LifecycleService) Confirmer(ctx context.Context, rdvID int) (*dto.RendezVous, error) {
	rdv, err := s.store.GetRendezVous(ctx, rdvID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, dto.NewRdvError("RDV_NOT_FOUND", "Rendez-vous non trouvé", nil)
		}
		return nil, err
	}
	if rdv.Statut != dto.StatutEnAttente {
		return nil, errRdvDejaTraite()
	}

	if err := s.store.UpdateStatutAgent(ctx, rdvID, dto.StatutValide, nil); err != nil {
		if errors.Is(err, ErrDayConflict) {
			return nil, errAgentOccupe()
		}
		return nil, err
	}

	rdv.Statut = dto.StatutValide

	if rdv.ClientEmail != "" {
		s.notifier.ClientConfirmation(rdv.ClientEmail, clientDisplayName(rdv), rdv.DateRdv, rdv.Duree)
	}

	return &rdv, nil
}

// Annuler passe un rendez-vous en statut annulé depuis n'importe quel
// état. Aucune transition ne quitte annule.
func (s *LifecycleService) Annuler(ctx context.Context, rdvID int) (*dto.RendezVous, error) {
	rdv, err := s.store.GetRendezVous(ctx, rdvID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, dto.NewRdvError("RDV_NOT_FOUND", "Rendez-vous non trouvé", nil)
		}
		return nil, err
	}

	if err := s.store.UpdateStatutAgent(ctx, rdvID, dto.StatutAnnule, nil); err != nil {
		return nil, err
	}

	rdv.Statut = dto.StatutAnnule

	if rdv.ClientEmail != "" {
		s.notifier.ClientCancellation(rdv.ClientEmail, clientDisplayName(rdv), rdv.DateRdv, rdv.Duree)
	}

	return &rdv, nil
}

// ClientRdvs liste les rendez-vous d'un client
func (s *LifecycleService) ClientRdvs(ctx context.Context, clientID int) ([]dto.RendezVous, error) {
	return s.store.ListByClient(ctx, clientID)
}

// AgentRdvs liste les rendez-vous affectés à un agent
func (s *LifecycleService) AgentRdvs(ctx context.Context, agentID int) ([]dto.RendezVous, error) {
	return s.store.ListByAgent(ctx, agentID)
}

// PendingForAgents liste les demandes en attente sans agent
func (s *LifecycleService) PendingForAgents(ctx context.Context) ([]dto.RendezVous, error) {
	return s.store.ListPendingUnassigned(ctx)
}

// AdminCalendar formate tous les rendez-vous en événements calendrier
// colorés par statut
func (s *LifecycleService) AdminCalendar(ctx context.Context) ([]dto.CalendarEvent, error) {
	rdvs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]dto.CalendarEvent, 0, len(rdvs))
	for _, rdv := range rdvs {
		color := dto.ColorEnAttente
		switch rdv.Statut {
		case dto.StatutValide:
			color = dto.ColorValide
		case dto.StatutAnnule:
			color = dto.ColorAnnule
		}

		title := fmt.Sprintf("RDV Client: %s", clientDisplayName(rdv))
		if rdv.ClientID == 0 {
			agentName := rdv.AgentName
			if agentName == "" {
				agentName = "Inconnu"
			}
			title = fmt.Sprintf("RDV Employé: %s", agentName)
		}

		events = append(events, dto.CalendarEvent{
			ID:              rdv.ID,
			Start:           rdv.DateRdv,
			End:             rdv.DateRdv.Add(minutes(rdv.Duree)),
			Title:           title,
			Statut:          rdv.Statut,
			BackgroundColor: color,
			BorderColor:     color,
		})
	}

	return events, nil
}

func clientDisplayName(rdv dto.RendezVous) string {
	if rdv.ClientName == "" {
		return "Client"
	}
	return rdv.ClientName
}

func errRdvDejaTraite() *dto.RdvError {
	return dto.NewRdvError("RDV_ALREADY_PROCESSED", "RDV introuvable ou déjà traité", nil)
}

func errAgentOccupe() *dto.RdvError {
	return dto.NewRdvError("AGENT_DAY_CONFLICT", "L'agent a déjà un rendez-vous validé ce jour-là", nil)
}
