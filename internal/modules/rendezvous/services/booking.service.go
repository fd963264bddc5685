package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cetime-core/internal/modules/rendezvous/dto"
)

// BookingService alloue les demandes de réservation des clients.
// Le premier créneau couvrant entier (par début croissant) désigne
// l'unique agent candidat; candidat déjà validé le même jour ou aucun
// créneau couvrant, la demande reste en attente sans agent, à traiter
// par un agent ou l'administrateur.
type BookingService struct {
	store    Store
	notifier Notifier
}

func NewBookingService(store Store, notifier Notifier) *BookingService {
	return &BookingService{
		store:    store,
		notifier: notifier,
	}
}

// Reserver traite une demande de réservation d'un client
func (s *BookingService) Reserver(ctx context.Context, clientID int, req dto.ReserverRequest) (*dto.ReserverResponse, error) {
	if req.DateRdv.IsZero() || req.Duree <= 0 {
		return nil, dto.NewRdvError("MISSING_REQUIRED_FIELDS", "Champs requis : dateRdv et duree", nil)
	}

	start := req.DateRdv
	end := start.Add(minutes(req.Duree))

	agentID, err := s.pickAgent(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rdv := dto.RendezVous{
		ClientID: clientID,
		DateRdv:  start,
		Duree:    req.Duree,
		Objet:    req.Objet,
		Notes:    req.Notes,
		Statut:   dto.StatutEnAttente,
	}
	if agentID != nil {
		rdv.AgentID = agentID
		rdv.Statut = dto.StatutValide
	}

	rdv.ID, err = s.store.InsertRendezVous(ctx, rdv)
	if errors.Is(err, ErrDayConflict) {
		// L'agent retenu a été validé entre-temps par une requête
		// concurrente, la demande retombe en attente
		rdv.AgentID = nil
		rdv.Statut = dto.StatutEnAttente
		rdv.ID, err = s.store.InsertRendezVous(ctx, rdv)
	}
	if err != nil {
		return nil, fmt.Errorf("erreur réservation: %w", err)
	}

	clientName, clientEmail, cerr := s.store.GetUserContact(ctx, clientID)
	if cerr != nil {
		clientName = "Client inconnu"
	}
	rdv.ClientName = clientName
	rdv.ClientEmail = clientEmail

	// Notifications après écriture, une seule tentative
	s.notifier.AdminNewReservation(clientName, rdv.DateRdv, rdv.Duree, rdv.Statut)
	if rdv.Statut == dto.StatutValide && clientEmail != "" {
		s.notifier.ClientConfirmation(clientEmail, clientName, rdv.DateRdv, rdv.Duree)
	}

	message := "Pas d'agent disponible, demande envoyée à l'administrateur"
	if rdv.Statut == dto.StatutValide {
		message = "Rendez-vous confirmé automatiquement avec un agent"
	}

	return &dto.ReserverResponse{Message: message, Rdv: rdv}, nil
}

// pickAgent retourne l'agent du premier créneau couvrant l'intervalle.
// Candidat unique: s'il a déjà un rendez-vous validé ce jour-là, la
// demande part sans agent, aucun autre créneau n'est considéré.
func (s *BookingService) pickAgent(ctx context.Context, start, end time.Time) (*int, error) {
	candidate, err := s.store.FindCoveringAgent(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("erreur recherche agent: %w", err)
	}
	if candidate == nil {
		return nil, nil
	}

	busy, err := s.store.AgentHasConfirmedOnDay(ctx, *candidate, start, 0)
	if err != nil {
		return nil, fmt.Errorf("erreur vérification agenda agent: %w", err)
	}
	if busy {
		return nil, nil
	}

	return candidate, nil
}

func minutes(d int) time.Duration {
	return time.Duration(d) * time.Minute
}
