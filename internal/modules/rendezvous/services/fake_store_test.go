package services

import (
	"context"
	"time"

	"cetime-core/internal/modules/rendezvous/dto"
)

// fakeStore implémentation mémoire du Store pour les tests des services.
// Reproduit la sémantique de l'index partiel : une insertion ou une mise
// à jour qui donnerait deux rendez-vous validés au même agent le même
// jour retourne ErrDayConflict.
type fakeStore struct {
	dispos    []dto.Disponibilite
	rdvs      map[int]dto.RendezVous
	contacts  map[int][2]string
	nextDispo int
	nextRdv   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rdvs:     map[int]dto.RendezVous{},
		contacts: map[int][2]string{},
	}
}

func (f *fakeStore) addContact(userID int, name, email string) {
	f.contacts[userID] = [2]string{name, email}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (f *fakeStore) hasConfirmed(agentID int, day time.Time, excludeRdvID int) bool {
	for id, rdv := range f.rdvs {
		if id == excludeRdvID || rdv.Statut != dto.StatutValide || rdv.AgentID == nil {
			continue
		}
		if *rdv.AgentID == agentID && sameDay(rdv.DateRdv, day) {
			return true
		}
	}
	return false
}

func (f *fakeStore) CreateDisponibilite(ctx context.Context, agentID int, start, end time.Time) (dto.Disponibilite, error) {
	f.nextDispo++
	dispo := dto.Disponibilite{ID: f.nextDispo, AgentID: agentID, Start: start, End: end}
	f.dispos = append(f.dispos, dispo)
	return dispo, nil
}

func (f *fakeStore) ListDisponibilitesByAgent(ctx context.Context, agentID int) ([]dto.Disponibilite, error) {
	result := []dto.Disponibilite{}
	for _, dispo := range f.dispos {
		if dispo.AgentID == agentID {
			result = append(result, dispo)
		}
	}
	return result, nil
}

func (f *fakeStore) ListAllDisponibilites(ctx context.Context) ([]dto.Disponibilite, error) {
	return append([]dto.Disponibilite{}, f.dispos...), nil
}

func (f *fakeStore) AgentHasWindowOnDay(ctx context.Context, agentID int, day time.Time) (bool, error) {
	for _, dispo := range f.dispos {
		if dispo.AgentID == agentID && sameDay(dispo.Start, day) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) FindCoveringAgent(ctx context.Context, start, end time.Time) (*int, error) {
	var best *dto.Disponibilite
	for i := range f.dispos {
		dispo := f.dispos[i]
		if dispo.Start.After(start) || dispo.End.Before(end) {
			continue
		}
		if best == nil || dispo.Start.Before(best.Start) ||
			(dispo.Start.Equal(best.Start) && dispo.ID < best.ID) {
			best = &f.dispos[i]
		}
	}
	if best == nil {
		return nil, nil
	}
	agentID := best.AgentID
	return &agentID, nil
}

func (f *fakeStore) InsertRendezVous(ctx context.Context, rdv dto.RendezVous) (int, error) {
	if rdv.Statut == dto.StatutValide && rdv.AgentID != nil && f.hasConfirmed(*rdv.AgentID, rdv.DateRdv, 0) {
		return 0, ErrDayConflict
	}
	f.nextRdv++
	rdv.ID = f.nextRdv
	f.rdvs[rdv.ID] = rdv
	return rdv.ID, nil
}

func (f *fakeStore) GetRendezVous(ctx context.Context, id int) (dto.RendezVous, error) {
	rdv, ok := f.rdvs[id]
	if !ok {
		return dto.RendezVous{}, ErrNotFound
	}
	return rdv, nil
}

func (f *fakeStore) UpdateStatutAgent(ctx context.Context, id int, statut string, agentID *int) error {
	rdv, ok := f.rdvs[id]
	if !ok {
		return ErrNotFound
	}

	effective := rdv.AgentID
	if agentID != nil {
		effective = agentID
	}
	if statut == dto.StatutValide && effective != nil && f.hasConfirmed(*effective, rdv.DateRdv, id) {
		return ErrDayConflict
	}

	rdv.Statut = statut
	rdv.AgentID = effective
	f.rdvs[id] = rdv
	return nil
}

func (f *fakeStore) AgentHasConfirmedOnDay(ctx context.Context, agentID int, day time.Time, excludeRdvID int) (bool, error) {
	return f.hasConfirmed(agentID, day, excludeRdvID), nil
}

func (f *fakeStore) ListByClient(ctx context.Context, clientID int) ([]dto.RendezVous, error) {
	result := []dto.RendezVous{}
	for _, rdv := range f.rdvs {
		if rdv.ClientID == clientID {
			result = append(result, rdv)
		}
	}
	return result, nil
}

func (f *fakeStore) ListByAgent(ctx context.Context, agentID int) ([]dto.RendezVous, error) {
	result := []dto.RendezVous{}
	for _, rdv := range f.rdvs {
		if rdv.AgentID != nil && *rdv.AgentID == agentID {
			result = append(result, rdv)
		}
	}
	return result, nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]dto.RendezVous, error) {
	result := []dto.RendezVous{}
	for _, rdv := range f.rdvs {
		result = append(result, rdv)
	}
	return result, nil
}

func (f *fakeStore) ListPendingUnassigned(ctx context.Context) ([]dto.RendezVous, error) {
	result := []dto.RendezVous{}
	for _, rdv := range f.rdvs {
		if rdv.Statut == dto.StatutEnAttente && rdv.AgentID == nil {
			result = append(result, rdv)
		}
	}
	return result, nil
}

func (f *fakeStore) GetUserContact(ctx context.Context, userID int) (string, string, error) {
	contact, ok := f.contacts[userID]
	if !ok {
		return "", "", ErrNotFound
	}
	return contact[0], contact[1], nil
}

// fakeNotifier enregistre les notifications émises
type fakeNotifier struct {
	adminCalls        []string
	confirmations     []string
	validations       []string
	reassignments     []string
	cancellations     []string
	lastReassignAgent string
}

func (f *fakeNotifier) AdminNewReservation(clientName string, dateRdv time.Time, duree int, statut string) {
	f.adminCalls = append(f.adminCalls, statut)
}

func (f *fakeNotifier) ClientConfirmation(to, clientName string, dateRdv time.Time, duree int) {
	f.confirmations = append(f.confirmations, to)
}

func (f *fakeNotifier) ClientValidation(to, clientName string, dateRdv time.Time, duree int) {
	f.validations = append(f.validations, to)
}

func (f *fakeNotifier) ClientReassignment(to, clientName string, dateRdv time.Time, duree int, agentName string) {
	f.reassignments = append(f.reassignments, to)
	f.lastReassignAgent = agentName
}

func (f *fakeNotifier) ClientCancellation(to, clientName string, dateRdv time.Time, duree int) {
	f.cancellations = append(f.cancellations, to)
}
