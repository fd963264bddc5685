package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cetime-core/internal/modules/rendezvous/dto"
)

func seedPending(t *testing.T, store *fakeStore, clientID int, dateRdv time.Time) int {
	t.Helper()
	id, err := store.InsertRendezVous(context.Background(), dto.RendezVous{
		ClientID:    clientID,
		DateRdv:     dateRdv,
		Duree:       60,
		Statut:      dto.StatutEnAttente,
		ClientName:  "Société ACME",
		ClientEmail: "contact@acme.tn",
	})
	require.NoError(t, err)
	return id
}

func TestLifecycle_AgentValider(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	service := NewLifecycleService(store, notifier)

	day := time.Date(2026, 4, 7, 10, 0, 0, 0, time.UTC)
	id := seedPending(t, store, 3, day)

	rdv, err := service.AgentValider(context.Background(), 10, id, DecisionValider)
	require.NoError(t, err)

	assert.Equal(t, dto.StatutValide, rdv.Statut)
	require.NotNil(t, rdv.AgentID)
	assert.Equal(t, 10, *rdv.AgentID)
	assert.Equal(t, []string{"contact@acme.tn"}, notifier.validations)
}

func TestLifecycle_AgentRefuser(t *testing.T) {
	store := newFakeStore()
	service := NewLifecycleService(store, &fakeNotifier{})

	id := seedPending(t, store, 3, time.Date(2026, 4, 7, 10, 0, 0, 0, time.UTC))

	rdv, err := service.AgentValider(context.Background(), 10, id, DecisionRefuser)
	require.NoError(t, err)
	assert.Equal(t, dto.StatutAnnule, rdv.Statut)
	assert.Nil(t, rdv.AgentID)
}

func TestLifecycle_AgentValider_InvalidDecision(t *testing.T) {
	service := NewLifecycleService(newFakeStore(), &fakeNotifier{})

	_, err := service.AgentValider(context.Background(), 10, 1, "peut-etre")
	var rdvErr *dto.RdvError
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "INVALID_DECISION", rdvErr.Code)
}

func TestLifecycle_AgentValider_AlreadyProcessed(t *testing.T) {
	store := newFakeStore()
	service := NewLifecycleService(store, &fakeNotifier{})

	day := time.Date(2026, 4, 7, 10, 0, 0, 0, time.UTC)
	id := seedPending(t, store, 3, day)

	_, err := service.AgentValider(context.Background(), 10, id, DecisionValider)
	require.NoError(t, err)

	// Deuxième décision sur la même demande
	_, err = service.AgentValider(context.Background(), 11, id, DecisionValider)
	var rdvErr *dto.RdvError
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "RDV_ALREADY_PROCESSED", rdvErr.Code)

	// Demande inexistante, même réponse
	_, err = service.AgentValider(context.Background(), 10, 9999, DecisionValider)
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "RDV_ALREADY_PROCESSED", rdvErr.Code)
}

func TestLifecycle_AgentValider_DayConflict(t *testing.T) {
	store := newFakeStore()
	service := NewLifecycleService(store, &fakeNotifier{})

	day := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	agent := 10
	_, err := store.InsertRendezVous(context.Background(), dto.RendezVous{
		ClientID: 99, AgentID: &agent, DateRdv: day.Add(9 * time.Hour), Duree: 30, Statut: dto.StatutValide,
	})
	require.NoError(t, err)

	id := seedPending(t, store, 3, day.Add(14*time.Hour))

	_, err = service.AgentValider(context.Background(), 10, id, DecisionValider)
	var rdvErr *dto.RdvError
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "AGENT_DAY_CONFLICT", rdvErr.Code)
}

func TestLifecycle_Reassign(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	service := NewLifecycleService(store, notifier)
	store.addContact(11, "Agent Mesures", "agent11@cetime.tn")

	day := time.Date(2026, 4, 7, 10, 0, 0, 0, time.UTC)
	id := seedPending(t, store, 3, day)

	rdv, err := service.Reassign(context.Background(), id, 11)
	require.NoError(t, err)

	// Une demande en attente est promue en validé
	assert.Equal(t, dto.StatutValide, rdv.Statut)
	require.NotNil(t, rdv.AgentID)
	assert.Equal(t, 11, *rdv.AgentID)
	assert.Equal(t, "Agent Mesures", rdv.AgentName)
	assert.Equal(t, []string{"contact@acme.tn"}, notifier.reassignments)
	assert.Equal(t, "Agent Mesures", notifier.lastReassignAgent)
}

func TestLifecycle_Reassign_Conflict(t *testing.T) {
	store := newFakeStore()
	service := NewLifecycleService(store, &fakeNotifier{})

	day := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	agent := 11
	_, err := store.InsertRendezVous(context.Background(), dto.RendezVous{
		ClientID: 99, AgentID: &agent, DateRdv: day.Add(9 * time.Hour), Duree: 30, Statut: dto.StatutValide,
	})
	require.NoError(t, err)

	id := seedPending(t, store, 3, day.Add(15*time.Hour))

	_, err = service.Reassign(context.Background(), id, 11)
	var rdvErr *dto.RdvError
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "AGENT_DAY_CONFLICT", rdvErr.Code)
}

func TestLifecycle_Reassign_NotFound(t *testing.T) {
	service := NewLifecycleService(newFakeStore(), &fakeNotifier{})

	_, err := service.Reassign(context.Background(), 404, 11)
	var rdvErr *dto.RdvError
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "RDV_NOT_FOUND", rdvErr.Code)
}

func TestLifecycle_ConfirmerEtAnnuler(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	service := NewLifecycleService(store, notifier)

	day := time.Date(2026, 4, 7, 10, 0, 0, 0, time.UTC)
	id := seedPending(t, store, 3, day)

	rdv, err := service.Confirmer(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, dto.StatutValide, rdv.Statut)
	assert.Equal(t, []string{"contact@acme.tn"}, notifier.confirmations)

	// Annulation possible depuis n'importe quel état
	rdv, err = service.Annuler(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, dto.StatutAnnule, rdv.Statut)
	assert.Equal(t, []string{"contact@acme.tn"}, notifier.cancellations)
}

func TestLifecycle_AucuneTransitionNeQuitteAnnule(t *testing.T) {
	store := newFakeStore()
	service := NewLifecycleService(store, &fakeNotifier{})

	day := time.Date(2026, 4, 7, 10, 0, 0, 0, time.UTC)
	id := seedPending(t, store, 3, day)

	_, err := service.Annuler(context.Background(), id)
	require.NoError(t, err)

	var rdvErr *dto.RdvError

	// La confirmation ne ressuscite pas un rendez-vous annulé
	_, err = service.Confirmer(context.Background(), id)
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "RDV_ALREADY_PROCESSED", rdvErr.Code)

	// La réaffectation non plus
	_, err = service.Reassign(context.Background(), id, 11)
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "RDV_ALREADY_PROCESSED", rdvErr.Code)

	rdv, err := store.GetRendezVous(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, dto.StatutAnnule, rdv.Statut)
	assert.Nil(t, rdv.AgentID)
}

func TestLifecycle_Confirmer_OnlyPending(t *testing.T) {
	store := newFakeStore()
	service := NewLifecycleService(store, &fakeNotifier{})

	day := time.Date(2026, 4, 7, 10, 0, 0, 0, time.UTC)
	id := seedPending(t, store, 3, day)

	_, err := service.Confirmer(context.Background(), id)
	require.NoError(t, err)

	// Déjà validé, une seconde confirmation est refusée
	_, err = service.Confirmer(context.Background(), id)
	var rdvErr *dto.RdvError
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "RDV_ALREADY_PROCESSED", rdvErr.Code)
}

func TestLifecycle_PendingForAgents(t *testing.T) {
	store := newFakeStore()
	service := NewLifecycleService(store, &fakeNotifier{})

	day := time.Date(2026, 4, 7, 10, 0, 0, 0, time.UTC)
	pendingID := seedPending(t, store, 3, day)

	agent := 10
	_, err := store.InsertRendezVous(context.Background(), dto.RendezVous{
		ClientID: 4, AgentID: &agent, DateRdv: day, Duree: 30, Statut: dto.StatutValide,
	})
	require.NoError(t, err)

	pending, err := service.PendingForAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, pendingID, pending[0].ID)
}

func TestLifecycle_AdminCalendar(t *testing.T) {
	store := newFakeStore()
	service := NewLifecycleService(store, &fakeNotifier{})

	day := time.Date(2026, 4, 7, 10, 0, 0, 0, time.UTC)
	agent := 10

	_, err := store.InsertRendezVous(context.Background(), dto.RendezVous{
		ClientID: 3, DateRdv: day, Duree: 60, Statut: dto.StatutEnAttente, ClientName: "Société ACME",
	})
	require.NoError(t, err)
	_, err = store.InsertRendezVous(context.Background(), dto.RendezVous{
		ClientID: 0, AgentID: &agent, AgentName: "Agent Essais",
		DateRdv: day.AddDate(0, 0, 1), Duree: 30, Statut: dto.StatutValide,
	})
	require.NoError(t, err)

	events, err := service.AdminCalendar(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	byTitle := map[string]dto.CalendarEvent{}
	for _, event := range events {
		byTitle[event.Title] = event
	}

	clientEvent, ok := byTitle["RDV Client: Société ACME"]
	require.True(t, ok)
	assert.Equal(t, dto.ColorEnAttente, clientEvent.BackgroundColor)
	assert.Equal(t, clientEvent.Start.Add(60*time.Minute), clientEvent.End)

	agentEvent, ok := byTitle["RDV Employé: Agent Essais"]
	require.True(t, ok)
	assert.Equal(t, dto.ColorValide, agentEvent.BackgroundColor)
}
