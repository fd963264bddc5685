package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cetime-core/internal/modules/rendezvous/dto"
)

func window(day time.Time, fromHour, toHour int) (time.Time, time.Time) {
	return day.Add(time.Duration(fromHour) * time.Hour), day.Add(time.Duration(toHour) * time.Hour)
}

func TestBooking_AutoConfirmWithCoveringAgent(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	service := NewBookingService(store, notifier)

	day := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	start, end := window(day, 8, 17)
	_, err := store.CreateDisponibilite(context.Background(), 10, start, end)
	require.NoError(t, err)
	store.addContact(3, "Société ACME", "contact@acme.tn")

	resp, err := service.Reserver(context.Background(), 3, dto.ReserverRequest{
		DateRdv: day.Add(10 * time.Hour),
		Duree:   60,
		Objet:   "Essai CEM",
	})
	require.NoError(t, err)

	assert.Equal(t, dto.StatutValide, resp.Rdv.Statut)
	require.NotNil(t, resp.Rdv.AgentID)
	assert.Equal(t, 10, *resp.Rdv.AgentID)
	assert.Equal(t, "Rendez-vous confirmé automatiquement avec un agent", resp.Message)

	// Admin notifié dans tous les cas, client notifié car confirmé
	assert.Equal(t, []string{dto.StatutValide}, notifier.adminCalls)
	assert.Equal(t, []string{"contact@acme.tn"}, notifier.confirmations)
}

func TestBooking_PendingWhenNoAgentCovers(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	service := NewBookingService(store, notifier)

	day := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	// Créneau trop court pour couvrir l'intervalle demandé
	_, err := store.CreateDisponibilite(context.Background(), 10, day.Add(8*time.Hour), day.Add(9*time.Hour))
	require.NoError(t, err)
	store.addContact(3, "Société ACME", "contact@acme.tn")

	resp, err := service.Reserver(context.Background(), 3, dto.ReserverRequest{
		DateRdv: day.Add(10 * time.Hour),
		Duree:   60,
	})
	require.NoError(t, err)

	assert.Equal(t, dto.StatutEnAttente, resp.Rdv.Statut)
	assert.Nil(t, resp.Rdv.AgentID)
	assert.Equal(t, "Pas d'agent disponible, demande envoyée à l'administrateur", resp.Message)

	assert.Equal(t, []string{dto.StatutEnAttente}, notifier.adminCalls)
	assert.Empty(t, notifier.confirmations)
}

func TestBooking_PendingWhenCandidateConfirmedSameDay(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	service := NewBookingService(store, notifier)

	day := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	start, end := window(day, 8, 17)
	_, err := store.CreateDisponibilite(context.Background(), 10, start, end)
	require.NoError(t, err)
	// Un autre agent couvre aussi l'intervalle mais n'est jamais considéré:
	// seul le premier créneau couvrant désigne le candidat
	_, err = store.CreateDisponibilite(context.Background(), 11, day.Add(9*time.Hour), end)
	require.NoError(t, err)
	store.addContact(3, "Société ACME", "contact@acme.tn")

	// Le candidat a déjà un rendez-vous validé ce jour-là
	agent := 10
	_, err = store.InsertRendezVous(context.Background(), dto.RendezVous{
		ClientID: 99, AgentID: &agent, DateRdv: day.Add(9 * time.Hour), Duree: 30, Statut: dto.StatutValide,
	})
	require.NoError(t, err)

	resp, err := service.Reserver(context.Background(), 3, dto.ReserverRequest{
		DateRdv: day.Add(14 * time.Hour),
		Duree:   60,
	})
	require.NoError(t, err)

	assert.Equal(t, dto.StatutEnAttente, resp.Rdv.Statut)
	assert.Nil(t, resp.Rdv.AgentID)
	assert.Equal(t, "Pas d'agent disponible, demande envoyée à l'administrateur", resp.Message)
}

func TestBooking_EarliestWindowDesignatesCandidate(t *testing.T) {
	store := newFakeStore()
	service := NewBookingService(store, &fakeNotifier{})

	day := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	// L'agent 20 commence plus tôt que l'agent 5: le candidat suit
	// l'ordre des débuts de créneaux, pas celui des identifiants
	_, err := store.CreateDisponibilite(context.Background(), 5, day.Add(9*time.Hour), day.Add(17*time.Hour))
	require.NoError(t, err)
	_, err = store.CreateDisponibilite(context.Background(), 20, day.Add(8*time.Hour), day.Add(17*time.Hour))
	require.NoError(t, err)
	store.addContact(3, "Société ACME", "contact@acme.tn")

	resp, err := service.Reserver(context.Background(), 3, dto.ReserverRequest{
		DateRdv: day.Add(10 * time.Hour),
		Duree:   60,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Rdv.AgentID)
	assert.Equal(t, 20, *resp.Rdv.AgentID)
	assert.Equal(t, dto.StatutValide, resp.Rdv.Statut)
}

func TestBooking_UnknownClientContact(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	service := NewBookingService(store, notifier)

	resp, err := service.Reserver(context.Background(), 404, dto.ReserverRequest{
		DateRdv: time.Date(2026, 4, 7, 10, 0, 0, 0, time.UTC),
		Duree:   30,
	})
	require.NoError(t, err)

	assert.Equal(t, "Client inconnu", resp.Rdv.ClientName)
	assert.Equal(t, dto.StatutEnAttente, resp.Rdv.Statut)
}

func TestBooking_MissingFields(t *testing.T) {
	service := NewBookingService(newFakeStore(), &fakeNotifier{})

	_, err := service.Reserver(context.Background(), 3, dto.ReserverRequest{Duree: 30})
	var rdvErr *dto.RdvError
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", rdvErr.Code)

	_, err = service.Reserver(context.Background(), 3, dto.ReserverRequest{
		DateRdv: time.Now(), Duree: 0,
	})
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", rdvErr.Code)
}
