package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cetime-core/internal/modules/rendezvous/dto"
)

func TestDisponibilite_Declare(t *testing.T) {
	store := newFakeStore()
	service := NewDisponibiliteService(store)

	day := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	dispo, err := service.Declare(context.Background(), 10, dto.DisponibiliteRequest{
		Start: day.Add(8 * time.Hour),
		End:   day.Add(17 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, dispo.AgentID)
	assert.NotZero(t, dispo.ID)
}

func TestDisponibilite_Declare_InvalidWindow(t *testing.T) {
	service := NewDisponibiliteService(newFakeStore())
	day := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)

	var rdvErr *dto.RdvError

	_, err := service.Declare(context.Background(), 10, dto.DisponibiliteRequest{End: day})
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", rdvErr.Code)

	_, err = service.Declare(context.Background(), 10, dto.DisponibiliteRequest{
		Start: day.Add(17 * time.Hour),
		End:   day.Add(8 * time.Hour),
	})
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "INVALID_WINDOW", rdvErr.Code)
}

func TestDisponibilite_AffecterByAdmin(t *testing.T) {
	store := newFakeStore()
	service := NewDisponibiliteService(store)
	day := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)

	dispo, err := service.AffecterByAdmin(context.Background(), dto.AffecterRequest{
		AgentID: 10,
		Start:   day.Add(8 * time.Hour),
		End:     day.Add(12 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, dispo.AgentID)

	// Un second créneau le même jour pour le même agent est refusé
	_, err = service.AffecterByAdmin(context.Background(), dto.AffecterRequest{
		AgentID: 10,
		Start:   day.Add(14 * time.Hour),
		End:     day.Add(17 * time.Hour),
	})
	var rdvErr *dto.RdvError
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "WINDOW_DAY_CONFLICT", rdvErr.Code)

	// Un autre agent reste libre de déclarer ce jour-là
	_, err = service.AffecterByAdmin(context.Background(), dto.AffecterRequest{
		AgentID: 11,
		Start:   day.Add(14 * time.Hour),
		End:     day.Add(17 * time.Hour),
	})
	assert.NoError(t, err)
}

func TestDisponibilite_AffecterByAdmin_MissingAgent(t *testing.T) {
	service := NewDisponibiliteService(newFakeStore())

	_, err := service.AffecterByAdmin(context.Background(), dto.AffecterRequest{
		Start: time.Now(),
		End:   time.Now().Add(time.Hour),
	})
	var rdvErr *dto.RdvError
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", rdvErr.Code)
}

func TestDisponibilite_ListByAgent_Access(t *testing.T) {
	store := newFakeStore()
	service := NewDisponibiliteService(store)
	day := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)

	_, err := store.CreateDisponibilite(context.Background(), 10, day.Add(8*time.Hour), day.Add(12*time.Hour))
	require.NoError(t, err)

	// L'agent consulte ses propres créneaux
	dispos, err := service.ListByAgent(context.Background(), 10, false, 10)
	require.NoError(t, err)
	assert.Len(t, dispos, 1)

	// L'administrateur consulte ceux de n'importe quel agent
	dispos, err = service.ListByAgent(context.Background(), 1, true, 10)
	require.NoError(t, err)
	assert.Len(t, dispos, 1)

	// Un autre agent est refusé
	_, err = service.ListByAgent(context.Background(), 11, false, 10)
	var rdvErr *dto.RdvError
	require.ErrorAs(t, err, &rdvErr)
	assert.Equal(t, "FORBIDDEN", rdvErr.Code)
}
