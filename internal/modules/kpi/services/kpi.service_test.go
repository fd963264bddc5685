package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayload(t *testing.T) {
	mtbf := 42.0
	mttr := 3.0

	row := &dashboardRow{
		demandesTotal:          120,
		echantillonsTotal:      340,
		achevesDemandes:        80,
		achevesEchantillons:    200,
		encoursDemandes:        30,
		encoursEchantillons:    90,
		attenteConfirmation:    10,
		dureeMoyRealisationJ:   18,
		dureeMoyTraitementJ:    25,
		respectDelaisPct:       87,
		receptionAppareils:     45,
		receptionM2:            28.8,
		tauxDispoPct:           95,
		tauxOccupationPct:      72,
		nbPannes:               4,
		mttrJ:                  &mttr,
		mtbfJours:              &mtbf,
		arretProgrammeJours:    12,
		arretNonProgrammeJours: 6,
		planning: []byte(`[
			{"client":"ACME","marqueModele":"X100 v2","kg":12.5,"typeEssai":"CEM","date":"2026-04-01"},
			{"client":null,"marqueModele":null,"kg":null,"typeEssai":null,"date":"2026-03-28"}
		]`),
	}

	payload, err := buildPayload(row)
	require.NoError(t, err)

	assert.Equal(t, 120, payload.NombreTotal.Demandes)
	assert.Equal(t, 340, payload.NombreTotal.Echantillons)
	assert.Equal(t, 80, payload.Acheves.Demandes)
	assert.Equal(t, 30, payload.EnCours.Demandes)
	assert.Equal(t, 10, payload.AttenteConfirmation)
	assert.Equal(t, 18, payload.DureeMoyRealisationJ)
	assert.Equal(t, 87.0, payload.RespectDelaisPct)

	// Surface arrondie à une décimale, stockage retour à zéro
	assert.Equal(t, 28.8, payload.Reception.EspaceOccupeM2)
	assert.Equal(t, 0, payload.StockageRetour.Appareils)
	assert.Equal(t, 0.0, payload.StockageRetour.EspaceOccupeM2)

	require.NotNil(t, payload.MtbfJours)
	assert.Equal(t, 42.0, *payload.MtbfJours)
	require.NotNil(t, payload.MttrJours)
	assert.Equal(t, 3.0, *payload.MttrJours)

	// Agrégats alias des compteurs de demandes
	assert.Equal(t, 80, payload.AchevesAggregat)
	assert.Equal(t, 30, payload.EnCoursAggregat)

	require.Len(t, payload.Planning, 2)
	require.NotNil(t, payload.Planning[0].Client)
	assert.Equal(t, "ACME", *payload.Planning[0].Client)
	require.NotNil(t, payload.Planning[0].Kg)
	assert.Equal(t, 12.5, *payload.Planning[0].Kg)
	assert.Equal(t, "2026-04-01", payload.Planning[0].Date)
	assert.Nil(t, payload.Planning[1].Client)
}

func TestBuildPayload_NilMetrics(t *testing.T) {
	payload, err := buildPayload(&dashboardRow{planning: []byte(`[]`)})
	require.NoError(t, err)

	assert.Nil(t, payload.MtbfJours)
	assert.Nil(t, payload.MttrJours)
	assert.Empty(t, payload.Planning)
}

func TestBuildPayload_BadPlanning(t *testing.T) {
	_, err := buildPayload(&dashboardRow{planning: []byte(`{pas du json`)})
	assert.Error(t, err)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 28.8, round1(28.8000001))
	assert.Equal(t, 0.6, round1(0.64))
	assert.Equal(t, 0.0, round1(0))
}
