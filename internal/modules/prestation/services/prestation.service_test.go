package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cetime-core/internal/modules/prestation/dto"
)

func TestCreate_MissingNomProjet(t *testing.T) {
	service := &PrestationService{}

	var prestErr *dto.PrestError
	_, err := service.Create(context.Background(), dto.CreatePrestationRequest{NomProjet: "   "})
	require.ErrorAs(t, err, &prestErr)
	assert.Equal(t, "MISSING_NOM_PROJET", prestErr.Code)
}

func TestListByState_Validation(t *testing.T) {
	service := &PrestationService{}

	var prestErr *dto.PrestError

	_, err := service.ListByState(context.Background(), "", "", 1, 10)
	require.ErrorAs(t, err, &prestErr)
	assert.Equal(t, "MISSING_STATE", prestErr.Code)

	_, err = service.ListByState(context.Background(), "archived", "", 1, 10)
	require.ErrorAs(t, err, &prestErr)
	assert.Equal(t, "INVALID_STATE", prestErr.Code)
}

func TestAllowedStates(t *testing.T) {
	for _, state := range []string{"closed", "done", "open", "draft", "rejected"} {
		assert.True(t, dto.AllowedStates[state], state)
	}
	assert.False(t, dto.AllowedStates["archived"])
	assert.False(t, dto.AllowedStates[""])
}

func TestCountryMap(t *testing.T) {
	assert.Equal(t, 223, countryMap["tunisie"])
	assert.Equal(t, 223, countryMap["tunisia"])
	assert.Equal(t, 73, countryMap["france"])
	assert.Equal(t, 150, countryMap["maroc"])
	assert.Equal(t, 4, countryMap["algérie"])

	_, ok := countryMap["espagne"]
	assert.False(t, ok)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "", likePattern(""))
	assert.Equal(t, "", likePattern("   "))
	assert.Equal(t, "%essai%", likePattern("essai"))
	assert.Equal(t, "%essai cem%", likePattern("  essai cem "))
}
