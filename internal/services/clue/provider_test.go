package clue

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/codenames/internal/model"
)

func TestParseRiskMode(t *testing.T) {
	for input, want := range map[string]RiskMode{
		"":           RiskNormal,
		"safe":       RiskSafe,
		" Normal ":   RiskNormal,
		"AGGRESSIVE": RiskAggressive,
	} {
		got, err := ParseRiskMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseRiskMode("reckless")
	assert.Error(t, err)
}

func TestRequestMatchesExportShape(t *testing.T) {
	view := reveal(testView(model.TeamBlue), "SHARK")

	data, err := json.Marshal(NewRequest(view, RiskSafe))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "BLUE", decoded["team"])
	assert.Equal(t, "SAFE", decoded["risk"])
	assert.Equal(t, "SWORD", decoded["assassin"])
	assert.Equal(t, []any{"WHALE", "SHARK", "OCTOPUS"}, decoded["red_words"])
	assert.Equal(t, []any{"SHARK"}, decoded["revealed"])
}

func TestResponseToClue(t *testing.T) {
	clue, err := Response{Clue: "ocean", Number: 2}.ToClue(model.TeamRed)
	require.NoError(t, err)
	assert.Equal(t, model.Clue{Word: "ocean", Count: 2, Team: model.TeamRed}, clue)

	_, err = Response{Error: "model not loaded"}.ToClue(model.TeamRed)
	assert.ErrorIs(t, err, model.ErrClueUnavailable)
}

func TestValidate(t *testing.T) {
	view := reveal(testView(model.TeamRed), "WHALE")

	clue, err := Validate(view, model.Clue{Word: " ocean ", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, "OCEAN", clue.Word)
	assert.Equal(t, model.TeamRed, clue.Team)

	// Zero is a legal count
	_, err = Validate(view, model.Clue{Word: "OCEAN", Count: 0})
	assert.NoError(t, err)

	// Revealed board words are fair game
	_, err = Validate(view, model.Clue{Word: "whale", Count: 1})
	assert.NoError(t, err)
}

func TestValidateRejects(t *testing.T) {
	view := testView(model.TeamRed)

	for name, clue := range map[string]model.Clue{
		"empty word":     {Word: "  ", Count: 1},
		"negative count": {Word: "OCEAN", Count: -1},
		"board word":     {Word: "shark", Count: 1},
	} {
		_, err := Validate(view, clue)
		assert.ErrorIs(t, err, model.ErrClueUnavailable, name)
	}
}

func TestValidateClampsCountToRemainingAgents(t *testing.T) {
	view := reveal(testView(model.TeamRed), "WHALE")

	clue, err := Validate(view, model.Clue{Word: "OCEAN", Count: math.MaxInt})
	require.NoError(t, err)
	assert.Equal(t, 2, clue.Count)

	clue, err = Validate(view, model.Clue{Word: "OCEAN", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, clue.Count)
}
