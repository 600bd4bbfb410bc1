package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTurnAwaitsClue(t *testing.T) {
	turn := NewTurnState(TeamRed, 0, time.Unix(0, 0))

	assert.Equal(t, PhaseAwaitingClue, turn.Phase)
	assert.Equal(t, 0, turn.GuessesRemaining)
	assert.Equal(t, TurnSeconds, turn.SecondsRemaining)
	assert.False(t, turn.IsGuessing())
}

func TestBeginGuessingAddsBonusGuess(t *testing.T) {
	turn := NewTurnState(TeamRed, 0, time.Unix(0, 0))
	turn.CluePending = true
	turn.ClueError = "previous failure"

	turn.BeginGuessing(Clue{Word: "OCEAN", Count: 2})

	assert.Equal(t, PhaseGuessing, turn.Phase)
	assert.Equal(t, 3, turn.GuessesRemaining)
	assert.False(t, turn.CluePending)
	assert.Empty(t, turn.ClueError)
	require.NotNil(t, turn.Clue)
	assert.Equal(t, "OCEAN", turn.Clue.Word)
}

func TestBeginGuessingZeroCountIsBonusOnly(t *testing.T) {
	turn := NewTurnState(TeamBlue, 0, time.Unix(0, 0))
	turn.BeginGuessing(Clue{Word: "OCEAN", Count: 0})
	assert.Equal(t, 1, turn.GuessesRemaining)
}

func TestSpendGuessReportsExhaustion(t *testing.T) {
	turn := NewTurnState(TeamRed, 0, time.Unix(0, 0))
	turn.BeginGuessing(Clue{Word: "OCEAN", Count: 1})

	assert.False(t, turn.SpendGuess())
	assert.True(t, turn.SpendGuess())
	assert.Equal(t, 0, turn.GuessesRemaining)

	// Clamped at zero
	assert.True(t, turn.SpendGuess())
	assert.Equal(t, 0, turn.GuessesRemaining)
}

func TestResetGuessesExhausts(t *testing.T) {
	turn := NewTurnState(TeamRed, 0, time.Unix(0, 0))
	turn.BeginGuessing(Clue{Word: "OCEAN", Count: 3})

	turn.ResetGuesses()
	assert.True(t, turn.Exhausted())
}

func TestExhaustedOnlyWhileGuessing(t *testing.T) {
	turn := NewTurnState(TeamRed, 0, time.Unix(0, 0))
	assert.False(t, turn.Exhausted())
}

func TestTickSecond(t *testing.T) {
	turn := NewTurnState(TeamRed, 0, time.Unix(0, 0))
	turn.SecondsRemaining = 2

	assert.False(t, turn.TickSecond())
	assert.True(t, turn.TickSecond())
	assert.True(t, turn.TickSecond())
	assert.Equal(t, 0, turn.SecondsRemaining)
}

func TestNextFlipsTeamAndNumber(t *testing.T) {
	turn := NewTurnState(TeamRed, 4, time.Unix(0, 0))
	turn.BeginGuessing(Clue{Word: "OCEAN", Count: 3})
	turn.SecondsRemaining = 12

	next := turn.Next(time.Unix(10, 0))

	assert.Equal(t, TeamBlue, next.Team)
	assert.Equal(t, 5, next.Number)
	assert.Equal(t, PhaseAwaitingClue, next.Phase)
	assert.Equal(t, 0, next.GuessesRemaining)
	assert.Equal(t, TurnSeconds, next.SecondsRemaining)
	assert.Nil(t, next.Clue)
}

func TestTeamOpponent(t *testing.T) {
	assert.Equal(t, TeamBlue, TeamRed.Opponent())
	assert.Equal(t, TeamRed, TeamBlue.Opponent())
	assert.True(t, TeamRed.IsPlaying())
	assert.False(t, TeamAssassin.IsPlaying())
}
