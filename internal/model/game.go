package model

import "time"

// GameID uniquely identifies a game session
type GameID string

// GameEndReason records how a session ended
type GameEndReason string

const (
	GameEndAllAgentsFound GameEndReason = "all_agents_found" // A team reached its target
	GameEndAssassin       GameEndReason = "assassin"         // Guessing team revealed the assassin
)

// GameSession is the aggregate for a single game.
// Only the game engine mutates it.
type GameSession struct {
	ID           GameID
	Board        *Board
	Turn         *TurnState
	StartingTeam Team

	// Liveness
	Active    bool
	Winner    Team // Empty while active
	EndReason GameEndReason

	CreatedAt time.Time
	EndedAt   time.Time
}

// NewGameSession creates an active session with the starting team awaiting a clue
func NewGameSession(id GameID, board *Board, startingTeam Team, now time.Time) *GameSession {
	return &GameSession{
		ID:           id,
		Board:        board,
		Turn:         NewTurnState(startingTeam, 0, now),
		StartingTeam: startingTeam,
		Active:       true,
		CreatedAt:    now,
	}
}

// TargetFor returns how many cells team must reveal to win
func (g *GameSession) TargetFor(team Team) int {
	return g.Board.TeamCount(team)
}

// WinningTeam returns the first playing team that has revealed all of
// its cells, or "" if neither has
func (g *GameSession) WinningTeam() Team {
	for _, team := range PlayingTeams() {
		if g.Board.RevealedCount(team) >= g.TargetFor(team) {
			return team
		}
	}
	return ""
}

// End marks the session finished
func (g *GameSession) End(winner Team, reason GameEndReason, now time.Time) {
	g.Active = false
	g.Winner = winner
	g.EndReason = reason
	g.EndedAt = now
	g.Turn.Finish()
}

// GameSummary is a lightweight record of a completed game
type GameSummary struct {
	ID           GameID
	StartingTeam Team
	Winner       Team
	EndReason    GameEndReason
	TurnsPlayed  int
	CreatedAt    time.Time
	CompletedAt  time.Time
}

// Summary builds the record for a finished session
func (g *GameSession) Summary() GameSummary {
	return GameSummary{
		ID:           g.ID,
		StartingTeam: g.StartingTeam,
		Winner:       g.Winner,
		EndReason:    g.EndReason,
		TurnsPlayed:  g.Turn.Number + 1,
		CreatedAt:    g.CreatedAt,
		CompletedAt:  g.EndedAt,
	}
}
