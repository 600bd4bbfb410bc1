package response

import (
	"time"

	"github.com/samber/lo"

	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/services/game"
)

// Cell represents a board cell in API responses. Team is only set once
// the cell is revealed.
type Cell struct {
	Word     string `json:"word"`
	Team     string `json:"team,omitempty"`
	Revealed bool   `json:"revealed"`
}

// Clue represents a spymaster clue
type Clue struct {
	Word   string `json:"clue"`
	Number int    `json:"number"`
	Team   string `json:"team"`
}

// Score represents a team's progress toward its target
type Score struct {
	Team     string `json:"team"`
	Revealed int    `json:"revealed"`
	Target   int    `json:"target"`
}

// Game represents the live game state
type Game struct {
	ID               string  `json:"id"`
	Cells            []Cell  `json:"cells"`
	StartingTeam     string  `json:"starting_team"`
	CurrentTeam      string  `json:"current_team"`
	Phase            string  `json:"phase"`
	TurnNumber       int     `json:"turn_number"`
	GuessesRemaining int     `json:"guesses_remaining"`
	SecondsRemaining int     `json:"seconds_remaining"`
	Clue             *Clue   `json:"clue"`
	CluePending      bool    `json:"clue_pending"`
	ClueError        string  `json:"clue_error,omitempty"`
	Scores           []Score `json:"scores"`
	Unrevealed       int     `json:"unrevealed"`
	GameOver         bool    `json:"game_over"`
	Winner           *string `json:"winner"`
	EndReason        string  `json:"end_reason,omitempty"`
}

// GameFromSnapshot converts model.Snapshot
func GameFromSnapshot(s *model.Snapshot) Game {
	cells := lo.Map(s.Cells, func(c model.CellView, _ int) Cell {
		return Cell{Word: c.Word, Team: string(c.Team), Revealed: c.Revealed}
	})
	scores := lo.Map(s.Scores, func(sc model.TeamScore, _ int) Score {
		return Score{Team: string(sc.Team), Revealed: sc.Revealed, Target: sc.Target}
	})

	var clue *Clue
	if s.Clue != nil {
		clue = &Clue{Word: s.Clue.Word, Number: s.Clue.Count, Team: string(s.Clue.Team)}
	}

	var winner *string
	if s.Winner != "" {
		w := string(s.Winner)
		winner = &w
	}

	return Game{
		ID:               string(s.GameID),
		Cells:            cells,
		StartingTeam:     string(s.StartingTeam),
		CurrentTeam:      string(s.CurrentTeam),
		Phase:            string(s.Phase),
		TurnNumber:       s.TurnNumber,
		GuessesRemaining: s.GuessesRemaining,
		SecondsRemaining: s.SecondsRemaining,
		Clue:             clue,
		CluePending:      s.CluePending,
		ClueError:        s.ClueError,
		Scores:           scores,
		Unrevealed:       s.Unrevealed,
		GameOver:         s.GameOver,
		Winner:           winner,
		EndReason:        string(s.EndReason),
	}
}

// RevealResponse is the response after revealing a cell
type RevealResponse struct {
	Word          string  `json:"word"`
	CellTeam      string  `json:"cell_team"`
	Correct       bool    `json:"correct"`
	TurnEnded     bool    `json:"turn_ended"`
	TurnEndReason string  `json:"turn_end_reason,omitempty"`
	GameOver      bool    `json:"game_over"`
	Winner        *string `json:"winner,omitempty"`
	Game          Game    `json:"game"`
}

// RevealResponseFromResult converts game.RevealResult
func RevealResponseFromResult(r *game.RevealResult) RevealResponse {
	resp := RevealResponse{
		Word:          r.Word,
		CellTeam:      string(r.CellTeam),
		Correct:       r.Correct,
		TurnEnded:     r.TurnEnded,
		TurnEndReason: string(r.TurnEndReason),
		GameOver:      r.GameOver,
		Game:          GameFromSnapshot(r.Snapshot),
	}
	if r.Winner != "" {
		w := string(r.Winner)
		resp.Winner = &w
	}
	return resp
}

// GameSummary represents a completed game
type GameSummary struct {
	ID           string    `json:"id"`
	StartingTeam string    `json:"starting_team"`
	Winner       string    `json:"winner"`
	EndReason    string    `json:"end_reason"`
	TurnsPlayed  int       `json:"turns_played"`
	CreatedAt    time.Time `json:"created_at"`
	CompletedAt  time.Time `json:"completed_at"`
}

// GameSummaryFromModel converts model.GameSummary
func GameSummaryFromModel(g *model.GameSummary) GameSummary {
	return GameSummary{
		ID:           string(g.ID),
		StartingTeam: string(g.StartingTeam),
		Winner:       string(g.Winner),
		EndReason:    string(g.EndReason),
		TurnsPlayed:  g.TurnsPlayed,
		CreatedAt:    g.CreatedAt,
		CompletedAt:  g.CompletedAt,
	}
}

// History is the list of recently completed games, most recent first
type History struct {
	Games []GameSummary `json:"games"`
}

// HistoryFromModel converts a list of summaries
func HistoryFromModel(summaries []*model.GameSummary) History {
	return History{Games: lo.Map(summaries, func(g *model.GameSummary, _ int) GameSummary {
		return GameSummaryFromModel(g)
	})}
}

// Event is a published engine event as sent on the event stream
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    string    `json:"game_id"`
	Team      string    `json:"team,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	Game      *Game     `json:"game,omitempty"`
}

// EventFromModel converts model.Event
func EventFromModel(e model.Event) Event {
	resp := Event{
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		GameID:    string(e.GameID),
		Team:      string(e.Team),
		Payload:   e.Payload,
	}
	if e.Snapshot != nil {
		g := GameFromSnapshot(e.Snapshot)
		resp.Game = &g
	}
	return resp
}

// Health is the health check response
type Health struct {
	Status     string `json:"status"`
	GameActive bool   `json:"game_active"`
	Clients    int    `json:"clients"`
}
