package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/mcoot/codenames/internal/api/response"
	"github.com/mcoot/codenames/internal/model"
)

const gridColumns = 5

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.RevealResponse:
		o.printReveal(v)
	case response.History:
		o.printHistory(v)
	case response.Health:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)

	switch {
	case g.GameOver:
		fmt.Fprintf(o.w, "Game over: %s wins (%s)\n", lo.FromPtr(g.Winner), g.EndReason)
	case g.Phase == string(model.PhaseGuessing):
		fmt.Fprintf(o.w, "Turn %d: %s guessing\n", g.TurnNumber+1, g.CurrentTeam)
		if g.Clue != nil {
			fmt.Fprintf(o.w, "Clue: %s %d\n", g.Clue.Word, g.Clue.Number)
		}
		fmt.Fprintf(o.w, "Guesses left: %d, time left: %s\n",
			g.GuessesRemaining, time.Duration(g.SecondsRemaining)*time.Second)
	default:
		fmt.Fprintf(o.w, "Turn %d: %s awaiting clue\n", g.TurnNumber+1, g.CurrentTeam)
		if g.ClueError != "" {
			fmt.Fprintf(o.w, "Clue request failed: %s (retry with \"game retry-clue\")\n", g.ClueError)
		}
	}

	scores := lo.Map(g.Scores, func(s response.Score, _ int) string {
		return fmt.Sprintf("%s %d/%d", s.Team, s.Revealed, s.Target)
	})
	fmt.Fprintf(o.w, "Score: %s, %d unrevealed\n\n", strings.Join(scores, "  "), g.Unrevealed)

	o.printBoard(g.Cells)
}

// printBoard prints the cells as a grid. Revealed cells carry the
// initial of their team.
func (o *Output) printBoard(cells []response.Cell) {
	if len(cells) == 0 {
		return
	}

	width := lo.Max(lo.Map(cells, func(c response.Cell, _ int) int { return len(c.Word) }))
	for _, row := range lo.Chunk(cells, gridColumns) {
		line := lo.Map(row, func(c response.Cell, _ int) string {
			marker := "   "
			if c.Revealed {
				marker = "[" + teamInitial(c.Team) + "]"
			}
			return fmt.Sprintf("%s %-*s", marker, width, c.Word)
		})
		fmt.Fprintln(o.w, strings.TrimRight(strings.Join(line, "  "), " "))
	}
}

func (o *Output) printReveal(r response.RevealResponse) {
	verdict := "wrong"
	if r.Correct {
		verdict = "correct"
	}
	fmt.Fprintf(o.w, "%s is %s (%s)\n", r.Word, r.CellTeam, verdict)

	switch {
	case r.GameOver:
		fmt.Fprintf(o.w, "Game over: %s wins\n", lo.FromPtr(r.Winner))
	case r.TurnEnded:
		fmt.Fprintf(o.w, "Turn over (%s), %s to play\n", r.TurnEndReason, r.Game.CurrentTeam)
	default:
		fmt.Fprintf(o.w, "Guesses left: %d\n", r.Game.GuessesRemaining)
	}
}

func (o *Output) printHistory(h response.History) {
	if len(h.Games) == 0 {
		fmt.Fprintln(o.w, "No completed games")
		return
	}
	for _, g := range h.Games {
		fmt.Fprintf(o.w, "%s  %s  %s wins (%s) after %d turns\n",
			g.CompletedAt.Format(time.DateTime), g.ID, g.Winner, g.EndReason, g.TurnsPlayed)
	}
}

func (o *Output) printHealth(h response.Health) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Game active: %t\n", h.GameActive)
	fmt.Fprintf(o.w, "Event clients: %d\n", h.Clients)
}

func teamInitial(team string) string {
	if team == string(model.TeamAssassin) {
		return "X"
	}
	if team == "" {
		return "?"
	}
	return team[:1]
}
