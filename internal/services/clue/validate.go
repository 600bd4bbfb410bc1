package clue

import (
	"fmt"

	"github.com/mcoot/codenames/internal/model"
)

// Validate normalizes a clue and rejects ones the engine must not apply:
// an empty word, a negative count, or a word still face-down on the board.
// Counts above the team's face-down agents are clamped to that number.
func Validate(view model.BoardView, clue model.Clue) (model.Clue, error) {
	clue.Word = model.NormalizeWord(clue.Word)
	clue.Team = view.Team

	if clue.Word == "" {
		return model.Clue{}, fmt.Errorf("%w: empty clue word", model.ErrClueUnavailable)
	}
	if clue.Count < 0 {
		return model.Clue{}, fmt.Errorf("%w: negative count %d", model.ErrClueUnavailable, clue.Count)
	}
	if view.IsUnrevealedWord(clue.Word) {
		return model.Clue{}, fmt.Errorf("%w: %q is a word on the board", model.ErrClueUnavailable, clue.Word)
	}
	if remaining := len(view.Unrevealed(view.Team)); clue.Count > remaining {
		clue.Count = remaining
	}
	return clue, nil
}
