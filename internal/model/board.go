package model

import (
	"iter"
	"strings"
)

// Board layout constants. These are fixed by the rules of the game.
const (
	BoardSize         = 25 // 5x5 grid
	StartingTeamCells = 9
	OtherTeamCells    = 8
	NeutralCells      = 7
	AssassinCells     = 1
)

// Cell is a single card on the board
type Cell struct {
	Word     string
	Team     Team // Fixed at generation
	Revealed bool // Only ever set to true
}

// Board is the ordered set of cells for one game
type Board struct {
	Cells []Cell // Board order, row-major over the 5x5 grid
	index map[string]int
}

// NewBoard creates a board from already-assigned cells.
// Words are normalized to upper case.
func NewBoard(cells []Cell) *Board {
	b := &Board{Cells: make([]Cell, len(cells))}
	for i, c := range cells {
		c.Word = NormalizeWord(c.Word)
		b.Cells[i] = c
	}
	b.reindex()
	return b
}

// NormalizeWord converts a word to the canonical board form
func NormalizeWord(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

func (b *Board) reindex() {
	b.index = make(map[string]int, len(b.Cells))
	for i, c := range b.Cells {
		b.index[c.Word] = i
	}
}

func (b *Board) find(word string) (int, error) {
	if b.index == nil {
		b.reindex()
	}
	i, ok := b.index[NormalizeWord(word)]
	if !ok {
		return -1, ErrUnknownWord
	}
	return i, nil
}

// Reveal marks the cell for word as revealed
func (b *Board) Reveal(word string) error {
	i, err := b.find(word)
	if err != nil {
		return err
	}
	if b.Cells[i].Revealed {
		return ErrAlreadyRevealed
	}
	b.Cells[i].Revealed = true
	return nil
}

// Cell returns a copy of the cell for word
func (b *Board) Cell(word string) (Cell, error) {
	i, err := b.find(word)
	if err != nil {
		return Cell{}, err
	}
	return b.Cells[i], nil
}

// TeamOf returns the team assigned to word
func (b *Board) TeamOf(word string) (Team, error) {
	c, err := b.Cell(word)
	if err != nil {
		return "", err
	}
	return c.Team, nil
}

// IsRevealed returns whether word has been revealed
func (b *Board) IsRevealed(word string) (bool, error) {
	c, err := b.Cell(word)
	if err != nil {
		return false, err
	}
	return c.Revealed, nil
}

// RevealedCount returns the number of revealed cells belonging to team
func (b *Board) RevealedCount(team Team) int {
	count := 0
	for _, c := range b.Cells {
		if c.Team == team && c.Revealed {
			count++
		}
	}
	return count
}

// TeamCount returns the number of cells belonging to team
func (b *Board) TeamCount(team Team) int {
	count := 0
	for _, c := range b.Cells {
		if c.Team == team {
			count++
		}
	}
	return count
}

// UnrevealedWords yields unrevealed words in board order.
// The sequence reads the board on every iteration, so it always
// reflects the current state.
func (b *Board) UnrevealedWords() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, c := range b.Cells {
			if c.Revealed {
				continue
			}
			if !yield(c.Word) {
				return
			}
		}
	}
}

// UnrevealedCount returns the number of face-down cells
func (b *Board) UnrevealedCount() int {
	count := 0
	for range b.UnrevealedWords() {
		count++
	}
	return count
}

// WordsOf returns all words assigned to team, in board order
func (b *Board) WordsOf(team Team) []string {
	var words []string
	for _, c := range b.Cells {
		if c.Team == team {
			words = append(words, c.Word)
		}
	}
	return words
}

// RevealedWords returns all revealed words, in board order
func (b *Board) RevealedWords() []string {
	var words []string
	for _, c := range b.Cells {
		if c.Revealed {
			words = append(words, c.Word)
		}
	}
	return words
}

// Assassin returns the assassin word, or "" if the board has none
func (b *Board) Assassin() string {
	for _, c := range b.Cells {
		if c.Team == TeamAssassin {
			return c.Word
		}
	}
	return ""
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	return NewBoard(b.Cells)
}
