package model

// CellView is a renderer's view of a cell: the team is only
// visible once the cell is revealed
type CellView struct {
	Word     string
	Team     Team // Empty until revealed
	Revealed bool
}

// TeamScore is revealed progress toward a team's target
type TeamScore struct {
	Team     Team
	Revealed int
	Target   int
}

// Snapshot is a read-only copy of a session for rendering
type Snapshot struct {
	GameID       GameID
	Cells        []CellView
	StartingTeam Team
	CurrentTeam  Team
	Phase        TurnPhase
	TurnNumber   int

	GuessesRemaining int
	SecondsRemaining int

	Clue        *Clue
	CluePending bool
	ClueError   string

	Scores     []TeamScore
	Unrevealed int

	GameOver  bool
	Winner    Team
	EndReason GameEndReason
}

// Snapshot copies the session into a render view
func (g *GameSession) Snapshot() *Snapshot {
	cells := make([]CellView, len(g.Board.Cells))
	for i, c := range g.Board.Cells {
		cells[i] = CellView{Word: c.Word, Revealed: c.Revealed}
		if c.Revealed {
			cells[i].Team = c.Team
		}
	}

	scores := make([]TeamScore, 0, 2)
	for _, team := range PlayingTeams() {
		scores = append(scores, TeamScore{
			Team:     team,
			Revealed: g.Board.RevealedCount(team),
			Target:   g.TargetFor(team),
		})
	}

	var clue *Clue
	if g.Turn.Clue != nil {
		c := *g.Turn.Clue
		clue = &c
	}

	return &Snapshot{
		GameID:           g.ID,
		Cells:            cells,
		StartingTeam:     g.StartingTeam,
		CurrentTeam:      g.Turn.Team,
		Phase:            g.Turn.Phase,
		TurnNumber:       g.Turn.Number,
		GuessesRemaining: g.Turn.GuessesRemaining,
		SecondsRemaining: g.Turn.SecondsRemaining,
		Clue:             clue,
		CluePending:      g.Turn.CluePending,
		ClueError:        g.Turn.ClueError,
		Scores:           scores,
		Unrevealed:       g.Board.UnrevealedCount(),
		GameOver:         !g.Active,
		Winner:           g.Winner,
		EndReason:        g.EndReason,
	}
}

// BoardView is the spymaster's view: full knowledge of every cell
type BoardView struct {
	GameID GameID
	Team   Team // The team the clue is for
	Cells  []Cell
}

// BoardView copies the session board for a clue request for team
func (g *GameSession) BoardView(team Team) BoardView {
	cells := make([]Cell, len(g.Board.Cells))
	copy(cells, g.Board.Cells)
	return BoardView{GameID: g.ID, Team: team, Cells: cells}
}

// Unrevealed returns the unrevealed words belonging to team
func (v BoardView) Unrevealed(team Team) []string {
	var words []string
	for _, c := range v.Cells {
		if c.Team == team && !c.Revealed {
			words = append(words, c.Word)
		}
	}
	return words
}

// IsUnrevealedWord returns true if word is face-down on the board
func (v BoardView) IsUnrevealedWord(word string) bool {
	word = NormalizeWord(word)
	for _, c := range v.Cells {
		if c.Word == word && !c.Revealed {
			return true
		}
	}
	return false
}

// StateExport is the key-value export of a board, as exchanged with
// external spymaster scripts and saved for debugging
type StateExport struct {
	Team         Team     `json:"team"`
	RedWords     []string `json:"red_words"`
	BlueWords    []string `json:"blue_words"`
	NeutralWords []string `json:"neutral_words"`
	Assassin     string   `json:"assassin"`
	Revealed     []string `json:"revealed"`
}

// Export converts the view into the export format
func (v BoardView) Export() StateExport {
	b := &Board{Cells: v.Cells}
	revealed := b.RevealedWords()
	if revealed == nil {
		revealed = []string{}
	}
	return StateExport{
		Team:         v.Team,
		RedWords:     b.WordsOf(TeamRed),
		BlueWords:    b.WordsOf(TeamBlue),
		NeutralWords: b.WordsOf(TeamNeutral),
		Assassin:     b.Assassin(),
		Revealed:     revealed,
	}
}
