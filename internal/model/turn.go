package model

import "time"

// Turn timing and guess budget constants
const (
	TurnSeconds  = 180 // 3 minutes per guessing phase
	TurnDuration = TurnSeconds * time.Second
	BonusGuesses = 1 // Granted on top of the clue count
)

// Seconds remaining at which a timer warning is published
var TimerWarnings = []int{30, 10}

// TurnPhase represents the current phase of a turn
type TurnPhase string

const (
	PhaseAwaitingClue TurnPhase = "awaiting_clue" // No clue yet, reveals rejected
	PhaseGuessing     TurnPhase = "guessing"      // Clue received, operatives guessing
	PhaseGameOver     TurnPhase = "game_over"     // Terminal
)

// TurnEndReason explains why a turn passed to the other team
type TurnEndReason string

const (
	TurnEndOutOfGuesses TurnEndReason = "out_of_guesses"
	TurnEndWrongGuess   TurnEndReason = "wrong_guess"
	TurnEndEndedEarly   TurnEndReason = "ended_early" // Manual end with guesses left
	TurnEndEnded        TurnEndReason = "ended"       // Manual end with no guesses left
	TurnEndTimeUp       TurnEndReason = "time_up"
	TurnEndGuessesReset TurnEndReason = "guesses_reset"
)

// Clue is a spymaster hint for one team
type Clue struct {
	Word  string `json:"clue"`
	Count int    `json:"number"`
	Team  Team   `json:"team,omitempty"`
}

// TurnState tracks whose turn it is and the budget left in it
type TurnState struct {
	Team             Team
	Phase            TurnPhase
	GuessesRemaining int
	SecondsRemaining int

	// Clue tracking
	CluePending bool   // A request is in flight
	Clue        *Clue  // nil until received
	ClueError   string // Last failed request, cleared on retry

	// Number increases on every switch and identifies the turn to
	// timer ticks and clue deliveries
	Number    int
	StartedAt time.Time
}

// NewTurnState creates a turn awaiting a clue for team
func NewTurnState(team Team, number int, now time.Time) *TurnState {
	return &TurnState{
		Team:             team,
		Phase:            PhaseAwaitingClue,
		SecondsRemaining: TurnSeconds,
		Number:           number,
		StartedAt:        now,
	}
}

// IsGuessing returns true if the operatives may reveal cells
func (t *TurnState) IsGuessing() bool {
	return t.Phase == PhaseGuessing
}

// BeginGuessing applies a received clue: the budget becomes count plus
// the bonus guess and the timer is reset to a full turn
func (t *TurnState) BeginGuessing(clue Clue) {
	t.Clue = &clue
	t.CluePending = false
	t.ClueError = ""
	t.GuessesRemaining = clue.Count + BonusGuesses
	t.SecondsRemaining = TurnSeconds
	t.Phase = PhaseGuessing
}

// SpendGuess consumes one guess and reports whether the budget is exhausted
func (t *TurnState) SpendGuess() bool {
	if t.GuessesRemaining > 0 {
		t.GuessesRemaining--
	}
	return t.Exhausted()
}

// ResetGuesses zeroes the budget
func (t *TurnState) ResetGuesses() {
	t.GuessesRemaining = 0
}

// Exhausted returns true when a guessing turn has no guesses left
func (t *TurnState) Exhausted() bool {
	return t.Phase == PhaseGuessing && t.GuessesRemaining == 0
}

// TickSecond counts down one second and reports whether time is up
func (t *TurnState) TickSecond() bool {
	if t.SecondsRemaining > 0 {
		t.SecondsRemaining--
	}
	return t.SecondsRemaining == 0
}

// Next returns the turn for the other team, awaiting its clue
func (t *TurnState) Next(now time.Time) *TurnState {
	return NewTurnState(t.Team.Opponent(), t.Number+1, now)
}

// Finish moves the turn to the terminal phase
func (t *TurnState) Finish() {
	t.Phase = PhaseGameOver
	t.GuessesRemaining = 0
	t.CluePending = false
}
