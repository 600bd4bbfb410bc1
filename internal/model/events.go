package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Session events
	EventGameStarted EventType = "game_started"
	EventGameOver    EventType = "game_over"

	// Clue events
	EventClueRequested EventType = "clue_requested"
	EventClueReceived  EventType = "clue_received"
	EventClueFailed    EventType = "clue_failed"

	// Guess events
	EventGuessCorrect     EventType = "guess_correct"
	EventGuessIncorrect   EventType = "guess_incorrect"
	EventAssassinRevealed EventType = "assassin_revealed"
	EventGuessesReset     EventType = "guesses_reset"

	// Turn events
	EventTurnEnded    EventType = "turn_ended"
	EventTurnStarted  EventType = "turn_started"
	EventTimerTick    EventType = "timer_tick"
	EventTimerWarning EventType = "timer_warning"
)

// Event is a state transition published by the engine. Snapshot is the
// session state at the moment the event was published.
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	Team      Team // Team holding the turn when the event happened
	Payload   any  // Type-specific data
	Snapshot  *Snapshot
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	StartingTeam Team `json:"starting_team"`
}

// ClueReceivedPayload contains data for clue received events
type ClueReceivedPayload struct {
	Clue             Clue `json:"clue"`
	GuessesRemaining int  `json:"guesses_remaining"`
}

// GuessPayload contains data for guess events
type GuessPayload struct {
	Word             string `json:"word"`
	CellTeam         Team   `json:"cell_team"`
	GuessesRemaining int    `json:"guesses_remaining"`
}

// ClueFailedPayload contains data for clue failed events
type ClueFailedPayload struct {
	Error string `json:"error"`
}

// TurnEndedPayload contains data for turn ended events
type TurnEndedPayload struct {
	Reason          TurnEndReason `json:"reason"`
	UnusedGuesses   int           `json:"unused_guesses"`
	SecondsConsumed int           `json:"seconds_consumed"`
}

// TimerPayload contains data for timer tick and warning events
type TimerPayload struct {
	SecondsRemaining int `json:"seconds_remaining"`
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	Winner Team          `json:"winner"`
	Reason GameEndReason `json:"reason"`
}
