package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Setup errors
	ErrInvalidWordCount       = errors.New("invalid word count")
	ErrInsufficientVocabulary = errors.New("insufficient vocabulary")

	// Action errors
	ErrUnknownWord      = errors.New("word is not on the board")
	ErrIllegalAction    = errors.New("illegal action")
	ErrGameAlreadyOver  = errors.New("game is already over")
	ErrNoGameInProgress = errors.New("no game in progress")
	ErrEngineClosed     = errors.New("game engine closed")

	// Clue errors
	ErrClueUnavailable = errors.New("clue unavailable")

	// Storage errors
	ErrExportNotFound     = errors.New("exported state not found")
	ErrVocabularyNotSaved = errors.New("vocabulary not saved")
)

// Refinements of ErrIllegalAction; errors.Is matches both
var (
	ErrAwaitingClue       = fmt.Errorf("%w: waiting for a clue", ErrIllegalAction)
	ErrCluePending        = fmt.Errorf("%w: clue request already in flight", ErrIllegalAction)
	ErrNoGuessesRemaining = fmt.Errorf("%w: no guesses remaining", ErrIllegalAction)
	ErrAlreadyRevealed    = fmt.Errorf("%w: cell already revealed", ErrIllegalAction)
	ErrNotGuessing        = fmt.Errorf("%w: turn is not in the guessing phase", ErrIllegalAction)
)
