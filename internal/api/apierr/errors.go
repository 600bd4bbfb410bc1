package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/codenames/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeUnknownWord            = "UNKNOWN_WORD"
	CodeAlreadyRevealed        = "ALREADY_REVEALED"
	CodeAwaitingClue           = "AWAITING_CLUE"
	CodeCluePending            = "CLUE_PENDING"
	CodeNoGuessesRemaining     = "NO_GUESSES_REMAINING"
	CodeNotGuessing            = "NOT_GUESSING"
	CodeIllegalAction          = "ILLEGAL_ACTION"
	CodeGameOver               = "GAME_OVER"
	CodeNoGameInProgress       = "NO_GAME_IN_PROGRESS"
	CodeInsufficientVocabulary = "INSUFFICIENT_VOCABULARY"
	CodeClueUnavailable        = "CLUE_UNAVAILABLE"
	CodeExportNotFound         = "EXPORT_NOT_FOUND"
	CodeUnavailable            = "UNAVAILABLE"
	CodeInternalError          = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError. Refinements of
// ErrIllegalAction are matched before the sentinel itself.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrUnknownWord):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownWord, "Word is not on the board"}}
	case errors.Is(err, model.ErrAlreadyRevealed):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyRevealed, "Cell is already revealed"}}
	case errors.Is(err, model.ErrAwaitingClue):
		return &httpError{http.StatusConflict, APIError{CodeAwaitingClue, "Waiting for the spymaster's clue"}}
	case errors.Is(err, model.ErrCluePending):
		return &httpError{http.StatusConflict, APIError{CodeCluePending, "A clue request is already in flight"}}
	case errors.Is(err, model.ErrNoGuessesRemaining):
		return &httpError{http.StatusConflict, APIError{CodeNoGuessesRemaining, "No guesses remaining"}}
	case errors.Is(err, model.ErrNotGuessing):
		return &httpError{http.StatusConflict, APIError{CodeNotGuessing, "Turn is not in the guessing phase"}}
	case errors.Is(err, model.ErrIllegalAction):
		return &httpError{http.StatusConflict, APIError{CodeIllegalAction, err.Error()}}
	case errors.Is(err, model.ErrGameAlreadyOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is already over"}}
	case errors.Is(err, model.ErrNoGameInProgress):
		return &httpError{http.StatusNotFound, APIError{CodeNoGameInProgress, "No game in progress"}}
	case errors.Is(err, model.ErrInsufficientVocabulary), errors.Is(err, model.ErrInvalidWordCount):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInsufficientVocabulary, "Not enough words to build a board"}}
	case errors.Is(err, model.ErrClueUnavailable):
		return &httpError{http.StatusBadGateway, APIError{CodeClueUnavailable, err.Error()}}
	case errors.Is(err, model.ErrExportNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeExportNotFound, "Exported state not found"}}
	case errors.Is(err, model.ErrEngineClosed):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeUnavailable, "Server is shutting down"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
