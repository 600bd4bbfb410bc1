package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/codenames/internal/api/request"
	"github.com/mcoot/codenames/internal/api/response"
	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/services/game"
)

// Engine is the set of engine operations the API drives
type Engine interface {
	NewGame(ctx context.Context) (*model.Snapshot, error)
	Reveal(ctx context.Context, word string) (*game.RevealResult, error)
	EndTurn(ctx context.Context) (*model.Snapshot, error)
	ResetGuesses(ctx context.Context) (*model.Snapshot, error)
	RetryClue(ctx context.Context) (*model.Snapshot, error)
	Snapshot() (*model.Snapshot, error)
	Export() (*model.StateExport, error)
}

// GameHandler handles game endpoints
type GameHandler struct {
	engine Engine
	logger *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(engine Engine, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		engine: engine,
		logger: logger.With(slog.String("component", "game-handler")),
	}
}

// New handles POST /api/v1/game
// The first clue is requested in the background, so the returned game
// is usually still awaiting it.
func (h *GameHandler) New(w http.ResponseWriter, r *http.Request) {
	snap, err := h.engine.NewGame(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.Created(w, "/api/v1/game", response.GameFromSnapshot(snap))
}

// Get handles GET /api/v1/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.engine.Snapshot()
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// Reveal handles POST /api/v1/game/reveal
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	var req request.RevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if strings.TrimSpace(req.Word) == "" {
		WriteError(w, NewInvalidRequestError("Word is required"))
		return
	}

	result, err := h.engine.Reveal(r.Context(), req.Word)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RevealResponseFromResult(result))
}

// EndTurn handles POST /api/v1/game/end-turn
func (h *GameHandler) EndTurn(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.engine.EndTurn)
}

// ResetGuesses handles POST /api/v1/game/reset-guesses
func (h *GameHandler) ResetGuesses(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.engine.ResetGuesses)
}

// RetryClue handles POST /api/v1/game/clue/retry
func (h *GameHandler) RetryClue(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.engine.RetryClue)
}

// Export handles GET /api/v1/game/export
func (h *GameHandler) Export(w http.ResponseWriter, r *http.Request) {
	export, err := h.engine.Export()
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, export)
}

func (h *GameHandler) apply(w http.ResponseWriter, r *http.Request, action func(context.Context) (*model.Snapshot, error)) {
	snap, err := action(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// gameID reads the {id} route variable
func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}
