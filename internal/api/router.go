package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/codenames/internal/api/handler"
	"github.com/mcoot/codenames/internal/api/middleware"
	"github.com/mcoot/codenames/internal/api/response"
	"github.com/mcoot/codenames/internal/storage"
	"github.com/mcoot/codenames/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger  *slog.Logger
	Engine  handler.Engine
	Storage storage.Storage
	Hub     *sse.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.Engine, cfg.Logger)
	historyHandler := handler.NewHistoryHandler(cfg.Storage)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/game", gameHandler.New).Methods(http.MethodPost)
	api.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/game/reveal", gameHandler.Reveal).Methods(http.MethodPost)
	api.HandleFunc("/game/end-turn", gameHandler.EndTurn).Methods(http.MethodPost)
	api.HandleFunc("/game/reset-guesses", gameHandler.ResetGuesses).Methods(http.MethodPost)
	api.HandleFunc("/game/clue/retry", gameHandler.RetryClue).Methods(http.MethodPost)
	api.HandleFunc("/game/export", gameHandler.Export).Methods(http.MethodGet)

	api.HandleFunc("/history", historyHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/exports/{id}", historyHandler.Export).Methods(http.MethodGet)

	api.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		sse.ServeSSE(w, r, cfg.Hub)
	}).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler(cfg)).Methods(http.MethodGet)

	return r
}

func healthHandler(cfg RouterConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := cfg.Engine.Snapshot()
		response.JSON(w, http.StatusOK, response.Health{
			Status:     "ok",
			GameActive: err == nil && !snap.GameOver,
			Clients:    cfg.Hub.ClientCount(),
		})
	}
}
