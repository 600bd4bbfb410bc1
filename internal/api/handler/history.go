package handler

import (
	"net/http"
	"strconv"

	"github.com/mcoot/codenames/internal/api/response"
	"github.com/mcoot/codenames/internal/storage"
)

const defaultHistoryLimit = 20

// HistoryHandler serves finished games and saved exports from storage
type HistoryHandler struct {
	storage storage.Storage
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(storage storage.Storage) *HistoryHandler {
	return &HistoryHandler{storage: storage}
}

// List handles GET /api/v1/history?limit=N
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	summaries, err := h.storage.ListSummaries(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.HistoryFromModel(summaries))
}

// Export handles GET /api/v1/exports/{id}
func (h *HistoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	export, err := h.storage.GetExport(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, export)
}
