package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aflcoach/aflcoach-data/internal/api/respond"
	"github.com/aflcoach/aflcoach-data/internal/cache"
	"github.com/aflcoach/aflcoach-data/internal/store"
)

// GetPlayers serves the full player list with ETag support.
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.svc.Players(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := json.Marshal(players)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to encode players")
		return
	}

	etag := cache.ComputeETag(data)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, cache.TTLFor(cache.CategoryStats), false)
}

// GetPlayer serves one player plus their persisted price history.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "playerID")

	player, err := h.svc.PlayerByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var history []store.PricePoint
	if h.pool != nil {
		history, err = h.pool.PriceHistory(r.Context(), id)
		if err != nil {
			// History is best-effort; the player record still serves.
			history = nil
		}
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"player":        player,
		"price_history": history,
	})
}
