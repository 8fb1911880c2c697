package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aflcoach/aflcoach-data/internal/api/respond"
)

const defaultCaptainLimit = 5

// GetCaptains serves ranked captain suggestions.
// Query params: round (default: implied by projections), limit (default 5).
func (h *Handler) GetCaptains(w http.ResponseWriter, r *http.Request) {
	round := queryInt(r, "round", 0)
	limit := queryInt(r, "limit", defaultCaptainLimit)

	suggestions, err := h.svc.Captains(r.Context(), round, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
	})
}

// tradeScoreRequest is the POST body for trade scoring.
type tradeScoreRequest struct {
	PlayerOut string `json:"player_out"`
	PlayerIn  string `json:"player_in"`
}

// PostTradeScore scores a proposed trade.
func (h *Handler) PostTradeScore(w http.ResponseWriter, r *http.Request) {
	var req tradeScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body")
		return
	}
	if req.PlayerOut == "" || req.PlayerIn == "" {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "player_out and player_in are required")
		return
	}

	rec, err := h.svc.ScoreTrade(r.Context(), req.PlayerOut, req.PlayerIn)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, rec)
}

// GetCashCows serves sell-timing analysis for flagged cash cows.
func (h *Handler) GetCashCows(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.svc.CashCows(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"cash_cows": analyses,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
