package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aflcoach/aflcoach-data/internal/api/respond"
	"github.com/aflcoach/aflcoach-data/internal/cache"
)

// GetDashboard serves the combined team summary with ETag support.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := json.Marshal(d)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to encode dashboard")
		return
	}

	etag := cache.ComputeETag(data)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, cache.TTLFor(cache.CategoryLive), false)
}
