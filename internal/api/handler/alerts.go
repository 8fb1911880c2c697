package handler

import (
	"net/http"

	"github.com/aflcoach/aflcoach-data/internal/api/respond"
)

// GetActiveAlerts serves the active alert set, newest first.
func (h *Handler) GetActiveAlerts(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"alerts": h.svc.AlertStore().Active(),
	})
}

// GetAlertHistory serves the retained alert history.
func (h *Handler) GetAlertHistory(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"alerts": h.svc.AlertStore().History(),
	})
}

// PostAlertScan triggers an immediate rule scan.
func (h *Handler) PostAlertScan(w http.ResponseWriter, r *http.Request) {
	added, err := h.svc.ScanAlerts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"new_alerts": added,
	})
}
