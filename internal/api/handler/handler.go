// Package handler provides HTTP handlers for all API endpoints. Handlers
// call the service layer and translate its closed error set onto HTTP
// status codes.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/aflcoach/aflcoach-data/internal/afl"
	"github.com/aflcoach/aflcoach-data/internal/api/respond"
	"github.com/aflcoach/aflcoach-data/internal/cache"
	"github.com/aflcoach/aflcoach-data/internal/config"
	"github.com/aflcoach/aflcoach-data/internal/service"
	"github.com/aflcoach/aflcoach-data/internal/store"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	svc   *service.Service
	cache *cache.Cache
	cfg   *config.Config
	pool  *store.Pool // nil when persistence is not configured
}

// New creates a Handler with shared dependencies.
func New(svc *service.Service, c *cache.Cache, cfg *config.Config, pool *store.Pool) *Handler {
	return &Handler{svc: svc, cache: c, cfg: cfg, pool: pool}
}

// writeServiceError maps the service/client error set onto HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, afl.ErrMissingCredentials):
		respond.WriteError(w, http.StatusUnauthorized, "MISSING_CREDENTIALS", "No stored credentials — run coachctl login")
	case errors.Is(err, afl.ErrNotAuthenticated):
		respond.WriteError(w, http.StatusUnauthorized, "NOT_AUTHENTICATED", "Upstream rejected the stored session")
	case errors.Is(err, afl.ErrCredentialStore):
		respond.WriteError(w, http.StatusServiceUnavailable, "CREDENTIAL_STORE_UNAVAILABLE", "Credential store is unreachable")
	case errors.Is(err, afl.ErrRateLimited):
		respond.WriteError(w, http.StatusTooManyRequests, "UPSTREAM_RATE_LIMITED", "Upstream is rate limiting requests")
	case errors.Is(err, afl.ErrParse), errors.Is(err, afl.ErrInvalidResponse):
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_SHAPE", "Upstream returned an unusable response")
	case errors.Is(err, afl.ErrNetwork):
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_UNREACHABLE", "Upstream request failed")
	case errors.Is(err, service.ErrUnknownPlayer):
		respond.WriteError(w, http.StatusNotFound, "UNKNOWN_PLAYER", err.Error())
	default:
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Unexpected error")
	}
}

// Root serves API info at /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "AFL Coach Data API",
		"version": "1.0.0",
		"season":  config.CurrentSeason,
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"database": "not configured",
		})
		return
	}
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"database": "connected",
	})
}

// HealthCheckUpstream reports the last upstream failure, if any.
func (h *Handler) HealthCheckUpstream(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.svc.LastError(); err != nil {
		body["status"] = "degraded"
		body["last_error"] = err.Error()
	}
	respond.WriteJSONObject(w, http.StatusOK, body)
}
