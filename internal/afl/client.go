// Package afl is the authenticated client for the AFL Fantasy API.
//
// The upstream has no stable contract, so every logical query probes an
// ordered list of candidate paths and accepts the first body that parses
// into the expected shape. Rate limiting is a token bucket shared across
// all queries.
package afl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/aflcoach/aflcoach-data/internal/credstore"
)

// Captain identifies the currently selected captain.
type Captain struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client issues authenticated GET requests against the fantasy API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      credstore.Store
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a fantasy API client with rate limiting.
func NewClient(baseURL string, creds credstore.Store, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		creds:      creds,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// credentials loads auth material, mapping a missing store entry onto the
// client's closed error set. A store that cannot be reached is an outage,
// not a login problem.
func (c *Client) credentials(ctx context.Context) (credstore.Credentials, error) {
	creds, err := c.creds.Load(ctx)
	if err != nil {
		if errors.Is(err, credstore.ErrMissing) {
			return credstore.Credentials{}, ErrMissingCredentials
		}
		return credstore.Credentials{}, fmt.Errorf("%w: %v", ErrCredentialStore, err)
	}
	return creds, nil
}

// get performs one rate-limited authenticated GET against a single path.
func (c *Client) get(ctx context.Context, path string, creds credstore.Credentials) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cookie", "session="+creds.SessionCookie)
	if creds.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+creds.APIToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrNetwork, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body %s: %v", ErrNetwork, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: GET %s returned %d", ErrNotAuthenticated, path, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: GET %s", ErrRateLimited, path)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: GET %s returned %d", ErrInvalidResponse, path, resp.StatusCode)
	}
	return body, nil
}

// fetchFirst walks the candidate paths for one logical query. Individual
// failures are logged at debug and skipped; if every candidate fails, the
// last error is surfaced.
func (c *Client) fetchFirst(ctx context.Context, query string, paths []string, parse func([]byte) bool) error {
	creds, err := c.credentials(ctx)
	if err != nil {
		return err
	}

	var lastErr error
	for _, path := range paths {
		body, err := c.get(ctx, path, creds)
		if err != nil {
			c.logger.Debug("candidate endpoint failed", "query", query, "path", path, "error", err)
			lastErr = err
			continue
		}
		if parse(body) {
			return nil
		}
		c.logger.Debug("candidate endpoint shape mismatch", "query", query, "path", path)
		lastErr = fmt.Errorf("%w: %s from %s", ErrParse, query, path)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no candidate endpoints for %s", ErrInvalidResponse, query)
	}
	return lastErr
}

// TeamValue returns the team's total value in dollars.
func (c *Client) TeamValue(ctx context.Context) (int, error) {
	teamID, err := c.teamID(ctx)
	if err != nil {
		return 0, err
	}
	var value int
	err = c.fetchFirst(ctx, "team value", teamValuePaths(teamID), func(body []byte) bool {
		v, ok := extractNumber(body, "team_value", "value", "total_value")
		if ok {
			value = int(v)
		}
		return ok
	})
	return value, err
}

// TeamScore returns the team's score for the current round.
func (c *Client) TeamScore(ctx context.Context) (int, error) {
	teamID, err := c.teamID(ctx)
	if err != nil {
		return 0, err
	}
	var score int
	err = c.fetchFirst(ctx, "team score", teamScorePaths(teamID), func(body []byte) bool {
		v, ok := extractNumber(body, "team_score", "score", "round_score", "points")
		if ok {
			score = int(v)
		}
		return ok
	})
	return score, err
}

// OverallRank returns the team's overall league rank.
func (c *Client) OverallRank(ctx context.Context) (int, error) {
	teamID, err := c.teamID(ctx)
	if err != nil {
		return 0, err
	}
	var rank int
	err = c.fetchFirst(ctx, "overall rank", overallRankPaths(teamID), func(body []byte) bool {
		v, ok := extractNumber(body, "overall_rank", "rank", "position")
		if ok && v > 0 {
			rank = int(v)
		}
		return ok && v > 0
	})
	return rank, err
}

// CurrentCaptain returns the currently selected captain.
func (c *Client) CurrentCaptain(ctx context.Context) (Captain, error) {
	teamID, err := c.teamID(ctx)
	if err != nil {
		return Captain{}, err
	}
	var captain Captain
	err = c.fetchFirst(ctx, "captain", captainPaths(teamID), func(body []byte) bool {
		parsed, ok := extractCaptain(body)
		if ok {
			captain = parsed
		}
		return ok
	})
	return captain, err
}

func (c *Client) teamID(ctx context.Context) (string, error) {
	creds, err := c.credentials(ctx)
	if err != nil {
		return "", err
	}
	return creds.TeamID, nil
}
