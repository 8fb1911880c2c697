// Package service orchestrates the upstream client, cache, recommendation
// engine, and alert store into the operations the API and CLI expose.
// Shared state is guarded by a single mutex; upstream fetches for the
// dashboard run concurrently and are joined before assembly.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aflcoach/aflcoach-data/internal/afl"
	"github.com/aflcoach/aflcoach-data/internal/alerts"
	"github.com/aflcoach/aflcoach-data/internal/cache"
	"github.com/aflcoach/aflcoach-data/internal/config"
	"github.com/aflcoach/aflcoach-data/internal/model"
	"github.com/aflcoach/aflcoach-data/internal/recommend"
	"github.com/aflcoach/aflcoach-data/internal/store"
)

// ErrUnknownPlayer is returned when a trade references an id not in the
// current player list.
var ErrUnknownPlayer = errors.New("unknown player id")

// Fetcher is the upstream surface the service needs. *afl.Client
// implements it; tests substitute a fake.
type Fetcher interface {
	TeamValue(ctx context.Context) (int, error)
	TeamScore(ctx context.Context) (int, error)
	OverallRank(ctx context.Context) (int, error)
	CurrentCaptain(ctx context.Context) (afl.Captain, error)
	Players(ctx context.Context) ([]model.Player, error)
}

const (
	cacheKeyDashboard = "dashboard"
	cacheKeyPlayers   = "players"
)

// Service is the data/cache orchestrator.
type Service struct {
	client Fetcher
	cache  *cache.Cache
	alerts *alerts.Store
	pool   *store.Pool // nil when persistence is not configured
	logger *slog.Logger

	mu      sync.RWMutex
	players []model.Player
	lastErr error
}

// New wires the orchestrator. pool may be nil.
func New(client Fetcher, c *cache.Cache, alertStore *alerts.Store, pool *store.Pool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		cache:  c,
		alerts: alertStore,
		pool:   pool,
		logger: logger,
	}
}

// LastError returns the most recent upstream failure, or nil.
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Service) setLastErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// AlertStore exposes the alert store for the API layer.
func (s *Service) AlertStore() *alerts.Store {
	return s.alerts
}

// --------------------------------------------------------------------------
// Dashboard
// --------------------------------------------------------------------------

// Dashboard returns the combined team summary. The four upstream queries
// run concurrently; the result is assembled only after all complete and is
// cached under the live policy.
func (s *Service) Dashboard(ctx context.Context) (model.Dashboard, error) {
	if data, _, ok := s.cache.Get(cacheKeyDashboard); ok {
		var d model.Dashboard
		if err := json.Unmarshal(data, &d); err == nil {
			return d, nil
		}
	}

	var (
		wg      sync.WaitGroup
		value   int
		score   int
		rank    int
		captain afl.Captain
		errs    [4]error
	)
	wg.Add(4)
	go func() { defer wg.Done(); value, errs[0] = s.client.TeamValue(ctx) }()
	go func() { defer wg.Done(); score, errs[1] = s.client.TeamScore(ctx) }()
	go func() { defer wg.Done(); rank, errs[2] = s.client.OverallRank(ctx) }()
	go func() { defer wg.Done(); captain, errs[3] = s.client.CurrentCaptain(ctx) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.setLastErr(err)
			return model.Dashboard{}, fmt.Errorf("dashboard fetch: %w", err)
		}
	}

	d := model.Dashboard{
		TeamValue:   value,
		TeamScore:   score,
		OverallRank: rank,
		CaptainID:   captain.ID,
		CaptainName: captain.Name,
		FetchedAt:   time.Now().UTC(),
	}
	if data, err := json.Marshal(d); err == nil {
		s.cache.SetCategory(cacheKeyDashboard, data, cache.CategoryLive)
	}
	s.setLastErr(nil)
	return d, nil
}

// --------------------------------------------------------------------------
// Players
// --------------------------------------------------------------------------

// Players returns the player list, refreshing from upstream when the
// cached copy is stale. Snapshots are persisted when a pool is configured.
func (s *Service) Players(ctx context.Context) ([]model.Player, error) {
	if data, _, ok := s.cache.Get(cacheKeyPlayers); ok {
		var players []model.Player
		if err := json.Unmarshal(data, &players); err == nil {
			return players, nil
		}
	}

	players, err := s.client.Players(ctx)
	if err != nil {
		s.setLastErr(err)
		// Serve the last good list if we have one.
		s.mu.RLock()
		stale := s.players
		s.mu.RUnlock()
		if len(stale) > 0 {
			return stale, nil
		}
		return nil, fmt.Errorf("fetch players: %w", err)
	}

	s.mu.Lock()
	s.players = players
	s.lastErr = nil
	s.mu.Unlock()

	if data, err := json.Marshal(players); err == nil {
		s.cache.SetCategory(cacheKeyPlayers, data, cache.CategoryStats)
	}

	if s.pool != nil {
		round := currentRound(players)
		if saved, err := s.pool.SaveSnapshots(ctx, round, players); err != nil {
			s.logger.Warn("snapshot persistence failed", "error", err)
		} else {
			s.logger.Debug("snapshots saved", "round", round, "count", saved)
		}
	}
	return players, nil
}

// PlayerByID resolves one player from the current list. The reference is
// an id first, an exact name second, so CLI users can trade by name.
func (s *Service) PlayerByID(ctx context.Context, ref string) (model.Player, error) {
	players, err := s.Players(ctx)
	if err != nil {
		return model.Player{}, err
	}
	for _, p := range players {
		if p.ID == ref {
			return p, nil
		}
	}
	for _, p := range players {
		if p.Name == ref {
			return p, nil
		}
	}
	return model.Player{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, ref)
}

// currentRound is the next round implied by the player projections, bounded
// by the season's final round.
func currentRound(players []model.Player) int {
	round := 1
	for _, p := range players {
		if p.Projection.Round > round {
			round = p.Projection.Round
		}
	}
	if round > config.FinalRound {
		round = config.FinalRound
	}
	return round
}

// --------------------------------------------------------------------------
// Recommendations
// --------------------------------------------------------------------------

// Captains returns the top n captain suggestions for the round. round <= 0
// uses the round implied by the player projections.
func (s *Service) Captains(ctx context.Context, round, n int) ([]model.CaptainSuggestion, error) {
	players, err := s.Players(ctx)
	if err != nil {
		return nil, err
	}
	if round <= 0 {
		round = currentRound(players)
	}
	return recommend.SuggestCaptains(players, round, n), nil
}

// ScoreTrade scores swapping playerOut for playerIn.
func (s *Service) ScoreTrade(ctx context.Context, outID, inID string) (model.TradeRecommendation, error) {
	out, err := s.PlayerByID(ctx, outID)
	if err != nil {
		return model.TradeRecommendation{}, err
	}
	in, err := s.PlayerByID(ctx, inID)
	if err != nil {
		return model.TradeRecommendation{}, err
	}
	return recommend.ScoreTrade(out, in), nil
}

// CashCows analyzes sell timing for every flagged cash cow.
func (s *Service) CashCows(ctx context.Context) ([]model.CashCowAnalysis, error) {
	players, err := s.Players(ctx)
	if err != nil {
		return nil, err
	}
	return recommend.AnalyzeCashCows(players), nil
}

// --------------------------------------------------------------------------
// Alerts
// --------------------------------------------------------------------------

// ScanAlerts runs every alert rule over the current players and admits the
// non-duplicate flags. Returns how many new alerts were raised.
func (s *Service) ScanAlerts(ctx context.Context) (int, error) {
	players, err := s.Players(ctx)
	if err != nil {
		return 0, err
	}

	flags := alerts.CheckAll(players, currentRound(players), time.Now())
	added := 0
	for _, a := range flags {
		if !s.alerts.Add(a) {
			continue
		}
		added++
		if s.pool != nil {
			if err := s.pool.RecordAlert(ctx, a); err != nil {
				s.logger.Warn("alert persistence failed", "alert_id", a.ID, "error", err)
			}
		}
	}
	return added, nil
}

// --------------------------------------------------------------------------
// Background refresh
// --------------------------------------------------------------------------

// StartRefresh periodically refreshes the dashboard and player list and
// rescans alerts. Blocks until ctx is cancelled. Intended to be called
// with `go`.
func (s *Service) StartRefresh(ctx context.Context, interval time.Duration) {
	s.logger.Info("Background refresh started", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refreshOnce(ctx)
		case <-ctx.Done():
			s.logger.Info("Background refresh stopped")
			return
		}
	}
}

func (s *Service) refreshOnce(ctx context.Context) {
	if _, err := s.Dashboard(ctx); err != nil {
		s.logger.Warn("dashboard refresh failed", "error", err)
	}
	if _, err := s.Players(ctx); err != nil {
		s.logger.Warn("player refresh failed", "error", err)
		return
	}
	if added, err := s.ScanAlerts(ctx); err != nil {
		s.logger.Warn("alert scan failed", "error", err)
	} else if added > 0 {
		s.logger.Info("alert scan", "new_alerts", added)
	}
}
