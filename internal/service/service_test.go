package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/aflcoach/aflcoach-data/internal/afl"
	"github.com/aflcoach/aflcoach-data/internal/alerts"
	"github.com/aflcoach/aflcoach-data/internal/cache"
	"github.com/aflcoach/aflcoach-data/internal/config"
	"github.com/aflcoach/aflcoach-data/internal/model"
)

type fakeFetcher struct {
	valueCalls  atomic.Int64
	playerCalls atomic.Int64
	failRank    bool
	players     []model.Player
}

func (f *fakeFetcher) TeamValue(context.Context) (int, error) {
	f.valueCalls.Add(1)
	return 12_500_000, nil
}

func (f *fakeFetcher) TeamScore(context.Context) (int, error) { return 2187, nil }

func (f *fakeFetcher) OverallRank(context.Context) (int, error) {
	if f.failRank {
		return 0, afl.ErrInvalidResponse
	}
	return 4521, nil
}

func (f *fakeFetcher) CurrentCaptain(context.Context) (afl.Captain, error) {
	return afl.Captain{ID: "42", Name: "M. Bontempelli"}, nil
}

func (f *fakeFetcher) Players(context.Context) ([]model.Player, error) {
	f.playerCalls.Add(1)
	return f.players, nil
}

func newTestService(f *fakeFetcher) *Service {
	return New(f, cache.New(true), alerts.NewStore(), nil, slog.Default())
}

func TestDashboardJoinsAllFetches(t *testing.T) {
	f := &fakeFetcher{}
	s := newTestService(f)

	d, err := s.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.TeamValue != 12_500_000 || d.TeamScore != 2187 || d.OverallRank != 4521 {
		t.Fatalf("Dashboard = %+v", d)
	}
	if d.CaptainName != "M. Bontempelli" {
		t.Fatalf("CaptainName = %q", d.CaptainName)
	}
}

func TestDashboardFailsWhenAnyFetchFails(t *testing.T) {
	f := &fakeFetcher{failRank: true}
	s := newTestService(f)

	if _, err := s.Dashboard(context.Background()); !errors.Is(err, afl.ErrInvalidResponse) {
		t.Fatalf("Dashboard error = %v, want ErrInvalidResponse", err)
	}
	if s.LastError() == nil {
		t.Fatal("LastError not recorded")
	}
}

func TestDashboardServedFromCache(t *testing.T) {
	f := &fakeFetcher{}
	s := newTestService(f)
	ctx := context.Background()

	if _, err := s.Dashboard(ctx); err != nil {
		t.Fatalf("first Dashboard: %v", err)
	}
	if _, err := s.Dashboard(ctx); err != nil {
		t.Fatalf("second Dashboard: %v", err)
	}
	if got := f.valueCalls.Load(); got != 1 {
		t.Fatalf("upstream hit %d times, want 1 (cache)", got)
	}
}

func TestPlayersCachedAndScanned(t *testing.T) {
	f := &fakeFetcher{players: []model.Player{
		{ID: "1", Name: "Cliff Edge", AverageScore: 60, Breakeven: 105, Consistency: 50},
		{ID: "2", Name: "Steady Star", AverageScore: 110, Breakeven: 80, Consistency: 85},
	}}
	s := newTestService(f)
	ctx := context.Background()

	if _, err := s.Players(ctx); err != nil {
		t.Fatalf("Players: %v", err)
	}
	if _, err := s.Players(ctx); err != nil {
		t.Fatalf("Players again: %v", err)
	}
	if got := f.playerCalls.Load(); got != 1 {
		t.Fatalf("upstream hit %d times, want 1 (cache)", got)
	}

	added, err := s.ScanAlerts(ctx)
	if err != nil {
		t.Fatalf("ScanAlerts: %v", err)
	}
	if added == 0 {
		t.Fatal("expected at least the breakeven cliff alert")
	}

	// Same day rescan raises nothing new.
	again, err := s.ScanAlerts(ctx)
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}
	if again != 0 {
		t.Fatalf("rescan added %d alerts, want 0 (dedup)", again)
	}
}

func TestScoreTradeResolvesPlayers(t *testing.T) {
	f := &fakeFetcher{players: []model.Player{
		{ID: "out", Name: "Out", AverageScore: 80, Price: 600000},
		{ID: "in", Name: "In", AverageScore: 95, Price: 700000},
	}}
	s := newTestService(f)
	ctx := context.Background()

	rec, err := s.ScoreTrade(ctx, "out", "in")
	if err != nil {
		t.Fatalf("ScoreTrade: %v", err)
	}
	if rec.PlayerOut != "Out" || rec.PlayerIn != "In" {
		t.Fatalf("ScoreTrade = %+v", rec)
	}

	if _, err := s.ScoreTrade(ctx, "out", "ghost"); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("unknown id error = %v, want ErrUnknownPlayer", err)
	}
}

func TestScoreTradeAcceptsExactNames(t *testing.T) {
	f := &fakeFetcher{players: []model.Player{
		{ID: "295813", Name: "Harley Reid", AverageScore: 88, Price: 640000},
		{ID: "298210", Name: "Nick Daicos", AverageScore: 112, Price: 910000},
	}}
	s := newTestService(f)
	ctx := context.Background()

	rec, err := s.ScoreTrade(ctx, "Harley Reid", "Nick Daicos")
	if err != nil {
		t.Fatalf("ScoreTrade by name: %v", err)
	}
	if rec.PlayerOutID != "295813" || rec.PlayerInID != "298210" {
		t.Fatalf("name resolution = %+v", rec)
	}

	// Id takes precedence over an identical name.
	collide := &fakeFetcher{players: []model.Player{
		{ID: "7", Name: "A", AverageScore: 80},
		{ID: "A", Name: "B", AverageScore: 90},
	}}
	s = newTestService(collide)
	p, err := s.PlayerByID(ctx, "A")
	if err != nil {
		t.Fatalf("PlayerByID: %v", err)
	}
	if p.Name != "B" {
		t.Fatalf("resolved %q, want the id match", p.Name)
	}
}

func TestCaptainsDefaultsRoundFromProjections(t *testing.T) {
	f := &fakeFetcher{players: []model.Player{
		{ID: "1", Name: "A", AverageScore: 100, Consistency: 80, Projection: model.Projection{Round: 9}},
	}}
	s := newTestService(f)

	got, err := s.Captains(context.Background(), 0, 5)
	if err != nil {
		t.Fatalf("Captains: %v", err)
	}
	if len(got) != 1 || got[0].Round != 9 {
		t.Fatalf("Captains = %+v, want round 9", got)
	}
}

func TestCaptainsRoundBoundedByFinalRound(t *testing.T) {
	f := &fakeFetcher{players: []model.Player{
		{ID: "1", Name: "A", AverageScore: 100, Consistency: 80, Projection: model.Projection{Round: 99}},
	}}
	s := newTestService(f)

	got, err := s.Captains(context.Background(), 0, 5)
	if err != nil {
		t.Fatalf("Captains: %v", err)
	}
	if len(got) != 1 || got[0].Round != config.FinalRound {
		t.Fatalf("Captains = %+v, want round %d", got, config.FinalRound)
	}
}
