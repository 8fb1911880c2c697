package alerts

import (
	"testing"
	"time"
)

func TestAddDeduplicatesSameTitleSameDay(t *testing.T) {
	s := NewStore()
	day := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

	a := newAlert(TypeBreakevenCliff, PriorityHigh, "Player X breakeven cliff", "body", "1", "Player X", day)
	if !s.Add(a) {
		t.Fatal("first alert rejected")
	}

	// Same type+title later the same day: suppressed.
	later := newAlert(TypeBreakevenCliff, PriorityHigh, "Player X breakeven cliff", "other body", "1", "Player X", day.Add(6*time.Hour))
	if s.Add(later) {
		t.Fatal("same-day duplicate admitted")
	}
	if got := len(s.Active()); got != 1 {
		t.Fatalf("active = %d, want exactly 1", got)
	}

	// Next calendar day: admitted again.
	nextDay := newAlert(TypeBreakevenCliff, PriorityHigh, "Player X breakeven cliff", "body", "1", "Player X", day.Add(24*time.Hour))
	if !s.Add(nextDay) {
		t.Fatal("next-day alert rejected")
	}

	// Different title the same day: admitted.
	other := newAlert(TypeBreakevenCliff, PriorityHigh, "Player Y breakeven cliff", "body", "2", "Player Y", day)
	if !s.Add(other) {
		t.Fatal("distinct title rejected")
	}
}

func TestPruneRetentionWindows(t *testing.T) {
	s := NewStore()
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	fresh := newAlert(TypeWeatherRisk, PriorityLow, "fresh", "", "", "", now.Add(-time.Hour))
	aging := newAlert(TypeWeatherRisk, PriorityLow, "aging", "", "", "", now.Add(-8*24*time.Hour))
	ancient := newAlert(TypeWeatherRisk, PriorityLow, "ancient", "", "", "", now.Add(-40*24*time.Hour))
	for _, a := range []Alert{fresh, aging, ancient} {
		if !s.Add(a) {
			t.Fatalf("Add(%s) rejected", a.Title)
		}
	}

	moved, discarded := s.Prune()
	if moved != 2 {
		t.Fatalf("moved = %d, want 2 (aging and ancient leave active)", moved)
	}
	if discarded != 1 {
		t.Fatalf("discarded = %d, want 1 (ancient is already past 30 days)", discarded)
	}
	if got := len(s.Active()); got != 1 {
		t.Fatalf("active = %d, want 1", got)
	}
	if got := len(s.History()); got != 1 {
		t.Fatalf("history = %d, want 1", got)
	}
	if s.History()[0].Title != "aging" {
		t.Fatalf("history holds %q, want aging", s.History()[0].Title)
	}
}

func TestClaimUrgentMarksDispatched(t *testing.T) {
	s := NewStore()
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	s.Add(newAlert(TypeInjuryEscalation, PriorityCritical, "critical one", "", "", "", now))
	s.Add(newAlert(TypeBreakevenCliff, PriorityHigh, "high one", "", "", "", now))
	s.Add(newAlert(TypeWeatherRisk, PriorityLow, "low one", "", "", "", now))

	claimed := s.ClaimUrgent()
	if len(claimed) != 2 {
		t.Fatalf("claimed = %d, want 2 urgent alerts", len(claimed))
	}

	// Second claim returns nothing — already dispatched.
	if again := s.ClaimUrgent(); len(again) != 0 {
		t.Fatalf("second claim = %d, want 0", len(again))
	}

	// Alerts stay active for display even after dispatch.
	if got := len(s.Active()); got != 3 {
		t.Fatalf("active = %d, want 3", got)
	}
}
