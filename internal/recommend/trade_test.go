package recommend

import (
	"testing"

	"github.com/aflcoach/aflcoach-data/internal/model"
)

func TestScoreTradeAnchoredAtFifty(t *testing.T) {
	p := model.Player{
		ID: "1", Name: "Same", Price: 650000,
		AverageScore: 90, Consistency: 75,
		Injury: model.InjuryRisk{Score: 20},
	}
	got := ScoreTrade(p, p)
	if got.Score != tradeAnchor {
		t.Fatalf("Score = %v, want %v for identical players", got.Score, tradeAnchor)
	}
	if got.Verdict != verdictSideways {
		t.Fatalf("Verdict = %q, want %q", got.Verdict, verdictSideways)
	}
	if got.NetCost != 0 {
		t.Fatalf("NetCost = %d, want 0", got.NetCost)
	}
}

func TestScoreTradeUpgrade(t *testing.T) {
	out := model.Player{
		ID: "out", Name: "Fading Vet", Price: 600000,
		AverageScore: 80, Consistency: 65,
		Injury: model.InjuryRisk{Score: 30},
	}
	in := model.Player{
		ID: "in", Name: "Rising Star", Price: 900000,
		AverageScore: 95, Consistency: 75,
		Injury: model.InjuryRisk{Score: 30},
	}

	got := ScoreTrade(out, in)
	// 50 + 1.5*15 - 2.0*3 + 0.2*10 = 50 + 22.5 - 6 + 2 = 68.5
	if got.Score != 68.5 {
		t.Fatalf("Score = %v, want 68.5", got.Score)
	}
	if got.Verdict != verdictUpgrade {
		t.Fatalf("Verdict = %q, want %q", got.Verdict, verdictUpgrade)
	}
	if got.NetCost != 300000 {
		t.Fatalf("NetCost = %d, want 300000", got.NetCost)
	}
}

func TestScoreTradeClampsToBand(t *testing.T) {
	out := model.Player{ID: "out", AverageScore: 40, Price: 300000, Consistency: 20, Injury: model.InjuryRisk{Score: 90}}
	in := model.Player{ID: "in", AverageScore: 125, Price: 250000, Consistency: 95, Injury: model.InjuryRisk{Score: 5}}

	got := ScoreTrade(out, in)
	if got.Score != 100 {
		t.Fatalf("Score = %v, want clamp at 100", got.Score)
	}

	reverse := ScoreTrade(in, out)
	if reverse.Score != 0 {
		t.Fatalf("reverse Score = %v, want clamp at 0", reverse.Score)
	}
	if reverse.Verdict != verdictDowngrade {
		t.Fatalf("reverse Verdict = %q, want %q", reverse.Verdict, verdictDowngrade)
	}
}

func TestScoreTradeDeterministic(t *testing.T) {
	out := model.Player{ID: "a", AverageScore: 82.4, Price: 512000, Consistency: 61, Injury: model.InjuryRisk{Score: 44}}
	in := model.Player{ID: "b", AverageScore: 97.1, Price: 781000, Consistency: 72, Injury: model.InjuryRisk{Score: 12}}

	first := ScoreTrade(out, in)
	for i := 0; i < 5; i++ {
		if got := ScoreTrade(out, in); got.Score != first.Score {
			t.Fatalf("run %d: Score = %v, want %v", i, got.Score, first.Score)
		}
	}
}
