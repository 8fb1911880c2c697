package alerts

import (
	"testing"
	"time"

	"github.com/aflcoach/aflcoach-data/internal/model"
)

var testNow = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

func TestPriceDropRiskFactor(t *testing.T) {
	tests := []struct {
		name   string
		player model.Player
		want   float64
	}{
		{
			name:   "PremiumWellClear",
			player: model.Player{AverageScore: 115.5, Breakeven: 85},
			want:   0,
		},
		{
			name: "BreakevenAboveProjectedMargin",
			player: model.Player{
				AverageScore: 70, Breakeven: 95,
				Projection: model.Projection{ProjectedScore: 80},
			},
			want: priceDropFactor,
		},
		{
			name: "JustInsideMargin",
			player: model.Player{
				AverageScore: 70, Breakeven: 88,
				Projection: model.Projection{ProjectedScore: 80},
			},
			want: 0, // 88 == 80*1.1, not strictly greater
		},
		{
			name:   "FallsBackToAverageWhenNoProjection",
			player: model.Player{AverageScore: 60, Breakeven: 70},
			want:   priceDropFactor, // 70 > 60*1.1
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PriceDropRiskFactor(tc.player); got != tc.want {
				t.Fatalf("PriceDropRiskFactor = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBreakevenCliffPriorities(t *testing.T) {
	tests := []struct {
		name      string
		avg       float64
		breakeven int
		want      Priority
		fires     bool
	}{
		{"NoCliff", 90, 95, "", false},
		{"Cliff", 70, 92, PriorityHigh, true},
		{"Crash", 60, 105, PriorityCritical, true},
		{"ZeroAverageSkipped", 0, 80, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := model.Player{Name: "X", AverageScore: tc.avg, Breakeven: tc.breakeven}
			a, ok := checkBreakevenCliff(p, testNow)
			if ok != tc.fires {
				t.Fatalf("fires = %v, want %v", ok, tc.fires)
			}
			if ok && a.Priority != tc.want {
				t.Fatalf("Priority = %s, want %s", a.Priority, tc.want)
			}
		})
	}
}

func TestInjuryEscalationLevels(t *testing.T) {
	tests := []struct {
		level model.InjuryRiskLevel
		want  Priority
		fires bool
	}{
		{model.InjuryLow, "", false},
		{model.InjuryModerate, "", false},
		{model.InjuryHigh, PriorityHigh, true},
		{model.InjurySevere, PriorityCritical, true},
	}
	for _, tc := range tests {
		p := model.Player{Name: "X", Injury: model.InjuryRisk{Level: tc.level, Score: 70, History: []string{"corked thigh"}}}
		a, ok := checkInjuryEscalation(p, testNow)
		if ok != tc.fires {
			t.Fatalf("level %s: fires = %v, want %v", tc.level, ok, tc.fires)
		}
		if ok && a.Priority != tc.want {
			t.Fatalf("level %s: Priority = %s, want %s", tc.level, a.Priority, tc.want)
		}
	}
}

func TestWeatherRiskThresholds(t *testing.T) {
	calm := model.Player{Projection: model.Projection{Weather: model.Weather{RainChance: 0.3, WindKMH: 20}}}
	if _, ok := checkWeatherRisk(calm, testNow); ok {
		t.Fatal("calm forecast should not flag")
	}

	wet := model.Player{Name: "X", Projection: model.Projection{Weather: model.Weather{RainChance: 0.8}}}
	a, ok := checkWeatherRisk(wet, testNow)
	if !ok || a.Priority != PriorityLow {
		t.Fatalf("wet forecast: ok=%v priority=%s", ok, a.Priority)
	}

	windy := model.Player{Name: "X", Projection: model.Projection{Weather: model.Weather{WindKMH: 50}}}
	if _, ok := checkWeatherRisk(windy, testNow); !ok {
		t.Fatal("windy forecast should flag")
	}
}

func TestByeClusterNeedsMinimum(t *testing.T) {
	squad := make([]model.Player, 0, 10)
	for i := 0; i < byeClusterMinimum-1; i++ {
		squad = append(squad, model.Player{ByeRound: 13})
	}
	if _, ok := checkByeCluster(squad, 5, testNow); ok {
		t.Fatal("cluster below minimum should not flag")
	}

	squad = append(squad, model.Player{ByeRound: 13})
	a, ok := checkByeCluster(squad, 5, testNow)
	if !ok {
		t.Fatal("cluster at minimum should flag")
	}
	if a.Type != TypeByeCluster || a.PlayerID != "" {
		t.Fatalf("unexpected alert %+v", a)
	}

	// Byes already passed do not count.
	if _, ok := checkByeCluster(squad, 14, testNow); ok {
		t.Fatal("past byes should not flag")
	}

	// Bye values outside the season's scheduled bye rounds are bad rows.
	junk := make([]model.Player, byeClusterMinimum)
	for i := range junk {
		junk[i] = model.Player{ByeRound: 20}
	}
	if _, ok := checkByeCluster(junk, 5, testNow); ok {
		t.Fatal("unscheduled bye round should not flag")
	}
}

func TestContractMotivationNeedsFormUptick(t *testing.T) {
	flat := model.Player{Name: "X", ContractYear: true, AverageScore: 80, RecentScores: []int{80, 80, 80}}
	if _, ok := checkContractMotivation(flat, testNow); ok {
		t.Fatal("flat form should not flag")
	}

	surging := model.Player{Name: "X", ContractYear: true, AverageScore: 80, RecentScores: []int{95, 100, 98}}
	if _, ok := checkContractMotivation(surging, testNow); !ok {
		t.Fatal("surging contract-year player should flag")
	}

	contracted := model.Player{Name: "X", ContractYear: false, AverageScore: 80, RecentScores: []int{95, 100, 98}}
	if _, ok := checkContractMotivation(contracted, testNow); ok {
		t.Fatal("contracted player should not flag")
	}
}

func TestCheckAllRulesIndependent(t *testing.T) {
	p := model.Player{
		ID: "1", Name: "Walking Red Flag",
		AverageScore: 60, Breakeven: 105,
		Injury:     model.InjuryRisk{Level: model.InjurySevere, Score: 85},
		Projection: model.Projection{Weather: model.Weather{RainChance: 0.9}},
	}
	flags := CheckAll([]model.Player{p}, 3, testNow)

	types := make(map[Type]bool)
	for _, a := range flags {
		types[a.Type] = true
	}
	for _, want := range []Type{TypePriceDropRisk, TypeBreakevenCliff, TypeInjuryEscalation, TypeWeatherRisk} {
		if !types[want] {
			t.Errorf("missing %s in %v", want, types)
		}
	}
}
