package alerts

import (
	"fmt"
	"time"

	"github.com/aflcoach/aflcoach-data/internal/config"
	"github.com/aflcoach/aflcoach-data/internal/model"
)

// --------------------------------------------------------------------------
// Rule thresholds
// --------------------------------------------------------------------------

const (
	// Price-drop risk fires when breakeven exceeds the projected score by
	// more than 10%; the factor it contributes is fixed.
	priceDropFactor    = 0.3
	priceDropBEMargin  = 1.1
	breakevenCliffGap  = 20.0
	breakevenCrashGap  = 40.0
	weatherRainChance  = 0.6
	weatherWindKMH     = 35.0
	byeClusterMinimum  = 6
	contractFormUptick = 1.05
)

// CheckAll evaluates every rule against every player plus the list-level
// bye-round clustering check. Each rule is independent.
func CheckAll(players []model.Player, round int, now time.Time) []Alert {
	var flags []Alert
	for _, p := range players {
		flags = append(flags, CheckPlayer(p, now)...)
	}
	if a, ok := checkByeCluster(players, round, now); ok {
		flags = append(flags, a)
	}
	return flags
}

// CheckPlayer runs the per-player rules.
func CheckPlayer(p model.Player, now time.Time) []Alert {
	var flags []Alert
	if a, ok := checkPriceDropRisk(p, now); ok {
		flags = append(flags, a)
	}
	if a, ok := checkBreakevenCliff(p, now); ok {
		flags = append(flags, a)
	}
	if a, ok := checkInjuryEscalation(p, now); ok {
		flags = append(flags, a)
	}
	if a, ok := checkWeatherRisk(p, now); ok {
		flags = append(flags, a)
	}
	if a, ok := checkContractMotivation(p, now); ok {
		flags = append(flags, a)
	}
	return flags
}

// PriceDropRiskFactor is the fixed contribution the price-drop rule makes:
// 0.3 when breakeven exceeds the projected score by more than 10%, else 0.
func PriceDropRiskFactor(p model.Player) float64 {
	projected := p.Projection.ProjectedScore
	if projected <= 0 {
		projected = p.AverageScore
	}
	if float64(p.Breakeven) > projected*priceDropBEMargin {
		return priceDropFactor
	}
	return 0
}

func checkPriceDropRisk(p model.Player, now time.Time) (Alert, bool) {
	if PriceDropRiskFactor(p) == 0 {
		return Alert{}, false
	}
	return newAlert(
		TypePriceDropRisk,
		PriorityMedium,
		fmt.Sprintf("%s price drop risk", p.Name),
		fmt.Sprintf("Breakeven %d is well above projected output — expect a price fall.", p.Breakeven),
		p.ID, p.Name, now,
	), true
}

func checkBreakevenCliff(p model.Player, now time.Time) (Alert, bool) {
	if p.AverageScore <= 0 {
		return Alert{}, false
	}
	gap := float64(p.Breakeven) - p.AverageScore
	if gap < breakevenCliffGap {
		return Alert{}, false
	}
	priority := PriorityHigh
	if gap >= breakevenCrashGap {
		priority = PriorityCritical
	}
	return newAlert(
		TypeBreakevenCliff,
		priority,
		fmt.Sprintf("%s breakeven cliff", p.Name),
		fmt.Sprintf("Breakeven %d sits %.0f points above the %.1f average.", p.Breakeven, gap, p.AverageScore),
		p.ID, p.Name, now,
	), true
}

func checkInjuryEscalation(p model.Player, now time.Time) (Alert, bool) {
	var priority Priority
	switch p.Injury.Level {
	case model.InjurySevere:
		priority = PriorityCritical
	case model.InjuryHigh:
		priority = PriorityHigh
	default:
		return Alert{}, false
	}
	body := fmt.Sprintf("Injury risk escalated to %s (score %.0f).", p.Injury.Level, p.Injury.Score)
	if n := len(p.Injury.History); n > 0 {
		body += fmt.Sprintf(" Latest: %s.", p.Injury.History[n-1])
	}
	return newAlert(
		TypeInjuryEscalation,
		priority,
		fmt.Sprintf("%s injury escalation", p.Name),
		body,
		p.ID, p.Name, now,
	), true
}

func checkWeatherRisk(p model.Player, now time.Time) (Alert, bool) {
	w := p.Projection.Weather
	if w.RainChance <= weatherRainChance && w.WindKMH <= weatherWindKMH {
		return Alert{}, false
	}
	return newAlert(
		TypeWeatherRisk,
		PriorityLow,
		fmt.Sprintf("%s weather risk", p.Name),
		fmt.Sprintf("Forecast %s at %s vs %s.", w.Condition, p.Projection.Venue, p.Projection.Opponent),
		p.ID, p.Name, now,
	), true
}

func checkContractMotivation(p model.Player, now time.Time) (Alert, bool) {
	if !p.ContractYear || p.FormRatio() < contractFormUptick {
		return Alert{}, false
	}
	return newAlert(
		TypeContractMotivation,
		PriorityLow,
		fmt.Sprintf("%s contract-year surge", p.Name),
		"Out-of-contract and trending above season average.",
		p.ID, p.Name, now,
	), true
}

// checkByeCluster is the one list-level rule: too many of the squad sharing
// a bye round leaves the team short that week. Only the season's scheduled
// bye rounds count; a stray bye value from a bad upstream row is ignored.
func checkByeCluster(players []model.Player, round int, now time.Time) (Alert, bool) {
	counts := make(map[int]int)
	for _, p := range players {
		if p.ByeRound > round && scheduledBye(p.ByeRound) {
			counts[p.ByeRound]++
		}
	}
	worstRound, worstCount := 0, 0
	for bye, n := range counts {
		if n > worstCount || (n == worstCount && bye < worstRound) {
			worstRound, worstCount = bye, n
		}
	}
	if worstCount < byeClusterMinimum {
		return Alert{}, false
	}
	return newAlert(
		TypeByeCluster,
		PriorityMedium,
		fmt.Sprintf("Round %d bye cluster", worstRound),
		fmt.Sprintf("%d players share the round %d bye — plan trades early.", worstCount, worstRound),
		"", "", now,
	), true
}

func scheduledBye(round int) bool {
	for _, b := range config.ByeRounds {
		if b == round {
			return true
		}
	}
	return false
}
