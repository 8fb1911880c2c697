// Package recommend computes captain suggestions, trade scores, and
// cash-cow sell timing from player records. Everything here is a pure
// function over fixed constants: no state, no feedback loop.
package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/aflcoach/aflcoach-data/internal/model"
)

// --------------------------------------------------------------------------
// Captain scoring constants
// --------------------------------------------------------------------------

const (
	// Venue bias from the player's history at the ground, clamped.
	venueBiasMax = 0.15

	// Opponent factor from the DVP rank, linear over [-0.10, +0.10].
	opponentFactorMax = 0.10
	dvpMidpoint       = 9.5
	dvpHalfRange      = 8.5

	// Recent-form ratio clamp.
	formFloor   = 0.7
	formCeiling = 1.4

	// Weather deductions.
	rainChanceThreshold = 0.6
	rainPenalty         = -0.10
	windThresholdKMH    = 30
	windPenalty         = -0.05
	tempHighC           = 32
	tempLowC            = 5
	tempPenalty         = -0.03

	maxCaptainScore = 100
)

// SuggestCaptains ranks players as captain picks for a round and returns
// the top n, sorted by score descending with projected score as the
// tiebreaker.
func SuggestCaptains(players []model.Player, round, n int) []model.CaptainSuggestion {
	suggestions := make([]model.CaptainSuggestion, 0, len(players))
	for _, p := range players {
		if p.AverageScore <= 0 {
			continue
		}
		suggestions = append(suggestions, scoreCaptain(p, round))
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].ProjectedScore > suggestions[j].ProjectedScore
	})

	if n > 0 && len(suggestions) > n {
		suggestions = suggestions[:n]
	}
	return suggestions
}

// scoreCaptain applies the multiplicative factor chain to one player.
func scoreCaptain(p model.Player, round int) model.CaptainSuggestion {
	venueBonus := venueBonus(p)
	oppFactor := opponentFactor(p.Projection.DVPRank)
	form := clamp(p.FormRatio(), formFloor, formCeiling)
	consistency := p.Consistency / 100
	weather := weatherImpact(p.Projection.Weather)

	score := p.AverageScore *
		(1 + venueBonus) *
		(1 + oppFactor) *
		form *
		consistency *
		(1 + weather)
	score = clamp(score, 0, maxCaptainScore)

	// Projected output applies the matchup factors to the base projection;
	// consistency only shapes confidence, not the point estimate.
	projected := p.Projection.ProjectedScore
	if projected <= 0 {
		projected = p.AverageScore
	}
	projected = projected * (1 + venueBonus) * (1 + oppFactor) * form * (1 + weather)

	return model.CaptainSuggestion{
		PlayerID:       p.ID,
		PlayerName:     p.Name,
		Team:           p.Team,
		Position:       p.Position,
		Round:          round,
		Score:          round2(score),
		ProjectedScore: round2(projected),
		Reasons:        captainReasons(p, venueBonus, oppFactor, form, weather),
	}
}

// venueBonus maps the player's history at the next venue onto a bias
// relative to their season average.
func venueBonus(p model.Player) float64 {
	venueAvg, ok := p.VenueAverage(p.Projection.Venue)
	if !ok || p.AverageScore <= 0 {
		return 0
	}
	bias := (venueAvg - p.AverageScore) / p.AverageScore
	return clamp(bias, -venueBiasMax, venueBiasMax)
}

// opponentFactor maps DVP rank 1 (hardest) .. 18 (easiest) linearly onto
// [-opponentFactorMax, +opponentFactorMax]. Rank 0 means unknown.
func opponentFactor(dvpRank int) float64 {
	if dvpRank < 1 || dvpRank > 18 {
		return 0
	}
	return (float64(dvpRank) - dvpMidpoint) / dvpHalfRange * opponentFactorMax
}

// weatherImpact sums the fixed deductions for forecast conditions.
func weatherImpact(w model.Weather) float64 {
	impact := 0.0
	if w.RainChance > rainChanceThreshold {
		impact += rainPenalty
	}
	if w.WindKMH > windThresholdKMH {
		impact += windPenalty
	}
	if w.TempC > tempHighC || (w.TempC < tempLowC && w.TempC != 0) {
		impact += tempPenalty
	}
	return impact
}

func captainReasons(p model.Player, venue, opp, form, weather float64) []string {
	reasons := []string{fmt.Sprintf("averaging %.1f this season", p.AverageScore)}
	if venue > 0.02 {
		reasons = append(reasons, fmt.Sprintf("scores %.0f%% above average at %s", venue*100, p.Projection.Venue))
	} else if venue < -0.02 {
		reasons = append(reasons, fmt.Sprintf("historically down %.0f%% at %s", -venue*100, p.Projection.Venue))
	}
	if opp > 0.02 {
		reasons = append(reasons, fmt.Sprintf("favourable matchup vs %s (DVP %d/18)", p.Projection.Opponent, p.Projection.DVPRank))
	} else if opp < -0.02 {
		reasons = append(reasons, fmt.Sprintf("tough matchup vs %s (DVP %d/18)", p.Projection.Opponent, p.Projection.DVPRank))
	}
	if form > 1.05 {
		reasons = append(reasons, fmt.Sprintf("hot recent form (+%.0f%%)", (form-1)*100))
	} else if form < 0.95 {
		reasons = append(reasons, fmt.Sprintf("cold recent form (%.0f%%)", (form-1)*100))
	}
	if weather < 0 {
		reasons = append(reasons, fmt.Sprintf("weather risk at %s (%s)", p.Projection.Venue, p.Projection.Weather.Condition))
	}
	return reasons
}

// --------------------------------------------------------------------------
// Shared helpers
// --------------------------------------------------------------------------

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
