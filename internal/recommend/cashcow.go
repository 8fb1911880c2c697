package recommend

import (
	"fmt"
	"sort"

	"github.com/aflcoach/aflcoach-data/internal/model"
)

// --------------------------------------------------------------------------
// Cash-cow sell-timing constants
// --------------------------------------------------------------------------

const (
	// Margin = average score minus breakeven.
	emergencyMargin = -30.0
	sellSoonMargin  = 10.0

	emergencyInjuryScore = 80.0
	sellNowInjuryScore   = 60.0
	sellSoonConsistency  = 40.0
)

// SellTiming classifies one cash cow. It is a pure function of
// (averageScore - breakeven), the injury-risk score, and consistency.
func SellTiming(p model.Player) model.SellRecommendation {
	margin := p.AverageScore - float64(p.Breakeven)

	switch {
	case p.Injury.Score >= emergencyInjuryScore || margin <= emergencyMargin:
		return model.SellEmergency
	case margin <= 0 || p.Injury.Score >= sellNowInjuryScore:
		return model.SellNow
	case margin < sellSoonMargin || p.Consistency < sellSoonConsistency:
		return model.SellSoon
	default:
		return model.SellHold
	}
}

// AnalyzeCashCows classifies every flagged cash cow, ordered by generated
// cash descending.
func AnalyzeCashCows(players []model.Player) []model.CashCowAnalysis {
	var analyses []model.CashCowAnalysis
	for _, p := range players {
		if !p.IsCashCow {
			continue
		}
		analyses = append(analyses, analyzeCow(p))
	}
	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].GeneratedCash > analyses[j].GeneratedCash
	})
	return analyses
}

func analyzeCow(p model.Player) model.CashCowAnalysis {
	rec := SellTiming(p)
	generated := p.Price - p.StartPrice
	margin := p.AverageScore - float64(p.Breakeven)

	reasons := []string{
		fmt.Sprintf("generated $%dk since season start", generated/1000),
	}
	switch {
	case margin <= 0:
		reasons = append(reasons, fmt.Sprintf("breakeven %d exceeds average %.1f — price will fall", p.Breakeven, p.AverageScore))
	case margin < sellSoonMargin:
		reasons = append(reasons, fmt.Sprintf("only %.1f points above breakeven — growth flattening", margin))
	default:
		reasons = append(reasons, fmt.Sprintf("%.1f points above breakeven — still climbing", margin))
	}
	if p.Injury.Score >= sellNowInjuryScore {
		reasons = append(reasons, fmt.Sprintf("injury risk %s (%.0f)", p.Injury.Level, p.Injury.Score))
	}

	return model.CashCowAnalysis{
		PlayerID:       p.ID,
		PlayerName:     p.Name,
		Price:          p.Price,
		GeneratedCash:  generated,
		Recommendation: rec,
		Reasons:        reasons,
	}
}
