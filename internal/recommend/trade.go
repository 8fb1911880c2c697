package recommend

import (
	"fmt"

	"github.com/aflcoach/aflcoach-data/internal/model"
)

// --------------------------------------------------------------------------
// Trade scoring constants
// --------------------------------------------------------------------------

// The trade score is a weighted sum anchored at 50: above 50 favours the
// trade, below 50 opposes it.
const (
	tradeAnchor = 50.0

	pointsWeight      = 1.5  // per point of average improvement
	priceWeight       = 2.0  // per $100k freed up (negative when paying)
	consistencyWeight = 0.2  // per point of consistency improvement
	injuryWeight      = 0.15 // per point of injury-risk score reduction

	priceUnit = 100_000
)

// Verdict bands.
const (
	verdictStrongUpgrade = "strong upgrade"
	verdictUpgrade       = "upgrade"
	verdictSideways      = "sideways"
	verdictDowngrade     = "downgrade"
)

// ScoreTrade evaluates swapping out for in. Deterministic for fixed inputs.
func ScoreTrade(out, in model.Player) model.TradeRecommendation {
	pointsDelta := in.AverageScore - out.AverageScore
	priceDelta := out.Price - in.Price // positive = cash freed
	consistencyDelta := in.Consistency - out.Consistency
	injuryDelta := out.Injury.Score - in.Injury.Score // positive = risk reduced

	score := tradeAnchor +
		pointsWeight*pointsDelta +
		priceWeight*float64(priceDelta)/priceUnit +
		consistencyWeight*consistencyDelta +
		injuryWeight*injuryDelta
	score = clamp(score, 0, 100)

	return model.TradeRecommendation{
		PlayerOutID: out.ID,
		PlayerOut:   out.Name,
		PlayerInID:  in.ID,
		PlayerIn:    in.Name,
		Score:       round2(score),
		Verdict:     tradeVerdict(score),
		NetCost:     in.Price - out.Price,
		Reasons:     tradeReasons(pointsDelta, priceDelta, consistencyDelta, injuryDelta),
	}
}

func tradeVerdict(score float64) string {
	switch {
	case score >= 75:
		return verdictStrongUpgrade
	case score >= 60:
		return verdictUpgrade
	case score > 40:
		return verdictSideways
	default:
		return verdictDowngrade
	}
}

func tradeReasons(points float64, price int, consistency, injury float64) []string {
	var reasons []string
	if points > 0 {
		reasons = append(reasons, fmt.Sprintf("+%.1f points per round", points))
	} else if points < 0 {
		reasons = append(reasons, fmt.Sprintf("%.1f points per round", points))
	}
	if price > 0 {
		reasons = append(reasons, fmt.Sprintf("frees up $%dk", price/1000))
	} else if price < 0 {
		reasons = append(reasons, fmt.Sprintf("costs $%dk", -price/1000))
	}
	if consistency > 5 {
		reasons = append(reasons, "more consistent scorer")
	} else if consistency < -5 {
		reasons = append(reasons, "less consistent scorer")
	}
	if injury > 10 {
		reasons = append(reasons, "reduces injury exposure")
	} else if injury < -10 {
		reasons = append(reasons, "takes on injury risk")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "marginal change either way")
	}
	return reasons
}
