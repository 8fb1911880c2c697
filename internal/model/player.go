// Package model defines the core player record and the derived snapshot
// types produced by the recommendation engine. Players are value-like
// records replaced wholesale on refresh; derived types are immutable
// snapshots computed from a player list.
package model

import "time"

// Position is a player's on-field position group.
type Position string

const (
	Defender   Position = "DEF"
	Midfielder Position = "MID"
	Ruck       Position = "RUC"
	Forward    Position = "FWD"
)

// Valid reports whether p is one of the four position groups.
func (p Position) Valid() bool {
	switch p {
	case Defender, Midfielder, Ruck, Forward:
		return true
	}
	return false
}

// InjuryRiskLevel buckets a player's injury exposure.
type InjuryRiskLevel string

const (
	InjuryLow      InjuryRiskLevel = "low"
	InjuryModerate InjuryRiskLevel = "moderate"
	InjuryHigh     InjuryRiskLevel = "high"
	InjurySevere   InjuryRiskLevel = "severe"
)

// InjuryRisk carries the level, a 0-100 risk score, and recent history.
type InjuryRisk struct {
	Level   InjuryRiskLevel `json:"level"`
	Score   float64         `json:"score"`
	History []string        `json:"history,omitempty"`
}

// Weather is the forecast for a player's next fixture.
type Weather struct {
	Condition  string  `json:"condition"`
	RainChance float64 `json:"rain_chance"` // 0-1
	WindKMH    float64 `json:"wind_kmh"`
	TempC      float64 `json:"temp_c"`
}

// Projection describes a player's next-round fixture and projected output.
type Projection struct {
	Round          int     `json:"round"`
	Opponent       string  `json:"opponent"`
	Venue          string  `json:"venue"`
	ProjectedScore float64 `json:"projected_score"`
	// DVPRank ranks the opponent's defense against this player's position,
	// 1 (hardest matchup) to 18 (easiest).
	DVPRank int     `json:"dvp_rank"`
	Weather Weather `json:"weather"`
}

// VenuePerformance is a player's scoring history at one ground.
type VenuePerformance struct {
	Venue        string  `json:"venue"`
	Games        int     `json:"games"`
	AverageScore float64 `json:"average_score"`
}

// Player is the core entity, refreshed wholesale from the upstream API.
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Team     string   `json:"team"`
	Position Position `json:"position"`

	Price        int     `json:"price"`
	CurrentScore int     `json:"current_score"`
	AverageScore float64 `json:"average_score"`
	HighScore    int     `json:"high_score"`
	LowScore     int     `json:"low_score"`
	Breakeven    int     `json:"breakeven"`

	// Consistency is 0-100; 100 means the player never deviates from
	// their average.
	Consistency  float64    `json:"consistency"`
	RecentScores []int      `json:"recent_scores,omitempty"`
	Injury       InjuryRisk `json:"injury"`

	PriceChangeLastRound int `json:"price_change_last_round"`
	PriceChangeSeason    int `json:"price_change_season"`
	StartPrice           int `json:"start_price"`

	Projection   Projection         `json:"projection"`
	VenueHistory []VenuePerformance `json:"venue_history,omitempty"`

	ByeRound     int  `json:"bye_round"`
	ContractYear bool `json:"contract_year"`
	IsCashCow    bool `json:"is_cash_cow"`
}

// FormRatio is recent average divided by season average, the raw input to
// the captain form factor. Returns 1 when there is no usable history.
func (p Player) FormRatio() float64 {
	if p.AverageScore <= 0 || len(p.RecentScores) == 0 {
		return 1
	}
	n := len(p.RecentScores)
	if n > 3 {
		n = 3
	}
	sum := 0
	for _, s := range p.RecentScores[len(p.RecentScores)-n:] {
		sum += s
	}
	return float64(sum) / float64(n) / p.AverageScore
}

// VenueAverage returns the player's historical average at a venue and
// whether any history exists there.
func (p Player) VenueAverage(venue string) (float64, bool) {
	for _, v := range p.VenueHistory {
		if v.Venue == venue && v.Games > 0 {
			return v.AverageScore, true
		}
	}
	return 0, false
}

// --------------------------------------------------------------------------
// Derived snapshots
// --------------------------------------------------------------------------

// CaptainSuggestion is one ranked captain pick for a round.
type CaptainSuggestion struct {
	PlayerID       string   `json:"player_id"`
	PlayerName     string   `json:"player_name"`
	Team           string   `json:"team"`
	Position       Position `json:"position"`
	Round          int      `json:"round"`
	Score          float64  `json:"score"`           // 0-100 confidence
	ProjectedScore float64  `json:"projected_score"` // adjusted projection
	Reasons        []string `json:"reasons"`
}

// TradeRecommendation scores swapping PlayerOut for PlayerIn.
type TradeRecommendation struct {
	PlayerOutID string   `json:"player_out_id"`
	PlayerOut   string   `json:"player_out"`
	PlayerInID  string   `json:"player_in_id"`
	PlayerIn    string   `json:"player_in"`
	Score       float64  `json:"score"` // 0-100, 50 = neutral
	Verdict     string   `json:"verdict"`
	NetCost     int      `json:"net_cost"`
	Reasons     []string `json:"reasons"`
}

// SellRecommendation is the four-state cash-cow sell timing decision.
type SellRecommendation string

const (
	SellHold      SellRecommendation = "hold"
	SellSoon      SellRecommendation = "sell_soon"
	SellNow       SellRecommendation = "sell_now"
	SellEmergency SellRecommendation = "emergency"
)

// CashCowAnalysis is the sell-timing snapshot for one cash cow.
type CashCowAnalysis struct {
	PlayerID       string             `json:"player_id"`
	PlayerName     string             `json:"player_name"`
	Price          int                `json:"price"`
	GeneratedCash  int                `json:"generated_cash"`
	Recommendation SellRecommendation `json:"recommendation"`
	Reasons        []string           `json:"reasons"`
}

// Dashboard is the combined result of the four upstream queries, assembled
// only after all fetches complete.
type Dashboard struct {
	TeamValue   int       `json:"team_value"`
	TeamScore   int       `json:"team_score"`
	OverallRank int       `json:"overall_rank"`
	CaptainID   string    `json:"captain_id"`
	CaptainName string    `json:"captain_name"`
	FetchedAt   time.Time `json:"fetched_at"`
}
