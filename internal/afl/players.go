package afl

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aflcoach/aflcoach-data/internal/model"
)

// playerPayload mirrors the loose player shape the upstream returns. Field
// names vary between deployments, so aliases sit side by side and
// normalize() picks whichever is populated.
type playerPayload struct {
	// IDs arrive as numbers or quoted strings depending on deployment.
	ID        json.RawMessage `json:"id"`
	Name      string          `json:"name"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Team      string          `json:"team"`
	Squad     string          `json:"squad_name"`
	Position  string          `json:"position"`
	Pos       string          `json:"pos"`

	Price int `json:"price"`
	Cost  int `json:"cost"`

	CurrentScore int     `json:"current_score"`
	RoundScore   int     `json:"round_score"`
	AvgPoints    float64 `json:"avg_points"`
	Average      float64 `json:"average"`
	HighScore    int     `json:"high_score"`
	LowScore     int     `json:"low_score"`
	Breakeven    int     `json:"breakeven"`
	BE           int     `json:"be"`

	Consistency  float64 `json:"consistency"`
	RecentScores []int   `json:"recent_scores"`
	LastScores   []int   `json:"last_scores"`

	StartPrice       int `json:"start_price"`
	SeasonStartPrice int `json:"season_start_price"`
	PriceChange      int `json:"price_change"`
	SeasonChange     int `json:"season_price_change"`

	Injury     *injuryPayload     `json:"injury"`
	InjuryRisk *injuryPayload     `json:"injury_risk"`
	Projection *projectionPayload `json:"projection"`
	NextRound  *projectionPayload `json:"next_round"`

	VenueHistory []venuePayload `json:"venue_history"`
	VenueStats   []venuePayload `json:"venue_stats"`

	ByeRound     int  `json:"bye_round"`
	Bye          int  `json:"bye"`
	ContractYear bool `json:"contract_year"`
	IsCashCow    bool `json:"is_cash_cow"`
	CashCow      bool `json:"cash_cow"`
}

type injuryPayload struct {
	Level     string   `json:"level"`
	RiskLevel string   `json:"risk_level"`
	Score     float64  `json:"score"`
	RiskScore float64  `json:"risk_score"`
	History   []string `json:"history"`
}

type projectionPayload struct {
	Round          int            `json:"round"`
	Opponent       string         `json:"opponent"`
	Venue          string         `json:"venue"`
	ProjectedScore float64        `json:"projected_score"`
	Projected      float64        `json:"projected"`
	DVPRank        int            `json:"dvp_rank"`
	DVP            int            `json:"dvp"`
	Weather        weatherPayload `json:"weather"`
}

type weatherPayload struct {
	Condition  string  `json:"condition"`
	RainChance float64 `json:"rain_chance"`
	Rain       float64 `json:"rain"`
	WindKMH    float64 `json:"wind_kmh"`
	Wind       float64 `json:"wind"`
	TempC      float64 `json:"temp_c"`
	Temp       float64 `json:"temp"`
}

type venuePayload struct {
	Venue        string  `json:"venue"`
	Ground       string  `json:"ground"`
	Games        int     `json:"games"`
	AverageScore float64 `json:"average_score"`
	Avg          float64 `json:"avg"`
}

// playerListEnvelope covers the list wrappers seen in the wild.
type playerListEnvelope struct {
	Players []playerPayload `json:"players"`
	Data    []playerPayload `json:"data"`
	Result  []playerPayload `json:"result"`
}

// Players fetches the full player list.
func (c *Client) Players(ctx context.Context) ([]model.Player, error) {
	var players []model.Player
	err := c.fetchFirst(ctx, "player list", playerListPaths(), func(body []byte) bool {
		parsed, ok := parsePlayers(body)
		if ok {
			players = parsed
		}
		return ok
	})
	return players, err
}

func parsePlayers(body []byte) ([]model.Player, bool) {
	var payloads []playerPayload

	// Bare array first, then the envelope variants.
	if err := json.Unmarshal(body, &payloads); err != nil {
		var env playerListEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, false
		}
		switch {
		case len(env.Players) > 0:
			payloads = env.Players
		case len(env.Data) > 0:
			payloads = env.Data
		case len(env.Result) > 0:
			payloads = env.Result
		}
	}
	if len(payloads) == 0 {
		return nil, false
	}

	players := make([]model.Player, 0, len(payloads))
	for _, p := range payloads {
		player, ok := p.normalize()
		if !ok {
			continue
		}
		players = append(players, player)
	}
	if len(players) == 0 {
		return nil, false
	}
	return players, true
}

// normalize folds the alias fields down to one model.Player. A payload with
// no id or no resolvable name is dropped.
func (p playerPayload) normalize() (model.Player, bool) {
	id := rawID(p.ID)
	if id == "" {
		return model.Player{}, false
	}

	name := p.Name
	if name == "" {
		name = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	if name == "" {
		return model.Player{}, false
	}

	team := p.Team
	if team == "" {
		team = p.Squad
	}

	player := model.Player{
		ID:           id,
		Name:         name,
		Team:         team,
		Position:     parsePosition(firstNonEmpty(p.Position, p.Pos)),
		Price:        firstNonZero(p.Price, p.Cost),
		CurrentScore: firstNonZero(p.CurrentScore, p.RoundScore),
		AverageScore: firstNonZeroF(p.AvgPoints, p.Average),
		HighScore:    p.HighScore,
		LowScore:     p.LowScore,
		Breakeven:    firstNonZero(p.Breakeven, p.BE),
		Consistency:  p.Consistency,

		StartPrice:           firstNonZero(p.StartPrice, p.SeasonStartPrice),
		PriceChangeLastRound: p.PriceChange,
		PriceChangeSeason:    p.SeasonChange,

		ByeRound:     firstNonZero(p.ByeRound, p.Bye),
		ContractYear: p.ContractYear,
		IsCashCow:    p.IsCashCow || p.CashCow,
	}
	if len(p.RecentScores) > 0 {
		player.RecentScores = p.RecentScores
	} else {
		player.RecentScores = p.LastScores
	}

	if inj := firstPresent(p.Injury, p.InjuryRisk); inj != nil {
		player.Injury = inj.normalize()
	}
	if proj := firstPresent(p.Projection, p.NextRound); proj != nil {
		player.Projection = proj.normalize()
	}
	venues := p.VenueHistory
	if len(venues) == 0 {
		venues = p.VenueStats
	}
	player.VenueHistory = normalizeVenues(venues)
	return player, true
}

func (i injuryPayload) normalize() model.InjuryRisk {
	return model.InjuryRisk{
		Level:   parseInjuryLevel(firstNonEmpty(i.Level, i.RiskLevel)),
		Score:   firstNonZeroF(i.Score, i.RiskScore),
		History: i.History,
	}
}

func (pr projectionPayload) normalize() model.Projection {
	w := pr.Weather
	return model.Projection{
		Round:          pr.Round,
		Opponent:       pr.Opponent,
		Venue:          pr.Venue,
		ProjectedScore: firstNonZeroF(pr.ProjectedScore, pr.Projected),
		DVPRank:        firstNonZero(pr.DVPRank, pr.DVP),
		Weather: model.Weather{
			Condition:  w.Condition,
			RainChance: firstNonZeroF(w.RainChance, w.Rain),
			WindKMH:    firstNonZeroF(w.WindKMH, w.Wind),
			TempC:      firstNonZeroF(w.TempC, w.Temp),
		},
	}
}

func normalizeVenues(venues []venuePayload) []model.VenuePerformance {
	if len(venues) == 0 {
		return nil
	}
	out := make([]model.VenuePerformance, 0, len(venues))
	for _, v := range venues {
		venue := firstNonEmpty(v.Venue, v.Ground)
		if venue == "" {
			continue
		}
		out = append(out, model.VenuePerformance{
			Venue:        venue,
			Games:        v.Games,
			AverageScore: firstNonZeroF(v.AverageScore, v.Avg),
		})
	}
	return out
}

func parsePosition(raw string) model.Position {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEF", "DEFENDER", "BACK":
		return model.Defender
	case "MID", "MIDFIELDER":
		return model.Midfielder
	case "RUC", "RUCK":
		return model.Ruck
	case "FWD", "FORWARD":
		return model.Forward
	default:
		return model.Midfielder
	}
}

func parseInjuryLevel(raw string) model.InjuryRiskLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "moderate", "medium":
		return model.InjuryModerate
	case "high":
		return model.InjuryHigh
	case "severe", "extreme":
		return model.InjurySevere
	default:
		return model.InjuryLow
	}
}

func rawID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	if s == "null" {
		return ""
	}
	return s
}

func firstPresent[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

func firstNonZeroF(a, b float64) float64 {
	if a != 0 {
		return a
	}
	return b
}
