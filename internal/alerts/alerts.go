// Package alerts evaluates rule-based checks over player records and
// manages the resulting flags: de-duplication, 7/30-day retention windows,
// and background dispatch of urgent flags.
//
// Pipeline: check rules → dedup into store → dispatch worker sends
// critical/high flags through the configured sender.
package alerts

import (
	"time"

	"github.com/google/uuid"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	activeRetention  = 7 * 24 * time.Hour  // active flags older than this move to history
	historyRetention = 30 * 24 * time.Hour // history older than this is discarded
	dispatchInterval = 30 * time.Second
)

// Type identifies which rule produced a flag.
type Type string

const (
	TypePriceDropRisk      Type = "price_drop_risk"
	TypeBreakevenCliff     Type = "breakeven_cliff"
	TypeInjuryEscalation   Type = "injury_escalation"
	TypeWeatherRisk        Type = "weather_risk"
	TypeByeCluster         Type = "bye_cluster"
	TypeContractMotivation Type = "contract_motivation"
)

// Priority orders flags for display and gates dispatch.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// urgent reports whether a priority qualifies for push dispatch.
func (p Priority) urgent() bool {
	return p == PriorityHigh || p == PriorityCritical
}

// Alert is one flagged condition. Immutable once created.
type Alert struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Priority   Priority  `json:"priority"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	PlayerID   string    `json:"player_id,omitempty"`
	PlayerName string    `json:"player_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	dispatched bool
}

func newAlert(t Type, priority Priority, title, body, playerID, playerName string, now time.Time) Alert {
	return Alert{
		ID:         uuid.NewString(),
		Type:       t,
		Priority:   priority,
		Title:      title,
		Body:       body,
		PlayerID:   playerID,
		PlayerName: playerName,
		CreatedAt:  now,
	}
}
