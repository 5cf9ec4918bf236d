package models

import (
	"time"

	"github.com/hetulpatel/betsizer/internal/sizing"
)

// Market is a normalized binary market as supplied by an external
// market-data collector.
type Market struct {
	MarketID string `json:"market_id"`
	Question string `json:"question"`
	// Probability is the current quoted YES probability.
	Probability float64 `json:"probability"`
	// Subsidy is the market's LMSR liquidity parameter.
	Subsidy      float64   `json:"subsidy"`
	CloseTime    time.Time `json:"close_time,omitempty"`
	Volume       float64   `json:"volume,omitempty"`
	ReferenceURL string    `json:"reference_url,omitempty"`
}

// MarketSnapshot is the payload placed on the snapshots Kafka topic.
type MarketSnapshot struct {
	Market     Market    `json:"market"`
	CapturedAt time.Time `json:"captured_at"`
}

// NewSnapshot stamps a market with its capture time.
func NewSnapshot(market Market, capturedAt time.Time) MarketSnapshot {
	return MarketSnapshot{Market: market, CapturedAt: capturedAt}
}

// Recommendation is the payload published on the recommendations topic and
// journaled in SQLite. It records the sizing advice, not an executed trade.
type Recommendation struct {
	MarketID     string        `json:"market_id"`
	Question     string        `json:"question"`
	Side         sizing.Side   `json:"side"`
	Amount       float64       `json:"amount"`
	ExpectedProb float64       `json:"expected_prob"`
	Impact       float64       `json:"impact"`
	Edge         float64       `json:"edge"`
	TrueProb     float64       `json:"true_prob"`
	Confidence   float64       `json:"confidence"`
	MarketProb   float64       `json:"market_prob"`
	Maker        string        `json:"maker"`
	Rationale    string        `json:"rationale,omitempty"`
	ClampedBy    sizing.Clamp  `json:"clamped_by"`
	Reason       sizing.Reason `json:"reason,omitempty"`
	Iterations   int           `json:"iterations"`
	Converged    bool          `json:"converged"`
	DecidedAt    time.Time     `json:"decided_at"`
}

// Actionable reports whether the recommendation asks for a bet at all.
func (r Recommendation) Actionable() bool {
	return r.Side != sizing.SideNone && r.Amount > 0
}
