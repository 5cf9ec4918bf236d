// Package decision defines the pluggable estimators that feed the sizing
// engine. A Maker looks at a market and produces the two values sizing needs:
// a believed true probability and a confidence. Makers never size bets.
package decision

import (
	"context"

	"github.com/hetulpatel/betsizer/internal/models"
)

// Estimate is a decision maker's opinion about one market.
type Estimate struct {
	TrueProb   float64 `json:"true_prob"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale,omitempty"`
}

// Maker produces probability estimates for markets. The second return value
// reports whether the maker has an opinion at all; abstaining is not an
// error.
type Maker interface {
	Name() string
	Estimate(ctx context.Context, market models.Market) (Estimate, bool, error)
}

// Static always returns a fixed estimate. It wires externally computed
// estimates into the pipeline and keeps tests deterministic.
type Static struct {
	Prob float64
	Conf float64
	Why  string
}

func (s Static) Name() string { return "static" }

func (s Static) Estimate(ctx context.Context, market models.Market) (Estimate, bool, error) {
	return Estimate{TrueProb: s.Prob, Confidence: s.Conf, Rationale: s.Why}, true, nil
}
