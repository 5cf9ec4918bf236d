package decision

import (
	"context"
	"fmt"

	"github.com/hetulpatel/betsizer/internal/models"
)

// RuleBased fades extreme quotes: markets priced beyond the [Low, High] band
// are assumed to overstate their extremity (longshot bias and its mirror),
// so the believed probability is the quote shaded toward 0.5. Inside the
// band the maker abstains.
type RuleBased struct {
	// Low and High bound the no-opinion band.
	Low  float64
	High float64
	// Shade is the fraction of the distance toward 0.5 to walk back.
	Shade float64
	// Confidence is reported with every opinion.
	Confidence float64
}

// NewRuleBased returns the fade rule with its stock parameters.
func NewRuleBased() *RuleBased {
	return &RuleBased{Low: 0.1, High: 0.9, Shade: 0.4, Confidence: 0.7}
}

func (r *RuleBased) Name() string { return "rule_fade_extremes" }

func (r *RuleBased) Estimate(ctx context.Context, market models.Market) (Estimate, bool, error) {
	p := market.Probability
	if p > r.Low && p < r.High {
		return Estimate{}, false, nil
	}
	shaded := p + r.Shade*(0.5-p)
	return Estimate{
		TrueProb:   shaded,
		Confidence: r.Confidence,
		Rationale:  fmt.Sprintf("faded extreme quote %.3f toward 0.5 by %.0f%%", p, r.Shade*100),
	}, true, nil
}
