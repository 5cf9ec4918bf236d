package decision

import (
	"context"
	"fmt"
	"strings"

	"github.com/hetulpatel/betsizer/internal/models"
)

// Ensemble combines member makers into one estimate: the confidence-weighted
// mean of the opinions, with the average member confidence. Members that
// abstain are skipped; the ensemble abstains when all do.
type Ensemble struct {
	members []Maker
}

func NewEnsemble(members ...Maker) *Ensemble {
	return &Ensemble{members: members}
}

func (e *Ensemble) Name() string { return "ensemble" }

func (e *Ensemble) Estimate(ctx context.Context, market models.Market) (Estimate, bool, error) {
	var (
		weightSum float64
		probSum   float64
		confSum   float64
		opined    int
		voters    []string
	)
	for _, m := range e.members {
		est, ok, err := m.Estimate(ctx, market)
		if err != nil {
			return Estimate{}, false, fmt.Errorf("ensemble member %s: %w", m.Name(), err)
		}
		if !ok {
			continue
		}
		if est.Confidence <= 0 {
			continue
		}
		weightSum += est.Confidence
		probSum += est.Confidence * est.TrueProb
		confSum += est.Confidence
		opined++
		voters = append(voters, m.Name())
	}
	if opined == 0 || weightSum == 0 {
		return Estimate{}, false, nil
	}
	return Estimate{
		TrueProb:   probSum / weightSum,
		Confidence: confSum / float64(opined),
		Rationale:  fmt.Sprintf("weighted vote of %s", strings.Join(voters, ", ")),
	}, true, nil
}
