// Package sizing computes market-impact-aware fractional Kelly bet sizes for
// binary markets. The recommended amount is the fixed point between "Kelly
// size at the post-trade marginal probability" and "the amount that produces
// that marginal probability", found by bisection, then bounded by the
// configured risk limits.
package sizing

import (
	"fmt"
	"math"

	"github.com/hetulpatel/betsizer/internal/lmsr"
)

const (
	// maxIterations caps the bisection loop. 30 halvings are enough for
	// double precision over any realistic bankroll range.
	maxIterations = 30
	// minTolerance is the absolute floor for the convergence tolerance,
	// in currency units.
	minTolerance = 0.01
)

// SizeBet sizes a bet on a binary market. trueProb is the decision-maker's
// belief, marketProb the quoted price, confidence the decision-maker's
// self-reported certainty in [0, 1]. Gate rejections and no-edge cases are
// reported via Result.Reason; only invalid inputs return an error.
func SizeBet(trueProb, marketProb, confidence float64, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if !lmsr.ValidProb(trueProb) {
		return Result{}, fmt.Errorf("%w: true probability %v not strictly inside (0, 1)", ErrInvalidInput, trueProb)
	}
	if !lmsr.ValidProb(marketProb) {
		return Result{}, fmt.Errorf("%w: market probability %v not strictly inside (0, 1)", ErrInvalidInput, marketProb)
	}
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return Result{}, fmt.Errorf("%w: confidence %v outside [0, 1]", ErrInvalidInput, confidence)
	}

	edge := trueProb - marketProb
	skip := Result{
		Side:         SideNone,
		ExpectedProb: marketProb,
		Edge:         edge,
		ClampedBy:    ClampNone,
	}

	// Gate pre-conditions. Failing these is not an error.
	if confidence < cfg.MinConfidence {
		skip.Reason = ReasonLowConfidence
		return skip, nil
	}
	// Exact equality is checked before the threshold: with MinProbDiff = 0
	// the band is empty, but equal probabilities must still mean no bet.
	// Letting them through would hand naiveKelly a difference like
	// b*t - (1-t) that rounds to a tiny positive value for some prices, and
	// the min-bet round-up then turns that dust into a real bet.
	if edge == 0 {
		skip.Reason = ReasonNoEdge
		return skip, nil
	}
	if math.Abs(edge) < cfg.MinProbDiff {
		skip.Reason = ReasonLowEdge
		return skip, nil
	}

	// Work in the YES frame: a NO bet on (trueProb, marketProb) is a YES bet
	// on the mirrored market (1-trueProb, 1-marketProb). The log-odds shift
	// is antisymmetric, so the mirror is exact.
	side := SideYes
	t, p := trueProb, marketProb
	if edge < 0 {
		side = SideNo
		t, p = 1-trueProb, 1-marketProb
	}

	if naiveKelly(t, p) <= 0 {
		skip.Reason = ReasonNoEdge
		return skip, nil
	}

	calc, err := lmsr.New(cfg.MarketSubsidy)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	amount, iterations, converged := fixedPointAmount(t, p, calc, cfg)
	amount, clamp := applyBounds(amount, p, calc, cfg)

	res := Result{
		Amount:     amount,
		Side:       side,
		Edge:       edge,
		Iterations: iterations,
		Converged:  converged,
		ClampedBy:  clamp,
	}
	marginal := calc.MarginalProbability(p, amount)
	res.Impact = math.Abs(marginal - p)
	if side == SideNo {
		marginal = 1 - marginal
	}
	res.ExpectedProb = marginal
	if amount == 0 {
		res.Side = SideNone
		res.ExpectedProb = marketProb
		res.Impact = 0
	}
	return res, nil
}

// naiveKelly is the instantaneous fractional-Kelly formula at a quoted price,
// ignoring impact: b = (1/price) - 1, kelly = (b*t - (1-t)) / b. Zero when
// t equals the price, negative when the market overprices the outcome.
func naiveKelly(t, price float64) float64 {
	b := 1/price - 1
	return (b*t - (1 - t)) / b
}

// fixedPointAmount finds amount* = kellyFraction * bankroll * K(t, m(p, amount*))
// by bisection over [0, bankroll]. The right-hand side is non-increasing in
// the amount (more size, worse marginal price), so the crossing with the
// identity line is unique.
func fixedPointAmount(t, p float64, calc lmsr.Calculator, cfg Config) (amount float64, iterations int, converged bool) {
	lo, hi := 0.0, cfg.Bankroll
	tol := math.Max(1e-4*cfg.Bankroll, minTolerance)
	for i := 0; i < maxIterations; i++ {
		iterations++
		mid := (lo + hi) / 2
		k := naiveKelly(t, calc.MarginalProbability(p, mid))
		if cfg.KellyFraction*cfg.Bankroll*k-mid > 0 {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo <= tol {
			converged = true
			break
		}
	}
	return (lo + hi) / 2, iterations, converged
}

// applyBounds post-processes the fixed-point amount in the mirrored (YES)
// frame. Steps run in a fixed order and only ever reduce the amount: max-bet
// cap, min-bet floor, impact limit, and a final min-bet recheck so that any
// positive result satisfies MinBet <= amount <= MaxBet.
func applyBounds(amount, p float64, calc lmsr.Calculator, cfg Config) (float64, Clamp) {
	clamp := ClampNone

	if amount > cfg.MaxBet {
		amount = cfg.MaxBet
		clamp = ClampMaxBet
	}

	if amount > 0 && amount < cfg.MinBet {
		// Round up to the floor only if doing so stays inside the impact
		// budget; a bet that cannot meet the floor without breaching the
		// impact cap is not placed.
		if cfg.MinBet > 0 && calc.Impact(p, cfg.MinBet) <= cfg.MaxProbImpact {
			amount = cfg.MinBet
		} else {
			amount = 0
		}
		clamp = ClampMinBet
	}

	if amount > 0 {
		if impact := calc.Impact(p, amount); impact > cfg.MaxProbImpact {
			target := p + cfg.MaxProbImpact
			if target > 1-lmsr.ProbEpsilon {
				target = 1 - lmsr.ProbEpsilon
			}
			if limit := calc.AmountForTarget(p, target); limit < amount {
				amount = limit
				clamp = ClampImpactLimit
			}
		}
	}

	if amount > 0 && amount < cfg.MinBet {
		amount = 0
		clamp = ClampMinBet
	}
	return amount, clamp
}
