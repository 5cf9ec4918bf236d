package sizing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hetulpatel/betsizer/internal/lmsr"
)

// cfgFor builds a permissive config so individual tests can tighten one
// bound at a time.
func cfgFor(bankroll, subsidy float64) Config {
	return Config{
		KellyFraction: 0.25,
		MinBet:        1,
		MaxBet:        bankroll,
		MaxProbImpact: 1,
		Bankroll:      bankroll,
		MarketSubsidy: subsidy,
		MinConfidence: 0.6,
		MinProbDiff:   0.05,
	}
}

func TestImpactAwareBetSmallerThanNaiveKelly(t *testing.T) {
	// true 70% vs quoted 50%, $1000 bankroll, subsidy 100, quarter Kelly.
	// The naive Kelly bet is $100; pricing in its own impact shrinks it.
	cfg := cfgFor(1000, 100)
	res, err := SizeBet(0.7, 0.5, 0.9, cfg)
	require.NoError(t, err)

	assert.Equal(t, SideYes, res.Side)
	assert.InDelta(t, 50.63, res.Amount, 1.0)
	assert.InDelta(t, 0.124, res.Impact, 0.005)
	assert.InDelta(t, 0.624, res.ExpectedProb, 0.005)
	assert.InDelta(t, 0.2, res.Edge, 1e-12)
	assert.Equal(t, ClampNone, res.ClampedBy)
	assert.True(t, res.Converged)
	assert.Greater(t, res.Iterations, 0)
	assert.LessOrEqual(t, res.Iterations, 30)

	naive := 0.25 * 1000 * ((1/0.5-1)*0.7 - 0.3) / (1/0.5 - 1)
	assert.InDelta(t, 100, naive, 1e-9)
	assert.Less(t, res.Amount, naive)
}

func TestKellyFractionScalingIsMonotonic(t *testing.T) {
	// true 65% vs quoted 40%, $2000 bankroll, subsidy 200.
	want := map[float64]float64{
		0.1:  65.37,
		0.25: 116.27,
		0.5:  151.79,
		1.0:  175.84,
	}
	prev := 0.0
	for _, kf := range []float64{0.1, 0.25, 0.5, 1.0} {
		cfg := cfgFor(2000, 200)
		cfg.KellyFraction = kf
		res, err := SizeBet(0.65, 0.4, 0.9, cfg)
		require.NoError(t, err)
		assert.Equal(t, SideYes, res.Side)
		assert.InDelta(t, want[kf], res.Amount, 1.0, "kelly fraction %v", kf)
		assert.GreaterOrEqual(t, res.Amount, prev, "amount must not decrease as the fraction grows")
		prev = res.Amount
	}
}

func TestImpactLimitClampsToClosedForm(t *testing.T) {
	// Small market: true 80% vs quoted 30%, subsidy 50. The unconstrained
	// fixed point is ~$106, so every cap below binds.
	for _, cap := range []float64{0.01, 0.02, 0.05, 0.10} {
		cfg := cfgFor(5000, 50)
		cfg.MaxProbImpact = cap
		res, err := SizeBet(0.8, 0.3, 0.9, cfg)
		require.NoError(t, err)

		wantLimit := 50 * (lmsr.Logit(0.3+cap) - lmsr.Logit(0.3))
		assert.Equal(t, SideYes, res.Side)
		assert.Equal(t, ClampImpactLimit, res.ClampedBy)
		assert.InDelta(t, wantLimit, res.Amount, 1e-6, "cap %v", cap)
		assert.LessOrEqual(t, res.Impact, cap+1e-9, "cap %v", cap)
	}
}

func TestDegradesToNaiveKellyInDeepMarkets(t *testing.T) {
	cfg := cfgFor(1000, 1e9)
	res, err := SizeBet(0.7, 0.5, 0.9, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 100, res.Amount, 0.5)
	assert.Less(t, res.Impact, 1e-6)
}

func TestZeroEdgeReturnsNoBet(t *testing.T) {
	// Includes prices where b*t - (1-t) rounds to a tiny positive value at
	// t == p (0.3, 0.9): equal probabilities must short-circuit before the
	// Kelly formula sees them, or the min-bet floor inflates the rounding
	// dust into a bet.
	for _, p := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		for _, diff := range []float64{0, 0.05} {
			cfg := cfgFor(1000, 100)
			cfg.MinProbDiff = diff
			res, err := SizeBet(p, p, 0.9, cfg)
			require.NoError(t, err)
			assert.Equal(t, SideNone, res.Side, "p=%v diff=%v", p, diff)
			assert.Zero(t, res.Amount, "p=%v diff=%v", p, diff)
			assert.Equal(t, ReasonNoEdge, res.Reason, "p=%v diff=%v", p, diff)
		}
	}
}

func TestGateRejectsLowConfidence(t *testing.T) {
	cfg := cfgFor(1000, 100)
	res, err := SizeBet(0.7, 0.5, 0.5, cfg)
	require.NoError(t, err)
	assert.Equal(t, SideNone, res.Side)
	assert.Zero(t, res.Amount)
	assert.Equal(t, ReasonLowConfidence, res.Reason)
}

func TestGateRejectsSmallEdge(t *testing.T) {
	cfg := cfgFor(1000, 100)
	res, err := SizeBet(0.52, 0.5, 0.9, cfg)
	require.NoError(t, err)
	assert.Equal(t, SideNone, res.Side)
	assert.Equal(t, ReasonLowEdge, res.Reason)
}

func TestNoSideSymmetry(t *testing.T) {
	cases := []struct{ trueProb, marketProb float64 }{
		{0.7, 0.5},
		{0.65, 0.4},
		{0.8, 0.3},
	}
	for _, tc := range cases {
		cfg := cfgFor(1000, 100)
		yes, err := SizeBet(tc.trueProb, tc.marketProb, 0.9, cfg)
		require.NoError(t, err)
		no, err := SizeBet(1-tc.trueProb, 1-tc.marketProb, 0.9, cfg)
		require.NoError(t, err)

		assert.Equal(t, SideYes, yes.Side)
		assert.Equal(t, SideNo, no.Side)
		assert.InDelta(t, yes.Amount, no.Amount, 1e-9)
		assert.InDelta(t, yes.Impact, no.Impact, 1e-9)
		assert.InDelta(t, yes.ExpectedProb, 1-no.ExpectedProb, 1e-9)
		assert.InDelta(t, yes.Edge, -no.Edge, 1e-12)
	}
}

func TestMaxBetClamp(t *testing.T) {
	cfg := cfgFor(1000, 100)
	cfg.MaxBet = 20
	cfg.MaxProbImpact = 0.1
	res, err := SizeBet(0.7, 0.5, 0.9, cfg)
	require.NoError(t, err)
	assert.Equal(t, 20.0, res.Amount)
	assert.Equal(t, ClampMaxBet, res.ClampedBy)
	assert.LessOrEqual(t, res.Impact, 0.1+1e-9)
}

func TestMinBetRoundsUpWithinImpactBudget(t *testing.T) {
	// Tiny edge in a deep market: the fixed point lands below the floor
	// (~$0.96), and rounding up to $5 moves the price only ~0.25%.
	cfg := cfgFor(200, 500)
	cfg.MinBet = 5
	cfg.MaxProbImpact = 0.05
	cfg.MinProbDiff = 0
	res, err := SizeBet(0.51, 0.5, 0.9, cfg)
	require.NoError(t, err)
	assert.Equal(t, SideYes, res.Side)
	assert.Equal(t, 5.0, res.Amount)
	assert.Equal(t, ClampMinBet, res.ClampedBy)
}

func TestMinBetForcedToZeroWhenFloorBreachesImpactCap(t *testing.T) {
	cfg := cfgFor(200, 500)
	cfg.MinBet = 5
	cfg.MaxProbImpact = 0.001 // impact at the $5 floor is ~0.0025
	cfg.MinProbDiff = 0
	res, err := SizeBet(0.51, 0.5, 0.9, cfg)
	require.NoError(t, err)
	assert.Equal(t, SideNone, res.Side)
	assert.Zero(t, res.Amount)
	assert.Equal(t, ClampMinBet, res.ClampedBy)
}

func TestBoundsInvariants(t *testing.T) {
	cases := []struct {
		name                 string
		trueProb, marketProb float64
		cfg                  Config
	}{
		{"plain", 0.7, 0.5, cfgFor(1000, 100)},
		{"tight impact", 0.8, 0.3, func() Config { c := cfgFor(5000, 50); c.MaxProbImpact = 0.02; return c }()},
		{"tight max bet", 0.65, 0.4, func() Config { c := cfgFor(2000, 200); c.MaxBet = 30; return c }()},
		{"no side", 0.2, 0.6, cfgFor(1500, 80)},
		{"deep market", 0.55, 0.45, cfgFor(500, 1e6)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := SizeBet(tc.trueProb, tc.marketProb, 0.95, tc.cfg)
			require.NoError(t, err)
			if res.Amount > 0 {
				assert.GreaterOrEqual(t, res.Amount, tc.cfg.MinBet)
				assert.LessOrEqual(t, res.Amount, tc.cfg.MaxBet)
			} else {
				assert.Equal(t, SideNone, res.Side)
			}
			assert.LessOrEqual(t, res.Impact, tc.cfg.MaxProbImpact+1e-9)
			assert.False(t, math.IsNaN(res.ExpectedProb))
			assert.Greater(t, res.ExpectedProb, 0.0)
			assert.Less(t, res.ExpectedProb, 1.0)
		})
	}
}

func TestInvalidInputs(t *testing.T) {
	valid := cfgFor(1000, 100)
	cases := []struct {
		name                             string
		trueProb, marketProb, confidence float64
		cfg                              Config
	}{
		{"true prob zero", 0, 0.5, 0.9, valid},
		{"true prob one", 1, 0.5, 0.9, valid},
		{"market prob zero", 0.6, 0, 0.9, valid},
		{"market prob one", 0.6, 1, 0.9, valid},
		{"market prob resolved", 0.6, 1 - 1e-12, 0.9, valid},
		{"negative confidence", 0.6, 0.5, -0.1, valid},
		{"confidence above one", 0.6, 0.5, 1.5, valid},
		{"zero bankroll", 0.6, 0.5, 0.9, func() Config { c := valid; c.Bankroll = 0; return c }()},
		{"zero subsidy", 0.6, 0.5, 0.9, func() Config { c := valid; c.MarketSubsidy = 0; return c }()},
		{"zero kelly fraction", 0.6, 0.5, 0.9, func() Config { c := valid; c.KellyFraction = 0; return c }()},
		{"kelly fraction above one", 0.6, 0.5, 0.9, func() Config { c := valid; c.KellyFraction = 1.5; return c }()},
		{"max bet below min bet", 0.6, 0.5, 0.9, func() Config { c := valid; c.MinBet = 10; c.MaxBet = 5; return c }()},
		{"impact cap zero", 0.6, 0.5, 0.9, func() Config { c := valid; c.MaxProbImpact = 0; return c }()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SizeBet(tc.trueProb, tc.marketProb, tc.confidence, tc.cfg)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig(1000, 100)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.25, cfg.KellyFraction)
	assert.Equal(t, 0.05, cfg.MaxProbImpact)
}
