package main

import (
	"fmt"

	"github.com/hetulpatel/betsizer/internal/sizing"
)

// kelly_examples prints sizing decisions for a handful of illustrative
// scenarios so the impact model's effect is easy to eyeball.
func main() {
	fmt.Println("=== impact-aware vs naive Kelly (true=0.70, market=0.50, bankroll=1000, subsidy=100) ===")
	cfg := sizing.DefaultConfig(1000, 100)
	cfg.MaxProbImpact = 1
	printScenario(cfg, 0.70, 0.50, 0.9)
	naive := cfg.KellyFraction * cfg.Bankroll * 0.4
	fmt.Printf("naive (no impact) would bet: $%.2f\n\n", naive)

	fmt.Println("=== kelly fraction sweep ===")
	for _, kf := range []float64{0.1, 0.25, 0.5, 1.0} {
		c := cfg
		c.KellyFraction = kf
		res, err := sizing.SizeBet(0.70, 0.50, 0.9, c)
		if err != nil {
			fmt.Printf("kf=%.2f error: %v\n", kf, err)
			continue
		}
		fmt.Printf("kf=%.2f  amount=$%.2f  impact=%.4f  iterations=%d\n", kf, res.Amount, res.Impact, res.Iterations)
	}
	fmt.Println()

	fmt.Println("=== impact cap sweep (true=0.70, market=0.30) ===")
	for _, cap := range []float64{0.01, 0.02, 0.05, 0.10} {
		c := sizing.DefaultConfig(1000, 50)
		c.MaxProbImpact = cap
		res, err := sizing.SizeBet(0.70, 0.30, 0.9, c)
		if err != nil {
			fmt.Printf("cap=%.2f error: %v\n", cap, err)
			continue
		}
		fmt.Printf("cap=%.2f  amount=$%.2f  impact=%.4f  clamp=%s\n", cap, res.Amount, res.Impact, res.ClampedBy)
	}
	fmt.Println()

	fmt.Println("=== deep liquidity degrades to naive Kelly ===")
	deep := sizing.DefaultConfig(1000, 1e9)
	deep.MaxProbImpact = 1
	printScenario(deep, 0.70, 0.50, 0.9)

	fmt.Println("=== gate examples ===")
	gated := sizing.DefaultConfig(1000, 100)
	printScenario(gated, 0.70, 0.50, 0.3) // confidence below threshold
	printScenario(gated, 0.52, 0.50, 0.9) // edge below threshold
	printScenario(gated, 0.30, 0.50, 0.9) // NO side
}

func printScenario(cfg sizing.Config, trueProb, marketProb, confidence float64) {
	res, err := sizing.SizeBet(trueProb, marketProb, confidence, cfg)
	if err != nil {
		fmt.Printf("true=%.2f market=%.2f conf=%.2f error: %v\n", trueProb, marketProb, confidence, err)
		return
	}
	if res.Side == sizing.SideNone {
		fmt.Printf("true=%.2f market=%.2f conf=%.2f -> %s (reason=%s)\n",
			trueProb, marketProb, confidence, res.Side, res.Reason)
		return
	}
	fmt.Printf("true=%.2f market=%.2f conf=%.2f -> %s $%.2f (expected=%.4f impact=%.4f edge=%.4f clamp=%s converged=%t)\n",
		trueProb, marketProb, confidence, res.Side, res.Amount, res.ExpectedProb, res.Impact, res.Edge, res.ClampedBy, res.Converged)
}
