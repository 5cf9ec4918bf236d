package sizing

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks hard failures caused by bad configuration or
// degenerate inputs. Everything else is reported through Result reason codes.
var ErrInvalidInput = errors.New("sizing: invalid input")

// Config holds the risk parameters for one sizing request. It is a plain
// value passed into every call; there are no process-wide settings.
type Config struct {
	// KellyFraction is the fraction of the full Kelly size to take, in (0, 1].
	KellyFraction float64
	// MinBet is the smallest bet worth placing. Amounts below it are either
	// rounded up (when the impact budget allows) or dropped to zero.
	MinBet float64
	// MaxBet caps the bet amount. Must exceed MinBet.
	MaxBet float64
	// MaxProbImpact is the largest tolerated absolute change in market
	// probability caused by the bet, in (0, 1].
	MaxProbImpact float64
	// Bankroll is the capital base the Kelly fraction applies to.
	Bankroll float64
	// MarketSubsidy is the LMSR liquidity parameter of the target market.
	MarketSubsidy float64
	// MinConfidence gates sizing on the decision maker's confidence.
	MinConfidence float64
	// MinProbDiff gates sizing on the absolute edge |trueProb - marketProb|.
	MinProbDiff float64
}

// DefaultConfig returns the standard risk settings for a bankroll and market:
// quarter Kelly, 5% impact budget, and the gate thresholds the original
// rule set shipped with.
func DefaultConfig(bankroll, subsidy float64) Config {
	return Config{
		KellyFraction: 0.25,
		MinBet:        1,
		MaxBet:        bankroll,
		MaxProbImpact: 0.05,
		Bankroll:      bankroll,
		MarketSubsidy: subsidy,
		MinConfidence: 0.6,
		MinProbDiff:   0.05,
	}
}

// Validate fails fast on misconfiguration. Values are never silently
// corrected.
func (c Config) Validate() error {
	if c.KellyFraction <= 0 || c.KellyFraction > 1 {
		return fmt.Errorf("%w: kelly fraction %v outside (0, 1]", ErrInvalidInput, c.KellyFraction)
	}
	if c.MinBet < 0 {
		return fmt.Errorf("%w: min bet %v is negative", ErrInvalidInput, c.MinBet)
	}
	if c.MaxBet <= c.MinBet {
		return fmt.Errorf("%w: max bet %v must exceed min bet %v", ErrInvalidInput, c.MaxBet, c.MinBet)
	}
	if c.MaxProbImpact <= 0 || c.MaxProbImpact > 1 {
		return fmt.Errorf("%w: max prob impact %v outside (0, 1]", ErrInvalidInput, c.MaxProbImpact)
	}
	if c.Bankroll <= 0 {
		return fmt.Errorf("%w: bankroll %v must be positive", ErrInvalidInput, c.Bankroll)
	}
	if c.MarketSubsidy <= 0 {
		return fmt.Errorf("%w: market subsidy %v must be positive", ErrInvalidInput, c.MarketSubsidy)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("%w: min confidence %v outside [0, 1]", ErrInvalidInput, c.MinConfidence)
	}
	if c.MinProbDiff < 0 || c.MinProbDiff >= 1 {
		return fmt.Errorf("%w: min probability diff %v outside [0, 1)", ErrInvalidInput, c.MinProbDiff)
	}
	return nil
}
