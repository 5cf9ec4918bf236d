// Package lmsr models the price response of an LMSR-style automated market
// maker for binary markets. A bet shifts the market's log-odds linearly by
// amount/B, where B is the liquidity (subsidy) parameter; larger B means the
// market absorbs size with less price movement.
package lmsr

import (
	"fmt"
	"math"
)

// ProbEpsilon bounds probabilities away from 0 and 1. Values outside
// (ProbEpsilon, 1-ProbEpsilon) are treated as degenerate/resolved markets.
const ProbEpsilon = 1e-9

// Logit returns ln(p / (1-p)), the log-odds of p.
func Logit(p float64) float64 {
	return math.Log(p / (1 - p))
}

// Sigmoid is the logistic inverse of Logit, saturated into the open interval
// (ProbEpsilon, 1-ProbEpsilon). Plain 1/(1+exp(-x)) rounds to exactly 0 or 1
// for |x| beyond ~37, which would break the Kelly formula downstream.
func Sigmoid(x float64) float64 {
	var p float64
	if x >= 0 {
		p = 1 / (1 + math.Exp(-x))
	} else {
		e := math.Exp(x)
		p = e / (1 + e)
	}
	if p < ProbEpsilon {
		return ProbEpsilon
	}
	if p > 1-ProbEpsilon {
		return 1 - ProbEpsilon
	}
	return p
}

// ValidProb reports whether p is strictly inside the tradable interval.
func ValidProb(p float64) bool {
	return p > ProbEpsilon && p < 1-ProbEpsilon
}

// Calculator computes marginal probabilities for a market with liquidity
// parameter B. It is stateless; market state is passed as arguments.
type Calculator struct {
	B float64
}

// New returns a Calculator for the given subsidy parameter.
func New(subsidy float64) (Calculator, error) {
	if subsidy <= 0 {
		return Calculator{}, fmt.Errorf("lmsr: subsidy must be positive, got %v", subsidy)
	}
	return Calculator{B: subsidy}, nil
}

// MarginalProbability returns the market probability after a bet of
// signedAmount. Positive amounts push toward YES (probability up), negative
// toward NO. A zero amount returns marketProb unchanged.
func (c Calculator) MarginalProbability(marketProb, signedAmount float64) float64 {
	if signedAmount == 0 {
		return marketProb
	}
	return Sigmoid(Logit(marketProb) + signedAmount/c.B)
}

// Impact returns the absolute probability change caused by a bet of
// signedAmount.
func (c Calculator) Impact(marketProb, signedAmount float64) float64 {
	return math.Abs(c.MarginalProbability(marketProb, signedAmount) - marketProb)
}

// AmountForTarget inverts MarginalProbability: it returns the signed amount
// that moves the market from marketProb to exactly targetProb.
func (c Calculator) AmountForTarget(marketProb, targetProb float64) float64 {
	return c.B * (Logit(targetProb) - Logit(marketProb))
}
