package sizing

// Side is the recommended bet direction.
type Side string

const (
	SideYes  Side = "BUY_YES"
	SideNo   Side = "BUY_NO"
	SideNone Side = "NO_BET"
)

// Clamp identifies which bound, if any, determined the final amount.
type Clamp string

const (
	ClampNone        Clamp = "none"
	ClampMinBet      Clamp = "min_bet"
	ClampMaxBet      Clamp = "max_bet"
	ClampImpactLimit Clamp = "impact_limit"
)

// Reason explains a NO_BET result that was decided before sizing ran.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonLowConfidence Reason = "low_confidence"
	ReasonLowEdge       Reason = "low_edge"
	ReasonNoEdge        Reason = "no_edge"
)

// Result is the outcome of one sizing request.
type Result struct {
	// Amount is the recommended bet size, 0 when Side is NO_BET.
	Amount float64 `json:"amount"`
	Side   Side    `json:"side"`
	// ExpectedProb is the market probability the bet itself will produce.
	ExpectedProb float64 `json:"expected_prob"`
	// Impact is the absolute probability change caused by the bet.
	Impact float64 `json:"impact"`
	// Edge is the signed difference trueProb - marketProb.
	Edge float64 `json:"edge"`
	// Iterations counts bisection steps used by the fixed-point search.
	Iterations int `json:"iterations"`
	// Converged is false when the search hit its iteration cap before
	// reaching tolerance; Amount is then the best current estimate.
	Converged bool   `json:"converged"`
	ClampedBy Clamp  `json:"clamped_by"`
	Reason    Reason `json:"reason,omitempty"`
}
