package router

// #region route-tier

// Tier is the compute tier permitted to answer a turn, ordered cheapest to most capable.
type Tier string

const (
	TierLight    Tier = "light"    // fastest, cheapest model
	TierStandard Tier = "standard" // mid-tier model
	TierTool     Tier = "tool"     // tool-enabled model with data access
	TierMax      Tier = "max"      // most capable, tool-enabled
)

// tierRank orders tiers for comparisons. Higher = more capable.
var tierRank = map[Tier]int{
	TierLight:    0,
	TierStandard: 1,
	TierTool:     2,
	TierMax:      3,
}

// #endregion

// #region confidence

// Confidence is the contract attached to a route decision.
type Confidence string

const (
	ConfidenceEstimate Confidence = "estimate" // heuristic match
	ConfidenceVerified Confidence = "verified" // explicit override or high-certainty pattern
)

// #endregion

// #region intent-class

// IntentClass is the coarse task category of a message.
type IntentClass string

const (
	IntentChat       IntentClass = "chat"
	IntentTransform  IntentClass = "transform"
	IntentFactual    IntentClass = "factual"
	IntentActionable IntentClass = "actionable"
)

// #endregion

// #region risk-level

// RiskLevel classifies the downside if the answer is wrong.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// #endregion

// #region freshness

// Freshness is the tri-state live-data signal feeding the route decision.
type Freshness string

const (
	FreshnessLive    Freshness = "live"    // obviously needs current data
	FreshnessStatic  Freshness = "static"  // obviously evergreen
	FreshnessUnknown Freshness = "unknown" // defer to the intent classifier default
)

// #endregion

// #region context

// Context carries the per-turn inputs the router rules read.
// All rules are pure functions over this input; nothing here is mutated.
type Context struct {
	Message    string
	PriorTurns []string // most recent first, optional
	SessionID  string
}

// #endregion

// #region risk-assessment

// RiskAssessment is the full output of the risk assessor.
type RiskAssessment struct {
	Level           RiskLevel
	MatchedPatterns []string // rule labels, empty when nothing matched
	Verified        bool     // matched the verified (high-certainty) pattern subset
}

// #endregion

// #region intent-result

// IntentResult is the intent classifier's output. Confidence below the
// configured threshold is a signal, not a verdict.
type IntentResult struct {
	Class      IntentClass
	Confidence float64
}

// #endregion

// #region decision

// Decision is the router's output for one turn. Produced exactly once
// before the execution graph starts and never mutated mid-turn.
type Decision struct {
	Route      Tier        `json:"route"`
	Confidence Confidence  `json:"confidence"`
	Intent     IntentClass `json:"intent"`
	Risk       RiskLevel   `json:"risk"`
	Provenance []string    `json:"provenance"` // rule names that produced the decision
}

// #endregion

// #region config

// Config holds the router's tunable knobs plus the hint/graph limits
// that callers wire into their own services.
type Config struct {
	IntentConfidenceThreshold float64 `toml:"intent_confidence_threshold"`
	MaxAttempts               int     `toml:"max_attempts"`
	HintWeightCap             float64 `toml:"hint_weight_cap"`
	HintWeightFloor           float64 `toml:"hint_weight_floor"`
	HintWeightIncrement       float64 `toml:"hint_weight_increment"`
	HintDecayDays             int     `toml:"hint_decay_days"`
}

// DefaultConfig returns the default router configuration.
func DefaultConfig() Config {
	return Config{
		IntentConfidenceThreshold: 0.6,
		MaxAttempts:               3,
		HintWeightCap:             2.0,
		HintWeightFloor:           0.3,
		HintWeightIncrement:       0.25,
		HintDecayDays:             14,
	}
}

// #endregion
