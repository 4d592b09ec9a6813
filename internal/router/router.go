// Package router decides, for every user turn, which compute tier is
// permitted to answer and under what confidence contract.
//
// All rules are pure functions over the message text: ordered regex rule
// tables for risk, freshness, intent, and hard escalation, combined by a
// strict precedence list. No global state is touched.
package router

// #region imports
import (
	"errors"
	"fmt"
	"log"
	"os"
)

// #endregion

// #region errors

// ErrInvalidDecision marks a decision whose route/confidence/intent
// combination is internally inconsistent. Fatal for the turn; never
// silently coerced to a default route.
var ErrInvalidDecision = errors.New("invalid route decision")

// #endregion

// #region router-struct

// Router combines the rule sets into per-turn route decisions.
type Router struct {
	cfg     Config
	enabled bool
}

// New creates a router. Kill switch: set LUNA_ROUTER_ENABLED=false to
// pin every turn to the conservative default tier.
func New(cfg Config) *Router {
	enabled := true
	if v := os.Getenv("LUNA_ROUTER_ENABLED"); v == "false" {
		enabled = false
	}
	return &Router{cfg: cfg, enabled: enabled}
}

// Enabled returns whether the rule pipeline is active.
func (r *Router) Enabled() bool {
	return r.enabled
}

// Config returns the router's configuration.
func (r *Router) Config() Config {
	return r.cfg
}

// #endregion

// #region route

// Route produces the turn's Decision. Precedence, first match wins:
//
//  1. hard escalation        → max tier, verified
//  2. high risk              → max tier, verified iff pattern-verified
//  3. medium risk + live     → tool tier (data access is mandatory)
//  4. actionable intent      → tool tier (side effects implied)
//  5. low risk + confident chat/transform → light tier
//  6. fallback               → standard tier (fail toward more scrutiny)
func (r *Router) Route(rc Context) (Decision, error) {
	risk := AssessRisk(rc.Message)
	fresh := CheckFreshness(rc.Message)
	intent := ClassifyIntent(rc.Message, rc.PriorTurns)

	d := r.decide(rc, risk, fresh, intent)
	if err := ValidateDecision(d); err != nil {
		log.Printf("[ROUTER] invalid decision route=%s confidence=%s intent=%s provenance=%v: %v",
			d.Route, d.Confidence, d.Intent, d.Provenance, err)
		return Decision{}, err
	}

	log.Printf("[ROUTER] route=%s confidence=%s intent=%s risk=%s provenance=%v",
		d.Route, d.Confidence, d.Intent, d.Risk, d.Provenance)
	return d, nil
}

func (r *Router) decide(rc Context, risk RiskAssessment, fresh Freshness, intent IntentResult) Decision {
	if !r.enabled {
		// Kill switch pins the conservative default tier, but never below
		// the high-risk / actionable floor.
		route := TierStandard
		if risk.Level == RiskHigh || intent.Class == IntentActionable {
			route = TierTool
		}
		return Decision{
			Route:      route,
			Confidence: ConfidenceEstimate,
			Intent:     intent.Class,
			Risk:       risk.Level,
			Provenance: []string{"router-disabled"},
		}
	}

	if fired, rule := MustEscalate(rc.Message, rc.PriorTurns); fired {
		return Decision{
			Route:      TierMax,
			Confidence: ConfidenceVerified,
			Intent:     intent.Class,
			Risk:       risk.Level,
			Provenance: []string{"escalation:" + rule},
		}
	}

	if risk.Level == RiskHigh {
		conf := ConfidenceEstimate
		if risk.Verified {
			conf = ConfidenceVerified
		}
		return Decision{
			Route:      TierMax,
			Confidence: conf,
			Intent:     intent.Class,
			Risk:       RiskHigh,
			Provenance: append([]string{"rule:high-risk"}, risk.MatchedPatterns...),
		}
	}

	if risk.Level == RiskMedium && fresh == FreshnessLive {
		return Decision{
			Route:      TierTool,
			Confidence: ConfidenceEstimate,
			Intent:     intent.Class,
			Risk:       RiskMedium,
			Provenance: append([]string{"rule:medium-risk-live"}, risk.MatchedPatterns...),
		}
	}

	if intent.Class == IntentActionable {
		return Decision{
			Route:      TierTool,
			Confidence: ConfidenceEstimate,
			Intent:     IntentActionable,
			Risk:       risk.Level,
			Provenance: []string{"rule:actionable-intent"},
		}
	}

	if risk.Level == RiskLow &&
		(intent.Class == IntentChat || intent.Class == IntentTransform) &&
		intent.Confidence >= r.cfg.IntentConfidenceThreshold {
		return Decision{
			Route:      TierLight,
			Confidence: ConfidenceEstimate,
			Intent:     intent.Class,
			Risk:       RiskLow,
			Provenance: []string{fmt.Sprintf("rule:low-risk-%s", intent.Class)},
		}
	}

	// No rule confidently matched. Fail toward more scrutiny, never less.
	return Decision{
		Route:      TierStandard,
		Confidence: ConfidenceEstimate,
		Intent:     intent.Class,
		Risk:       risk.Level,
		Provenance: []string{"default-fallback"},
	}
}

// #endregion

// #region quick-route

// QuickRouteCheck is the latency fast path. It returns a decision only
// when the obvious-risk and obvious-freshness predicates agree on one;
// otherwise nil, and the caller must run the full pipeline. The fast
// path never produces a different tier than Route would.
func (r *Router) QuickRouteCheck(rc Context) *Decision {
	if !r.enabled {
		return nil
	}

	if fired, rule := MustEscalate(rc.Message, rc.PriorTurns); fired {
		intent := ClassifyIntent(rc.Message, rc.PriorTurns)
		return &Decision{
			Route:      TierMax,
			Confidence: ConfidenceVerified,
			Intent:     intent.Class,
			Risk:       AssessRisk(rc.Message).Level,
			Provenance: []string{"quick", "escalation:" + rule},
		}
	}

	if ObviouslyHighRisk(rc.Message) {
		intent := ClassifyIntent(rc.Message, rc.PriorTurns)
		risk := AssessRisk(rc.Message)
		return &Decision{
			Route:      TierMax,
			Confidence: ConfidenceVerified,
			Intent:     intent.Class,
			Risk:       RiskHigh,
			Provenance: append([]string{"quick", "rule:high-risk"}, risk.MatchedPatterns...),
		}
	}

	if ObviouslyLowRisk(rc.Message) && !ObviouslyNeedsLiveData(rc.Message) {
		intent := ClassifyIntent(rc.Message, rc.PriorTurns)
		if (intent.Class == IntentChat || intent.Class == IntentTransform) &&
			intent.Confidence >= r.cfg.IntentConfidenceThreshold {
			return &Decision{
				Route:      TierLight,
				Confidence: ConfidenceEstimate,
				Intent:     intent.Class,
				Risk:       RiskLow,
				Provenance: []string{"quick", fmt.Sprintf("rule:low-risk-%s", intent.Class)},
			}
		}
	}

	return nil
}

// #endregion

// #region validate

// ValidateDecision rejects internally inconsistent decisions.
func ValidateDecision(d Decision) error {
	if _, ok := tierRank[d.Route]; !ok {
		return fmt.Errorf("%w: unknown tier %q", ErrInvalidDecision, d.Route)
	}
	switch d.Confidence {
	case ConfidenceEstimate, ConfidenceVerified:
	default:
		return fmt.Errorf("%w: unknown confidence %q", ErrInvalidDecision, d.Confidence)
	}
	switch d.Intent {
	case IntentChat, IntentTransform, IntentFactual, IntentActionable:
	default:
		return fmt.Errorf("%w: unknown intent %q", ErrInvalidDecision, d.Intent)
	}
	switch d.Risk {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		return fmt.Errorf("%w: unknown risk %q", ErrInvalidDecision, d.Risk)
	}
	if d.Confidence == ConfidenceVerified && len(d.Provenance) == 0 {
		return fmt.Errorf("%w: verified confidence with no provenance", ErrInvalidDecision)
	}
	if d.Risk == RiskHigh && tierRank[d.Route] < tierRank[TierTool] {
		return fmt.Errorf("%w: high risk routed to %q", ErrInvalidDecision, d.Route)
	}
	if d.Intent == IntentActionable && tierRank[d.Route] < tierRank[TierTool] {
		return fmt.Errorf("%w: actionable intent routed to %q", ErrInvalidDecision, d.Route)
	}
	return nil
}

// #endregion
