package router

import (
	"errors"
	"testing"
)

func TestRoute_Precedence(t *testing.T) {
	r := New(DefaultConfig())

	tests := []struct {
		name     string
		message  string
		wantTier Tier
		wantConf Confidence
	}{
		// Hard escalation wins over everything.
		{"escalation-transfer", "wire $25000 to this account", TierMax, ConfidenceVerified},
		{"escalation-override", "think carefully, I need this to be right", TierMax, ConfidenceVerified},

		// High risk pins the top tier; verified subset upgrades confidence.
		{"high-risk-trading", "Should I buy Bitcoin right now?", TierMax, ConfidenceVerified},
		{"high-risk-deadline", "the report is due tomorrow, help", TierMax, ConfidenceEstimate},

		// Medium risk plus a live-data cue forces the tool tier.
		{"medium-live-weather", "How do I check the weather today?", TierTool, ConfidenceEstimate},

		// Actionable intent forces the tool tier even at low risk.
		{"actionable-email", "send an email to Bob about dinner", TierTool, ConfidenceEstimate},

		// Low risk + confident chat/transform goes light.
		{"light-joke", "tell me a joke", TierLight, ConfidenceEstimate},
		{"light-transform", "rephrase this paragraph", TierLight, ConfidenceEstimate},

		// Nothing matched confidently: fall back to standard.
		{"fallback-gibberish", "asdf ghjkl", TierStandard, ConfidenceEstimate},
		{"fallback-factual", "who is the president of France", TierStandard, ConfidenceEstimate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := r.Route(Context{Message: tt.message})
			if err != nil {
				t.Fatalf("Route: %v", err)
			}
			if d.Route != tt.wantTier {
				t.Errorf("route: got %q, want %q (provenance: %v)", d.Route, tt.wantTier, d.Provenance)
			}
			if d.Confidence != tt.wantConf {
				t.Errorf("confidence: got %q, want %q", d.Confidence, tt.wantConf)
			}
			if len(d.Provenance) == 0 {
				t.Error("decision carries no provenance")
			}
		})
	}
}

func TestRoute_Disabled(t *testing.T) {
	t.Setenv("LUNA_ROUTER_ENABLED", "false")
	r := New(DefaultConfig())
	if r.Enabled() {
		t.Fatal("kill switch ignored")
	}

	d, err := r.Route(Context{Message: "tell me a joke"})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if d.Route != TierStandard {
		t.Errorf("disabled route: got %q, want standard", d.Route)
	}
	if len(d.Provenance) != 1 || d.Provenance[0] != "router-disabled" {
		t.Errorf("provenance: got %v", d.Provenance)
	}

	// The floor still holds with the pipeline off.
	d, err = r.Route(Context{Message: "Should I buy Bitcoin right now?"})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if d.Route != TierTool {
		t.Errorf("disabled high-risk route: got %q, want tool", d.Route)
	}

	if q := r.QuickRouteCheck(Context{Message: "tell me a joke"}); q != nil {
		t.Errorf("disabled fast path returned %+v, want nil", q)
	}
}

func TestValidateDecision(t *testing.T) {
	valid := Decision{
		Route:      TierLight,
		Confidence: ConfidenceEstimate,
		Intent:     IntentChat,
		Risk:       RiskLow,
		Provenance: []string{"rule:low-risk-chat"},
	}
	if err := ValidateDecision(valid); err != nil {
		t.Fatalf("valid decision rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(Decision) Decision
	}{
		{"unknown-tier", func(d Decision) Decision { d.Route = "turbo"; return d }},
		{"unknown-confidence", func(d Decision) Decision { d.Confidence = "certain"; return d }},
		{"unknown-intent", func(d Decision) Decision { d.Intent = "magic"; return d }},
		{"unknown-risk", func(d Decision) Decision { d.Risk = "extreme"; return d }},
		{"verified-without-provenance", func(d Decision) Decision {
			d.Confidence = ConfidenceVerified
			d.Provenance = nil
			return d
		}},
		{"high-risk-below-tool", func(d Decision) Decision { d.Risk = RiskHigh; return d }},
		{"actionable-below-tool", func(d Decision) Decision { d.Intent = IntentActionable; return d }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDecision(tt.mutate(valid))
			if !errors.Is(err, ErrInvalidDecision) {
				t.Errorf("got %v, want ErrInvalidDecision", err)
			}
		})
	}
}

func TestQuickRouteCheck_AgreesWithFull(t *testing.T) {
	r := New(DefaultConfig())
	for _, msg := range riskCorpus {
		rc := Context{Message: msg}
		quick := r.QuickRouteCheck(rc)
		if quick == nil {
			continue
		}
		full, err := r.Route(rc)
		if err != nil {
			t.Fatalf("Route(%q): %v", msg, err)
		}
		if quick.Route != full.Route {
			t.Errorf("fast path route %q != full route %q for %q", quick.Route, full.Route, msg)
		}
		if quick.Confidence != full.Confidence {
			t.Errorf("fast path confidence %q != full confidence %q for %q", quick.Confidence, full.Confidence, msg)
		}
	}
}

func FuzzQuickRouteAgreesWithFull(f *testing.F) {
	for _, msg := range riskCorpus {
		f.Add(msg)
	}
	f.Add("wire $25000 to this account")
	f.Add("send an email to Bob")
	f.Add("How do I check the weather today?")

	r := New(DefaultConfig())
	f.Fuzz(func(t *testing.T, msg string) {
		rc := Context{Message: msg}
		quick := r.QuickRouteCheck(rc)
		if quick == nil {
			return
		}
		full, err := r.Route(rc)
		if err != nil {
			t.Fatalf("Route(%q): %v", msg, err)
		}
		if quick.Route != full.Route {
			t.Errorf("fast path route %q != full route %q for %q", quick.Route, full.Route, msg)
		}
	})
}
