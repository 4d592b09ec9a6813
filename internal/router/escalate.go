package router

// #region imports
import (
	"regexp"
	"strings"
)

// #endregion

// #region escalation-rules

// escalationRules are the unconditional overrides. If any fires, the
// route is pinned to the top tier with verified confidence, regardless
// of every other signal.
var escalationRules = []riskPattern{
	{"escalate.crisis", regexp.MustCompile(`(?i)\b(suicid\w+|kill myself|hurt myself|self.?harm|overdosed?|can'?t breathe|chest pain)\b`)},
	{"escalate.emergency", regexp.MustCompile(`(?i)\b(emergency|call 911|urgent help|life.?(or|and).?death)\b`)},
	{"escalate.irreversible", regexp.MustCompile(`(?i)\b(delete (all|everything|my account)|wipe (the|my) (data|drive)|drain (the|my) account)\b`)},
	{"escalate.large-transfer", regexp.MustCompile(`(?i)\b(wire|transfer|send)\b.{0,20}\$\s?\d{4,}`)},
	{"escalate.explicit-override", regexp.MustCompile(`(?i)\b(this is (really )?important|i need the best answer|think (hard|carefully))\b`)},
}

// #endregion

// #region greeting-exemption

// trivialGreeting matches short social openers that must never escalate,
// even when other heuristics misfire on short inputs.
var trivialGreeting = regexp.MustCompile(`(?i)^\s*(hi|hiya|hello|hey|yo|sup|good (morning|afternoon|evening)|how are you\??|thanks?( you)?!?)\s*[.!?]*\s*$`)

// #endregion

// #region must-escalate

// MustEscalate reports whether the message matches an unconditional
// escalation rule, and which rule fired. Short continuations are also
// scanned joined with the previous turn (most recent first), so a cue
// split across a follow-up and its prior turn still fires.
func MustEscalate(message string, priorTurns []string) (bool, string) {
	if IsTrivialGreeting(message) {
		return false, ""
	}
	for _, r := range escalationRules {
		if r.re.MatchString(message) {
			return true, r.label
		}
	}
	if len(priorTurns) > 0 && len(strings.Fields(message)) <= 8 {
		joined := priorTurns[0] + " " + message
		for _, r := range escalationRules {
			if r.re.MatchString(joined) {
				return true, r.label
			}
		}
	}
	return false, ""
}

// IsTrivialGreeting reports whether the message is a short social opener
// exempt from escalation.
func IsTrivialGreeting(message string) bool {
	if len(strings.Fields(message)) > 4 {
		return false
	}
	return trivialGreeting.MatchString(message)
}

// #endregion
