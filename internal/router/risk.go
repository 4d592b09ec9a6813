package router

// #region imports
import (
	"regexp"
)

// #endregion

// #region pattern-table

// riskPattern is one labeled entry in an ordered rule table.
type riskPattern struct {
	label string
	re    *regexp.Regexp
}

// #endregion

// #region high-risk-patterns

// highRiskPatterns: wrong answers here cost money, health, or legal standing.
// Labels are namespaced for provenance.
var highRiskPatterns = []riskPattern{
	{"finance.dollar-amount", regexp.MustCompile(`\$\s?\d`)},
	{"finance.trading", regexp.MustCompile(`(?i)\b(buy|sell|short|invest in|trade)\b.{0,40}\b(stock|stocks|share|shares|crypto|bitcoin|btc|eth|etf|option|options)\b`)},
	{"finance.trading-reversed", regexp.MustCompile(`(?i)\b(stock|stocks|crypto|bitcoin|btc|eth)\b.{0,40}\b(buy|sell|worth buying|good investment)\b`)},
	{"finance.money-move", regexp.MustCompile(`(?i)\b(wire|transfer|withdraw|deposit)\b.{0,30}\b(money|funds|savings|account)\b`)},
	{"medical.dosage", regexp.MustCompile(`(?i)\b(dose|dosage|mg of|milligrams|how (much|many) .{0,20}(pill|tablet|ibuprofen|aspirin|medication))\b`)},
	{"medical.health", regexp.MustCompile(`(?i)\b(symptom|symptoms|diagnos\w+|prescription|side effects?|overdose|allergic reaction)\b`)},
	{"legal.counsel", regexp.MustCompile(`(?i)\b(lawyer|attorney|lawsuit|sue|sued|legal advice|liab(le|ility)|contract dispute)\b`)},
	{"travel.booking", regexp.MustCompile(`(?i)\b(book|cancel|reschedule)\b.{0,30}\b(flight|hotel|ticket|reservation)\b`)},
	{"safety.security", regexp.MustCompile(`(?i)\b(password|2fa|account (hacked|compromised)|locked out|security breach)\b`)},
	{"time.deadline", regexp.MustCompile(`(?i)\b(deadline|due (today|tomorrow|tonight)|expires? (today|tomorrow)|last day to)\b`)},
	{"navigation.directions", regexp.MustCompile(`(?i)\b(directions to|how do i get to|fastest (route|way) to|navigate to)\b`)},
}

// verifiedHighRisk is the high-certainty subset backing obviouslyHighRisk
// and the verified confidence contract. Must stay a subset of
// highRiskPatterns (by label).
var verifiedHighRisk = map[string]bool{
	"finance.dollar-amount": true,
	"finance.trading":       true,
	"medical.dosage":        true,
	"legal.counsel":         true,
	"safety.security":       true,
}

// #endregion

// #region medium-risk-patterns

// mediumRiskPatterns: a wrong answer wastes time or steers a real decision.
var mediumRiskPatterns = []riskPattern{
	{"advice.recommendation", regexp.MustCompile(`(?i)\b(recommend|which is (better|best)|should i (use|pick|choose|get)|vs\.?|compared? to)\b`)},
	{"advice.best-of", regexp.MustCompile(`(?i)\bbest\b.{0,30}\b(for|to|option|choice|way)\b`)},
	{"planning.scheduling", regexp.MustCompile(`(?i)\b(schedule|reschedule|plan my|remind me|calendar|meeting|appointment)\b`)},
	{"technical.setup", regexp.MustCompile(`(?i)\b(install|configure|set ?up|troubleshoot|not working|error message|failed to)\b`)},
	{"factcheck.verify", regexp.MustCompile(`(?i)\b(is it true|fact.?check|verify|accurate|really happen)\b`)},
	{"howto.instructional", regexp.MustCompile(`(?i)\bhow (do|can|should) i\b`)},
}

// #endregion

// #region low-risk-patterns

// lowRiskPatterns: conversational, creative, or purely textual work.
var lowRiskPatterns = []riskPattern{
	{"chat.greeting", regexp.MustCompile(`(?i)^\s*(hi|hiya|hello|hey|yo|good (morning|afternoon|evening)|what'?s up)\b`)},
	{"chat.smalltalk", regexp.MustCompile(`(?i)\b(how are you|thank you|thanks|nice to meet)\b`)},
	{"creative.entertainment", regexp.MustCompile(`(?i)\b(joke|story|poem|riddle|song|haiku|limerick)\b`)},
	{"creative.opinion", regexp.MustCompile(`(?i)\b(what do you think|your opinion|favorite)\b`)},
	{"transform.text", regexp.MustCompile(`(?i)\b(summari[sz]e|translate|rewrite|rephrase|shorten|proofread|fix (the )?grammar|bullet points?)\b`)},
	{"concept.definitional", regexp.MustCompile(`(?i)^\s*(what is|what are|define|explain|how does .{1,40} work)\b`)},
}

// #endregion

// #region assess

// AssessRisk classifies a message's downside if the answer is wrong.
// Priority is strict: any high match wins over any simultaneous medium or
// low match; any medium match wins over low; zero matches defaults to low.
func AssessRisk(message string) RiskAssessment {
	var matched []string
	verified := false
	for _, p := range highRiskPatterns {
		if p.re.MatchString(message) {
			matched = append(matched, "high:"+p.label)
			if verifiedHighRisk[p.label] {
				verified = true
			}
		}
	}
	if len(matched) > 0 {
		return RiskAssessment{Level: RiskHigh, MatchedPatterns: matched, Verified: verified}
	}

	for _, p := range mediumRiskPatterns {
		if p.re.MatchString(message) {
			matched = append(matched, "medium:"+p.label)
		}
	}
	if len(matched) > 0 {
		return RiskAssessment{Level: RiskMedium, MatchedPatterns: matched}
	}

	for _, p := range lowRiskPatterns {
		if p.re.MatchString(message) {
			matched = append(matched, "low:"+p.label)
		}
	}
	// Absence of signal defaults to low, not an error.
	return RiskAssessment{Level: RiskLow, MatchedPatterns: matched}
}

// #endregion

// #region fast-paths

// ObviouslyHighRisk is the latency fast path for high risk. Conservative:
// true only for the verified high-risk subset, so the full AssessRisk
// always agrees on "high" when this returns true.
func ObviouslyHighRisk(message string) bool {
	for _, p := range highRiskPatterns {
		if verifiedHighRisk[p.label] && p.re.MatchString(message) {
			return true
		}
	}
	return false
}

// ObviouslyLowRisk is the latency fast path for low risk. Conservative:
// requires a low-risk match and the absence of any high or medium match,
// so the full AssessRisk always agrees on "low" when this returns true.
func ObviouslyLowRisk(message string) bool {
	anyLow := false
	for _, p := range lowRiskPatterns {
		if p.re.MatchString(message) {
			anyLow = true
			break
		}
	}
	if !anyLow {
		return false
	}
	for _, p := range highRiskPatterns {
		if p.re.MatchString(message) {
			return false
		}
	}
	for _, p := range mediumRiskPatterns {
		if p.re.MatchString(message) {
			return false
		}
	}
	return true
}

// #endregion
