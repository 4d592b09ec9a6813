package router

// #region imports
import (
	"regexp"
)

// #endregion

// #region live-patterns

// livePatterns: the answer changes with the clock or the market.
var livePatterns = []riskPattern{
	{"live.price", regexp.MustCompile(`(?i)\b(price|prices|cost(ing)? (today|now)|exchange rate|stock price|worth right now)\b`)},
	{"live.score", regexp.MustCompile(`(?i)\b(score|scores|who (won|is winning)|game (tonight|today)|standings)\b`)},
	{"live.now", regexp.MustCompile(`(?i)\b(right now|currently|at the moment|as of (today|now))\b`)},
	{"live.today", regexp.MustCompile(`(?i)\b(today|tonight|this (morning|afternoon|evening|week))\b`)},
	{"live.news", regexp.MustCompile(`(?i)\b(news|headline|latest|breaking|just (happened|announced))\b`)},
	{"live.weather", regexp.MustCompile(`(?i)\b(weather|forecast|temperature outside|raining|snowing)\b`)},
	{"live.open", regexp.MustCompile(`(?i)\b(open (now|today)|hours (today|tomorrow)|still open)\b`)},
}

// #endregion

// #region static-patterns

// staticPatterns: evergreen material a frozen model answers fine.
var staticPatterns = []riskPattern{
	{"static.definition", regexp.MustCompile(`(?i)^\s*(what is|what are|define|definition of|meaning of)\b`)},
	{"static.concept", regexp.MustCompile(`(?i)\bhow (does|do) .{1,50} work\b`)},
	{"static.history", regexp.MustCompile(`(?i)\b(history of|historical|in \d{4}|who (was|invented|discovered|wrote|founded))\b`)},
	{"static.explain", regexp.MustCompile(`(?i)^\s*(explain|describe|tell me about)\b`)},
}

// #endregion

// #region check

// CheckFreshness classifies whether the question needs live data.
// Live cues win over static cues when both match: mandatory data access
// must never be talked down by an evergreen phrasing. No match is unknown.
func CheckFreshness(message string) Freshness {
	for _, p := range livePatterns {
		if p.re.MatchString(message) {
			return FreshnessLive
		}
	}
	for _, p := range staticPatterns {
		if p.re.MatchString(message) {
			return FreshnessStatic
		}
	}
	return FreshnessUnknown
}

// #endregion

// #region fast-paths

// ObviouslyNeedsLiveData reports a definitive live-data signal.
func ObviouslyNeedsLiveData(message string) bool {
	return CheckFreshness(message) == FreshnessLive
}

// ObviouslyStatic reports a definitive evergreen signal.
func ObviouslyStatic(message string) bool {
	return CheckFreshness(message) == FreshnessStatic
}

// #endregion
