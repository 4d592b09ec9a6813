package router

// #region imports
import (
	"regexp"
	"strings"
)

// #endregion

// #region intent-tables

// intentPattern scores toward one class when it matches.
type intentPattern struct {
	class  IntentClass
	label  string
	weight float64
	re     *regexp.Regexp
}

// intentPatterns is a single ordered table; every match contributes its
// weight to its class and the winner's share becomes the confidence.
var intentPatterns = []intentPattern{
	// Actionable: the user wants a side effect in the world.
	{IntentActionable, "act.send", 2.0, regexp.MustCompile(`(?i)^\s*(send|email|text|message|forward)\b`)},
	{IntentActionable, "act.commerce", 2.0, regexp.MustCompile(`(?i)\b(order|buy|purchase|pay|book|reserve)\b.{0,40}\b(me|a|an|the|some|tickets?|for)\b`)},
	{IntentActionable, "act.schedule", 1.5, regexp.MustCompile(`(?i)\b(schedule|cancel|remind me|set (an? )?(alarm|timer|reminder)|add to (my )?calendar)\b`)},
	{IntentActionable, "act.execute", 2.0, regexp.MustCompile(`(?i)\b(execute|place (the |an? )?(order|trade)|download|upload|post (this|it|to))\b`)},

	// Transform: operate on text the user supplies.
	{IntentTransform, "xform.rewrite", 2.0, regexp.MustCompile(`(?i)\b(summari[sz]e|translate|rewrite|rephrase|paraphrase|shorten|expand|proofread)\b`)},
	{IntentTransform, "xform.format", 1.5, regexp.MustCompile(`(?i)\b(convert|reformat|bullet points?|fix (the )?(grammar|spelling|punctuation)|make (this|it) (shorter|longer|formal|casual))\b`)},

	// Factual: a lookup with a checkable answer.
	{IntentFactual, "fact.prefix", 1.5, regexp.MustCompile(`(?i)^\s*(who|what|when|where|which|how (many|much|old|far|long|tall))\b`)},
	{IntentFactual, "fact.entity", 1.0, regexp.MustCompile(`(?i)\b(capital of|population|president|author of|invented|located|founded|born in|distance between)\b`)},

	// Chat: social or open-ended conversation.
	{IntentChat, "chat.greeting", 2.0, regexp.MustCompile(`(?i)^\s*(hi|hiya|hello|hey|yo|good (morning|afternoon|evening)|what'?s up)\b`)},
	{IntentChat, "chat.social", 1.5, regexp.MustCompile(`(?i)\b(how are you|how'?s it going|thank you|thanks|nice talking)\b`)},
	{IntentChat, "chat.entertain", 1.5, regexp.MustCompile(`(?i)\b(tell me a (joke|story)|joke|make me laugh|chat|let'?s talk)\b`)},
	{IntentChat, "chat.opinion", 1.0, regexp.MustCompile(`(?i)\b(what do you think|your opinion|do you like|favorite)\b`)},
}

// #endregion

// #region follow-up-words

// followUpWords are short prompts that typically continue the previous topic.
var followUpWords = []string{
	"why", "how", "what", "and", "but", "so",
	"really", "ok", "okay", "sure",
	"tell me more", "go on", "keep going", "elaborate",
	"what about", "and then", "like what",
}

// #endregion

// #region classify

// ClassifyIntent scores a message against the intent table. The prior
// turns (most recent first) are only consulted for short follow-ups,
// which inherit the previous classification at reduced confidence.
func ClassifyIntent(message string, priorTurns []string) IntentResult {
	scores := map[IntentClass]float64{}
	var total float64
	for _, p := range intentPatterns {
		if p.re.MatchString(message) {
			scores[p.class] += p.weight
			total += p.weight
		}
	}

	if total == 0 {
		// Short follow-ups inherit the previous turn's class, weakly.
		if len(priorTurns) > 0 && isFollowUp(message) {
			prev := ClassifyIntent(priorTurns[0], nil)
			if prev.Confidence > 0 {
				return IntentResult{Class: prev.Class, Confidence: prev.Confidence * 0.5}
			}
		}
		// Unclassifiable input is a weak chat guess; the route decision
		// treats sub-threshold confidence as a cue for more scrutiny.
		return IntentResult{Class: IntentChat, Confidence: 0}
	}

	best := IntentChat
	var bestScore float64
	for _, class := range []IntentClass{IntentActionable, IntentTransform, IntentFactual, IntentChat} {
		if scores[class] > bestScore {
			best = class
			bestScore = scores[class]
		}
	}

	return IntentResult{Class: best, Confidence: bestScore / total}
}

// #endregion

// #region follow-up-detection

func isFollowUp(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	if len(strings.Fields(lower)) > 8 {
		return false
	}
	for _, fw := range followUpWords {
		if strings.HasPrefix(lower, fw) {
			return true
		}
	}
	return strings.HasSuffix(lower, "?") && len(strings.Fields(lower)) <= 3
}

// #endregion
