package graph

// #region imports
import (
	"strings"
	"unicode"
)

// #endregion

// #region deflection-patterns

var deflectionPatterns = []string{
	"what can i do for you",
	"how can i help",
	"how can i assist",
	"what would you like",
	"let me know how i can",
	"is there anything else",
	"feel free to ask",
}

// #endregion

// #region refusal-patterns

var refusalPatterns = []string{
	"i cannot",
	"i can't",
	"as an ai",
	"as a language model",
	"i'm not able to",
	"i am not able to",
	"beyond my capabilities",
}

// #endregion

// #region heuristic-review

// HeuristicReview scores a draft via string analysis, no model call. It
// backs the critique node when the reviewer provider fails or returns an
// unparseable verdict: the turn degrades to deterministic scrutiny
// instead of dying on infrastructure.
func HeuristicReview(userInput, draft string) Verdict {
	trimmed := strings.TrimSpace(draft)
	lower := strings.ToLower(trimmed)

	var issues []string

	if len(strings.TrimFunc(trimmed, unicode.IsSpace)) == 0 {
		return Verdict{
			Issues:          []string{"draft is empty"},
			FixInstructions: "Produce an actual answer to the user's message.",
		}
	}

	if hasRepetition(lower) {
		issues = append(issues, "draft repeats itself")
	}

	words := strings.Fields(trimmed)
	for _, p := range deflectionPatterns {
		if strings.Contains(lower, p) && len(words) < 30 {
			issues = append(issues, "draft deflects instead of answering")
			break
		}
	}

	refusals := 0
	for _, p := range refusalPatterns {
		if strings.Contains(lower, p) {
			refusals++
		}
	}
	if refusals >= 2 {
		issues = append(issues, "draft is dominated by refusal boilerplate")
	}

	inputLower := strings.ToLower(strings.TrimSpace(userInput))
	if len(inputLower) > 10 && strings.Contains(lower, inputLower) {
		issues = append(issues, "draft echoes the question back")
	}

	if len(issues) > 0 {
		return Verdict{
			Issues:          issues,
			FixInstructions: "Rewrite the draft to address each issue while keeping the answer's substance.",
		}
	}
	return Verdict{Approved: true}
}

// #endregion

// #region repetition-check

// hasRepetition flags 3+ identical sentences.
func hasRepetition(lower string) bool {
	sentences := strings.FieldsFunc(lower, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	if len(sentences) < 3 {
		return false
	}
	counts := make(map[string]int)
	for _, s := range sentences {
		t := strings.TrimSpace(s)
		if len(t) > 10 {
			counts[t]++
		}
	}
	for _, c := range counts {
		if c >= 3 {
			return true
		}
	}
	return false
}

// #endregion
