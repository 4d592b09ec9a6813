package graph

// #region imports
import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/hints"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/turnlog"
)

// #endregion

// #region errors

// ErrNoResponse marks a turn that failed before any draft existed. The
// caller shows an explicit failure, distinct from a low-quality draft.
var ErrNoResponse = errors.New("could not generate a response")

// #endregion

// #region run

// Run drives the state machine until termination and converts the
// terminal state into a TurnLog. A cancelled context aborts the in-flight
// node call and goes straight to the end; a cancelled turn never
// re-enters the loop. The wall-clock budget belongs to the caller's
// context, not to this loop: maxAttempts is a logical bound only.
func (e *Executor) Run(ctx context.Context, s *State) (turnlog.TurnLog, error) {
	for !ShouldTerminate(s, e.maxAttempts) {
		if ctx.Err() != nil {
			log.Printf("[GRAPH] turn %s cancelled at attempts=%d", s.TurnID, s.Attempts)
			break
		}

		switch NextNode(s, e.maxAttempts) {
		case NodePlan:
			if err := e.runPlan(ctx, s); err != nil {
				// No plan means no draft can ever exist; fail the turn.
				log.Printf("[GRAPH] turn %s: %v", s.TurnID, err)
				return e.finish(s)
			}
		case NodeDraft:
			e.runDraft(ctx, s)
		case NodeCritique:
			e.runCritique(ctx, s)
		case NodeRepair:
			e.runRepair(ctx, s)
		case NodeEnd:
			return e.finish(s)
		}
	}
	return e.finish(s)
}

// finish applies the attempt-ceiling fail-safe (release the last draft
// even if critique never approved it) and converts the state.
func (e *Executor) finish(s *State) (turnlog.TurnLog, error) {
	if s.FinalOutput == nil && s.Draft != nil {
		s.FinalOutput = s.Draft
	}
	tl := StateToTurnLog(s)
	if s.FinalOutput == nil {
		return tl, ErrNoResponse
	}
	log.Printf("[GRAPH] turn %s done: attempts=%d critique_passed=%v issues=%d",
		s.TurnID, s.Attempts, s.CritiquePassed, len(tl.Issues))
	return tl, nil
}

// #endregion

// #region hint-learning

// RecordCorrections turns a finished turn's critique failures into
// hints: one session hint per issue category plus a user-hint
// reinforcement, so repeated failure modes accumulate weight. Best
// effort; a dead hint store only costs the learning.
func RecordCorrections(svc *hints.Service, s *State) {
	if svc == nil || len(s.issueHistory) == 0 {
		return
	}

	seen := map[string]bool{}
	for _, issue := range s.issueHistory {
		category := issueCategory(issue)
		if seen[category] {
			continue
		}
		seen[category] = true

		text := "Avoid this failure mode: " + issue
		if err := svc.AddSessionHint(s.SessionID, category, text, 1.0); err != nil {
			log.Printf("[HINTS] session hint failed: %v", err)
		}
		if s.UserID != "" {
			if err := svc.AddUserHint(s.UserID, category, text); err != nil {
				log.Printf("[HINTS] user hint failed: %v", err)
			}
		}
	}
}

// issueCategory maps free-text critique issues onto stable hint types.
func issueCategory(issue string) string {
	lower := strings.ToLower(issue)
	switch {
	case strings.Contains(lower, "long") || strings.Contains(lower, "short") || strings.Contains(lower, "thin"):
		return "length"
	case strings.Contains(lower, "repeat") || strings.Contains(lower, "repetit"):
		return "repetition"
	case strings.Contains(lower, "tone") || strings.Contains(lower, "formal") || strings.Contains(lower, "casual"):
		return "tone"
	case strings.Contains(lower, "deflect") || strings.Contains(lower, "evasive") || strings.Contains(lower, "refus"):
		return "evasion"
	case strings.Contains(lower, "wrong") || strings.Contains(lower, "incorrect") || strings.Contains(lower, "inaccurate"):
		return "accuracy"
	default:
		return "general"
	}
}

// #endregion
