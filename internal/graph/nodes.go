package graph

// #region imports
import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/provider"
)

// #endregion

// #region executor

// Executor owns the provider wiring for the graph's nodes. One executor
// serves many turns; all per-turn state lives in State.
type Executor struct {
	sel         *provider.Selector
	maxAttempts int
}

// NewExecutor creates an executor. maxAttempts <= 0 uses the default.
func NewExecutor(sel *provider.Selector, maxAttempts int) *Executor {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Executor{sel: sel, maxAttempts: maxAttempts}
}

// MaxAttempts returns the draft-generation ceiling.
func (e *Executor) MaxAttempts() int {
	return e.maxAttempts
}

// #endregion

// #region plan-node

// runPlan produces the plan. Mutates only State.Plan.
func (e *Executor) runPlan(ctx context.Context, s *State) error {
	var b strings.Builder
	b.WriteString("Plan a response to the user's message. List the points to cover, the tone, and any constraint. Keep it under 80 words.\n\n")
	if s.Identity != "" {
		fmt.Fprintf(&b, "Assistant profile:\n%s\n\n", s.Identity)
	}
	if s.AgentView != "" {
		fmt.Fprintf(&b, "Current context:\n%s\n\n", s.AgentView)
	}
	if len(s.RelevantMemories) > 0 {
		b.WriteString("Relevant memories:\n")
		for _, m := range s.RelevantMemories {
			fmt.Fprintf(&b, "- %s\n", m)
		}
		b.WriteString("\n")
	}
	if s.InjectedHints != nil {
		fmt.Fprintf(&b, "%s\n\n", *s.InjectedHints)
	}
	fmt.Fprintf(&b, "User message:\n%s\n", s.UserInput)

	res := e.sel.Generate(ctx, s.Decision.Route, provider.Request{
		Prompt:      b.String(),
		Temperature: -1,
	})
	if !res.Ok() {
		return fmt.Errorf("plan node: provider %s: %v", res.Status, res.Err)
	}
	plan := res.Text
	s.Plan = &plan
	return nil
}

// #endregion

// #region draft-node

// runDraft produces or regenerates the draft. Every invocation counts
// one attempt, success or not; outstanding critique issues and the
// repair directive are cleared only after a new draft exists.
func (e *Executor) runDraft(ctx context.Context, s *State) {
	var b strings.Builder
	if s.Identity != "" {
		fmt.Fprintf(&b, "%s\n\n", s.Identity)
	}
	if s.InjectedHints != nil {
		fmt.Fprintf(&b, "%s\n\n", *s.InjectedHints)
	}
	if s.CorrectionPrompt != nil {
		fmt.Fprintf(&b, "%s\n\n", *s.CorrectionPrompt)
	}
	if s.Plan != nil {
		fmt.Fprintf(&b, "Response plan:\n%s\n\n", *s.Plan)
	}
	if s.RepairDirective != nil {
		fmt.Fprintf(&b, "Your previous draft was rejected. %s\n\nPrevious draft:\n%s\n\n", *s.RepairDirective, deref(s.Draft))
	}
	fmt.Fprintf(&b, "User message:\n%s\n\nWrite the response.", s.UserInput)

	s.Attempts++

	res := e.sel.Generate(ctx, s.Decision.Route, provider.Request{
		Prompt:      b.String(),
		Temperature: -1,
	})
	if !res.Ok() {
		// A provider failure is a failed attempt, bounded by the ceiling.
		// The previous draft, if any, stays as the best-effort fallback.
		log.Printf("[GRAPH] draft attempt %d failed (%s): %v", s.Attempts, res.Status, res.Err)
		return
	}

	draft := res.Text
	s.Draft = &draft
	s.CritiqueIssues = nil
	s.RepairDirective = nil
}

// #endregion

// #region critique-node

const critiqueInstructions = `You review assistant drafts before release. Reply with strict JSON only:
{"approved": bool, "issues": [string], "fix_instructions": string}
Reject drafts that are empty, evasive, repetitive, off-topic, or unsafe for the stated risk level.`

// runCritique judges the draft. On approval it promotes the draft to the
// final output; otherwise it folds the verdict into CritiqueIssues. A
// reviewer provider failure degrades to the heuristic verdict.
func (e *Executor) runCritique(ctx context.Context, s *State) {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk level: %s\nIntent: %s\n\nUser message:\n%s\n\nDraft:\n%s\n",
		s.Decision.Risk, s.Decision.Intent, s.UserInput, deref(s.Draft))

	verdict, ok := e.providerVerdict(ctx, b.String())
	if !ok {
		verdict = HeuristicReview(s.UserInput, deref(s.Draft))
	}

	if verdict.Approved {
		s.FinalOutput = s.Draft
		s.CritiqueIssues = nil
		s.CritiquePassed = true
		return
	}

	if len(verdict.Issues) == 0 {
		verdict.Issues = []string{"rejected without stated issues"}
	}
	s.CritiqueIssues = verdict.Issues
	s.issueHistory = append(s.issueHistory, verdict.Issues...)
	if verdict.FixInstructions != "" {
		fix := verdict.FixInstructions
		s.FixInstructions = &fix
	}
}

// providerVerdict asks the reviewer provider for a verdict and parses
// its JSON. ok is false on provider failure or unparseable output.
func (e *Executor) providerVerdict(ctx context.Context, body string) (Verdict, bool) {
	res := e.sel.Reviewer().Generate(ctx, provider.Request{
		System:      critiqueInstructions,
		Prompt:      body,
		Temperature: 0,
	})
	if !res.Ok() {
		log.Printf("[GRAPH] reviewer provider %s, using heuristic review: %v", res.Status, res.Err)
		return Verdict{}, false
	}

	raw := res.Text
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return Verdict{}, false
	}
	var v Verdict
	if err := json.Unmarshal([]byte(raw[start:end+1]), &v); err != nil {
		log.Printf("[GRAPH] unparseable verdict, using heuristic review: %v", err)
		return Verdict{}, false
	}
	return v, true
}

// #endregion

// #region repair-node

// runRepair turns the outstanding issues into a revision directive for
// the next draft. It never increments attempts; the redraft it triggers
// accounts for the cost. Falls back to a deterministic directive when
// the provider call fails, so repair itself cannot stall the turn.
func (e *Executor) runRepair(ctx context.Context, s *State) {
	var b strings.Builder
	b.WriteString("Turn this critique into one short, concrete revision instruction for the writer. Reply with the instruction only.\n\nIssues:\n")
	for _, issue := range s.CritiqueIssues {
		fmt.Fprintf(&b, "- %s\n", issue)
	}
	if s.FixInstructions != nil {
		fmt.Fprintf(&b, "\nReviewer guidance: %s\n", *s.FixInstructions)
	}

	directive := ""
	res := e.sel.Reviewer().Generate(ctx, provider.Request{Prompt: b.String(), Temperature: 0})
	if res.Ok() {
		directive = strings.TrimSpace(res.Text)
	}
	if directive == "" {
		directive = "Fix the following: " + strings.Join(s.CritiqueIssues, "; ")
		if s.FixInstructions != nil {
			directive += ". " + *s.FixInstructions
		}
	}

	s.RepairDirective = &directive
}

// #endregion
