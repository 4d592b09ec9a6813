// Package graph runs the layered response-execution loop: plan, draft,
// critique, repair, end. Each turn owns one State exclusively; the
// caller serializes turns per session, so there is no internal locking.
package graph

// #region imports
import (
	"fmt"
	"time"

	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/router"
	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/turnlog"
)

// #endregion

// #region mode

// Mode is the conversation surface a turn arrived from.
type Mode string

const (
	ModeAssistant Mode = "assistant"
	ModeCompanion Mode = "companion"
	ModeVoice     Mode = "voice"
)

// #endregion

// #region turn-input

// TurnInput is the required per-turn identity and payload. SessionID and
// TurnID are caller-generated and unique per turn.
type TurnInput struct {
	SessionID string
	TurnID    string
	UserInput string
	Mode      Mode
}

// Options carries the optional injected context, set once at state
// construction and read-only thereafter.
type Options struct {
	UserID           string
	InjectedHints    *string
	CorrectionPrompt *string
	RelevantMemories []string
}

// #endregion

// #region verdict

// Verdict is the critique node's ephemeral judgment of a draft. It is
// folded into State.CritiqueIssues, never persisted on its own.
type Verdict struct {
	Approved        bool     `json:"approved"`
	Issues          []string `json:"issues"`
	FixInstructions string   `json:"fix_instructions"`
}

// #endregion

// #region state

// State is the mutable working record of one turn. Created by
// NewInitialState, mutated only by graph nodes in transition order,
// and converted to a TurnLog at the end.
type State struct {
	// Identity, fixed at construction.
	SessionID string
	TurnID    string
	UserID    string
	Mode      Mode
	StartedAt time.Time

	// Inputs, fixed at construction.
	UserInput        string
	Identity         string // profile text, loaded once per session
	AgentView        string // derived context
	RelevantMemories []string
	Decision         router.Decision

	// Injected context, fixed at construction. Nil means absent.
	InjectedHints    *string
	CorrectionPrompt *string

	// Working fields, owned by the nodes.
	Plan            *string
	Draft           *string
	CritiqueIssues  []string
	Attempts        int
	FixInstructions *string // from the last failed critique
	RepairDirective *string // set by repair, cleared by a successful redraft
	CritiquePassed  bool

	// Terminal field. Non-nil signals termination.
	FinalOutput *string

	issueHistory []string // every critique issue seen this turn
}

// NewInitialState is the sole entry point for constructing a State.
func NewInitialState(input TurnInput, identity, agentView string, decision router.Decision, opts Options) (*State, error) {
	if input.SessionID == "" || input.TurnID == "" {
		return nil, fmt.Errorf("session and turn IDs are required")
	}
	if input.UserInput == "" {
		return nil, fmt.Errorf("user input is required")
	}
	if input.Mode == "" {
		return nil, fmt.Errorf("mode is required")
	}
	return &State{
		SessionID:        input.SessionID,
		TurnID:           input.TurnID,
		UserID:           opts.UserID,
		Mode:             input.Mode,
		StartedAt:        time.Now().UTC(),
		UserInput:        input.UserInput,
		Identity:         identity,
		AgentView:        agentView,
		RelevantMemories: opts.RelevantMemories,
		Decision:         decision,
		InjectedHints:    opts.InjectedHints,
		CorrectionPrompt: opts.CorrectionPrompt,
	}, nil
}

// #endregion

// #region turn-log

// StateToTurnLog converts a terminal State into the append-only record
// persisted for observability.
func StateToTurnLog(s *State) turnlog.TurnLog {
	return turnlog.TurnLog{
		SessionID:      s.SessionID,
		TurnID:         s.TurnID,
		Mode:           string(s.Mode),
		Route:          string(s.Decision.Route),
		Plan:           deref(s.Plan),
		Draft:          deref(s.Draft),
		FinalOutput:    deref(s.FinalOutput),
		CritiquePassed: s.CritiquePassed,
		Issues:         append([]string(nil), s.issueHistory...),
		Attempts:       s.Attempts,
		Duration:       time.Since(s.StartedAt),
		CreatedAt:      time.Now().UTC(),
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// #endregion
