package graph

// #region node

// Node names one state in the execution loop.
type Node string

const (
	NodePlan     Node = "plan"
	NodeDraft    Node = "draft"
	NodeCritique Node = "critique"
	NodeRepair   Node = "repair"
	NodeEnd      Node = "end"
)

// DefaultMaxAttempts bounds draft generations per turn.
const DefaultMaxAttempts = 3

// #endregion

// #region next-node

// NextNode is the pure, total transition function. The attempts ceiling
// is checked right after the terminal field so that NextNode returns
// NodeEnd exactly when ShouldTerminate is true, for every state.
func NextNode(s *State, maxAttempts int) Node {
	if s.FinalOutput != nil {
		return NodeEnd
	}
	if s.Attempts >= maxAttempts {
		return NodeEnd
	}
	if s.Plan == nil {
		return NodePlan
	}
	if s.Draft == nil || s.RepairDirective != nil {
		return NodeDraft
	}
	if len(s.CritiqueIssues) > 0 {
		return NodeRepair
	}
	return NodeCritique
}

// #endregion

// #region should-terminate

// ShouldTerminate is the authoritative termination predicate for the
// outer loop driver. Kept in lock-step with NextNode returning NodeEnd;
// the pair is a regression-test target.
func ShouldTerminate(s *State, maxAttempts int) bool {
	return s.FinalOutput != nil || s.Attempts >= maxAttempts
}

// #endregion
