package graph

import (
	"testing"
)

func strp(s string) *string { return &s }

func TestNextNode(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Node
	}{
		{"fresh-state", State{}, NodePlan},
		{"plan-done", State{Plan: strp("p")}, NodeDraft},
		{"draft-done", State{Plan: strp("p"), Draft: strp("d")}, NodeCritique},
		{"critique-failed", State{Plan: strp("p"), Draft: strp("d"), CritiqueIssues: []string{"too long"}, Attempts: 1}, NodeRepair},
		{"repair-done", State{Plan: strp("p"), Draft: strp("d"), CritiqueIssues: []string{"too long"}, RepairDirective: strp("shorten"), Attempts: 1}, NodeDraft},
		{"approved", State{Plan: strp("p"), Draft: strp("d"), FinalOutput: strp("d"), Attempts: 1}, NodeEnd},
		{"ceiling-hit", State{Plan: strp("p"), Draft: strp("d"), CritiqueIssues: []string{"x"}, Attempts: 3}, NodeEnd},
		{"ceiling-beats-missing-plan", State{Attempts: 3}, NodeEnd},
		{"final-beats-everything", State{FinalOutput: strp("out")}, NodeEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextNode(&tt.state, DefaultMaxAttempts); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// NextNode returning NodeEnd and ShouldTerminate must agree on every
// reachable and unreachable state alike.
func TestTerminationLockstep(t *testing.T) {
	synthStates(func(s *State) {
		for _, max := range []int{1, 2, 3, 5} {
			atEnd := NextNode(s, max) == NodeEnd
			term := ShouldTerminate(s, max)
			if atEnd != term {
				t.Fatalf("lockstep broken at max=%d: NextNode end=%v, ShouldTerminate=%v, state=%+v",
					max, atEnd, term, s)
			}
		}
	})
}

func TestNextNode_Deterministic(t *testing.T) {
	synthStates(func(s *State) {
		first := NextNode(s, DefaultMaxAttempts)
		if again := NextNode(s, DefaultMaxAttempts); again != first {
			t.Fatalf("transition not deterministic: %q then %q for %+v", first, again, s)
		}
	})
}

// synthStates enumerates the cross product of the fields the transition
// function reads.
func synthStates(fn func(*State)) {
	bools := []bool{false, true}
	for _, hasPlan := range bools {
		for _, hasDraft := range bools {
			for _, hasDirective := range bools {
				for _, hasFinal := range bools {
					for _, issues := range []int{0, 1, 3} {
						for _, attempts := range []int{0, 1, 2, 3, 7} {
							s := &State{Attempts: attempts}
							if hasPlan {
								s.Plan = strp("p")
							}
							if hasDraft {
								s.Draft = strp("d")
							}
							if hasDirective {
								s.RepairDirective = strp("r")
							}
							if hasFinal {
								s.FinalOutput = strp("f")
							}
							for i := 0; i < issues; i++ {
								s.CritiqueIssues = append(s.CritiqueIssues, "issue")
							}
							fn(s)
						}
					}
				}
			}
		}
	}
}

func FuzzTerminationLockstep(f *testing.F) {
	f.Add(0, false, false, false, 0, false)
	f.Add(3, true, true, false, 1, false)
	f.Add(1, true, true, true, 2, true)

	f.Fuzz(func(t *testing.T, attempts int, hasPlan, hasDraft, hasDirective bool, issues int, hasFinal bool) {
		s := &State{Attempts: attempts}
		if hasPlan {
			s.Plan = strp("p")
		}
		if hasDraft {
			s.Draft = strp("d")
		}
		if hasDirective {
			s.RepairDirective = strp("r")
		}
		if hasFinal {
			s.FinalOutput = strp("f")
		}
		if issues < 0 {
			issues = -issues
		}
		for i := 0; i < issues%4; i++ {
			s.CritiqueIssues = append(s.CritiqueIssues, "issue")
		}

		atEnd := NextNode(s, DefaultMaxAttempts) == NodeEnd
		if term := ShouldTerminate(s, DefaultMaxAttempts); atEnd != term {
			t.Errorf("lockstep broken: NextNode end=%v, ShouldTerminate=%v, state=%+v", atEnd, term, s)
		}
	})
}

func TestNewInitialState_Validation(t *testing.T) {
	valid := TurnInput{SessionID: "s1", TurnID: "t1", UserInput: "hello", Mode: ModeAssistant}

	if _, err := NewInitialState(valid, "", "", decisionFixture(), Options{}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(TurnInput) TurnInput
	}{
		{"missing-session", func(in TurnInput) TurnInput { in.SessionID = ""; return in }},
		{"missing-turn", func(in TurnInput) TurnInput { in.TurnID = ""; return in }},
		{"missing-input", func(in TurnInput) TurnInput { in.UserInput = ""; return in }},
		{"missing-mode", func(in TurnInput) TurnInput { in.Mode = ""; return in }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewInitialState(tt.mutate(valid), "", "", decisionFixture(), Options{}); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
