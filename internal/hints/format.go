package hints

// #region imports
import (
	"fmt"
	"strings"
)

// #endregion

// #region format

// FormatForPrompt renders active hints as a prompt block. Hints are
// deduped by type with session hints taking priority over user hints of
// the same type; user hints at or above the high-weight mark carry an
// IMPORTANT marker. Returns nil when there is nothing to inject, so
// callers can tell "no hints" apart from "empty hints".
func FormatForPrompt(active []Hint, cfg Config) *string {
	if len(active) == 0 {
		return nil
	}

	byType := map[string]Hint{}
	var order []string
	for _, h := range active {
		prev, seen := byType[h.Type]
		if !seen {
			byType[h.Type] = h
			order = append(order, h.Type)
			continue
		}
		// Session scope wins over user scope for the same type.
		if prev.Scope == ScopeUser && h.Scope == ScopeSession {
			byType[h.Type] = h
		}
	}

	var b strings.Builder
	b.WriteString("Behavior corrections from past feedback:\n")
	for _, t := range order {
		h := byType[t]
		if h.Scope == ScopeUser && h.Weight >= cfg.HighWeightMark {
			fmt.Fprintf(&b, "- IMPORTANT: %s\n", h.Text)
			continue
		}
		fmt.Fprintf(&b, "- %s\n", h.Text)
	}

	out := b.String()
	return &out
}

// #endregion
