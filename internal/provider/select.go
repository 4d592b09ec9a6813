package provider

// #region imports
import (
	"context"
	"fmt"
	"log"

	"github.com/Bitwarelabscom/Luna-chat-v7-sub015/internal/router"
)

// #endregion

// #region selector

// Selector maps route tiers to provider variants, with an explicit
// primary → fallback chain per tier. Selection is table-driven; no
// runtime type inspection.
type Selector struct {
	table    map[router.Tier][]Provider // first entry is the primary
	reviewer Provider                   // backs the critique node
}

// NewSelector builds a selector from per-tier chains. Every tier must
// have at least one provider; reviewer may equal a tier provider.
func NewSelector(table map[router.Tier][]Provider, reviewer Provider) (*Selector, error) {
	for _, tier := range []router.Tier{router.TierLight, router.TierStandard, router.TierTool, router.TierMax} {
		if len(table[tier]) == 0 {
			return nil, fmt.Errorf("no provider configured for tier %q", tier)
		}
	}
	if reviewer == nil {
		return nil, fmt.Errorf("no reviewer provider configured")
	}
	return &Selector{table: table, reviewer: reviewer}, nil
}

// Reviewer returns the provider backing the critique node.
func (s *Selector) Reviewer() Provider {
	return s.reviewer
}

// #endregion

// #region generate

// Generate runs the request against the tier's chain: the primary first,
// then each fallback when the previous result was empty or a provider
// error. The last result is returned as-is when the chain is exhausted.
func (s *Selector) Generate(ctx context.Context, tier router.Tier, req Request) Result {
	chain := s.table[tier]
	var last Result
	for i, p := range chain {
		last = p.Generate(ctx, req)
		if last.Ok() {
			return last
		}
		if ctx.Err() != nil {
			return last
		}
		if i < len(chain)-1 {
			log.Printf("[PROVIDER] %s on tier %s returned %s, falling back", p.Name(), tier, last.Status)
		}
	}
	return last
}

// #endregion
