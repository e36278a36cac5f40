package selector

import (
	"context"
	"fmt"
	"strings"
)

// PageCapability is the query surface a page binding must provide. Each
// method reports how many elements the query matches right now. An error
// means the query itself could not be evaluated, not that nothing matched.
type PageCapability interface {
	FindByTestID(ctx context.Context, value string) (int, error)
	FindByRole(ctx context.Context, role, name string) (int, error)
	FindByText(ctx context.Context, text string) (int, error)
	FindBySelector(ctx context.Context, raw string) (int, error)
}

// Result reports how a chain resolved against a live page.
type Result struct {
	Found    bool
	Healed   bool
	Used     Candidate
	Original Candidate
}

// HealEvent records a successful fallback past the preferred candidate.
type HealEvent struct {
	Original Candidate
	Used     Candidate
}

// Warning renders the healed-selector line that execution output carries
// back to the reporting layer.
func (e HealEvent) Warning() string {
	return fmt.Sprintf("Selector healed: preferred %s(%s) failed, fell back to %s(%s)",
		e.Original.Strategy, e.Original.Value, e.Used.Strategy, e.Used.Value)
}

// HealEvent returns the heal backing this result, if any.
func (r Result) HealEvent() (HealEvent, bool) {
	if !r.Healed {
		return HealEvent{}, false
	}
	return HealEvent{Original: r.Original, Used: r.Used}, true
}

// Resolve walks the chain in order and returns the first candidate that
// matches at least one element. A candidate that errors or matches nothing
// is skipped, never fatal. Resolving past index zero marks the result
// healed. An empty or fully exhausted chain resolves to not found.
func Resolve(ctx context.Context, chain Chain, page PageCapability) Result {
	for i, c := range chain {
		count, err := matchCount(ctx, c, page)
		if err != nil || count < 1 {
			continue
		}
		r := Result{Found: true, Used: c}
		if i > 0 {
			r.Healed = true
			r.Original = chain[0]
		}
		return r
	}
	return Result{}
}

func matchCount(ctx context.Context, c Candidate, page PageCapability) (int, error) {
	switch c.Strategy {
	case StrategyTestID:
		return page.FindByTestID(ctx, c.Value)
	case StrategyRole:
		return page.FindByRole(ctx, c.Value, c.Name)
	case StrategyText:
		return page.FindByText(ctx, c.Value)
	case StrategySemantic, StrategyStructural, StrategyCSS:
		return page.FindBySelector(ctx, c.Value)
	default:
		return 0, fmt.Errorf("unknown selector strategy %q", c.Strategy)
	}
}

// ExhaustedMessage renders the step failure message for a chain that
// resolved to nothing.
func ExhaustedMessage(chain Chain) string {
	if len(chain) == 0 {
		return "selector chain is empty, element is unresolvable"
	}
	tried := make([]string, len(chain))
	for i, c := range chain {
		tried[i] = c.String()
	}
	return fmt.Sprintf("no selector matched after %d candidates: %s", len(chain), strings.Join(tried, ", "))
}
