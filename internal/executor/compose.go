package executor

import (
	"fmt"
	"strings"
	"time"

	"wtr/internal/domain"
	"wtr/pkg/selector"
)

// ChainIndex maps "case-name/step-index" to the fallback chain the runner
// helper walks when the preferred locator stops matching.
type ChainIndex map[string]selector.Chain

// ComposeSuite concatenates the suite's case sources into one runnable
// artifact with a header naming the suite and each case.
func ComposeSuite(suite domain.Suite) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Suite: %s (%d cases)\n", suite.Name, len(suite.Cases))
	b.WriteString("// Generated by wtr, do not edit.\n\n")

	for _, c := range suite.Cases {
		fmt.Fprintf(&b, "// Case: %s", c.Name)
		if c.Category != "" {
			fmt.Fprintf(&b, " [%s]", c.Category)
		}
		if c.Route != "" {
			fmt.Fprintf(&b, " route %s", c.Route)
		}
		b.WriteString("\n")

		code := strings.TrimRight(c.Code, "\n")
		if code == "" {
			b.WriteString("// (no code for this case)\n\n")
			continue
		}
		b.WriteString(code)
		b.WriteString("\n\n")
	}
	return b.String()
}

// BuildChainIndex builds the fallback chain for every step carrying locator
// data. Chains are fixed here, before the suite runs; the runner helper
// only walks them.
func BuildChainIndex(suite domain.Suite) ChainIndex {
	idx := make(ChainIndex)
	for _, c := range suite.Cases {
		for i, step := range c.Steps {
			if len(step.Candidates) == 0 && step.Metadata == (selector.ComponentMetadata{}) {
				continue
			}
			chain := selector.BuildChain(step.Candidates, step.Metadata)
			if len(chain) == 0 {
				continue
			}
			idx[fmt.Sprintf("%s/%d", c.Name, i)] = chain
		}
	}
	return idx
}

// NewSpec assembles the executor spec for one planned suite.
func NewSpec(suite domain.Suite, timeout time.Duration, env []string) Spec {
	return Spec{
		SuiteName: suite.Name,
		Code:      ComposeSuite(suite),
		Workers:   suite.Workers,
		Timeout:   timeout,
		Env:       env,
		Chains:    BuildChainIndex(suite),
	}
}
