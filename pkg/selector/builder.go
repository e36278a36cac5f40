package selector

import "sort"

type candidateKey struct {
	strategy Strategy
	value    string
}

// BuildChain assembles the fallback chain for one element. It merges the
// explicit candidates with candidates inferred from metadata, drops
// duplicate strategy+value pairs keeping the first occurrence, and orders
// the result by strategy stability. Building is pure: calling it again on
// its own output yields the same chain.
func BuildChain(candidates []Candidate, meta ComponentMetadata) Chain {
	merged := make([]Candidate, 0, len(candidates)+3)
	merged = append(merged, candidates...)
	merged = append(merged, inferredCandidates(candidates, meta)...)

	chain := make(Chain, 0, len(merged))
	seen := make(map[candidateKey]bool, len(merged))
	for _, c := range merged {
		key := candidateKey{c.Strategy, c.Value}
		if seen[key] {
			continue
		}
		seen[key] = true
		chain = append(chain, c)
	}

	// Stable sort keeps the original relative order of candidates that
	// share a strategy.
	sort.SliceStable(chain, func(i, j int) bool {
		return rank(chain[i].Strategy) < rank(chain[j].Strategy)
	})
	return chain
}

// inferredCandidates derives extra candidates from observed metadata for
// strategies the explicit list does not already cover.
func inferredCandidates(existing []Candidate, meta ComponentMetadata) []Candidate {
	covered := make(map[Strategy]bool, len(existing))
	for _, c := range existing {
		covered[c.Strategy] = true
	}

	var inferred []Candidate
	if meta.TestID != "" && !covered[StrategyTestID] {
		inferred = append(inferred, Candidate{Strategy: StrategyTestID, Value: meta.TestID})
	}
	if meta.Role != "" && !covered[StrategyRole] {
		name := meta.Name
		if name == "" {
			name = meta.Text
		}
		inferred = append(inferred, Candidate{Strategy: StrategyRole, Value: meta.Role, Name: name})
	}
	if meta.Text != "" && !covered[StrategyText] {
		inferred = append(inferred, Candidate{Strategy: StrategyText, Value: meta.Text})
	}
	return inferred
}
