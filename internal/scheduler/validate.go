package scheduler

import (
	"fmt"

	"wtr/internal/domain"
)

// InvariantError reports a plan that violates a scheduling invariant.
// Getting one means a scheduling bug, not bad input.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "scheduling invariant violated: " + e.Reason
}

// ValidatePlan checks a plan against the invariants every scheduling mode
// must uphold: unique non-empty suites, sane worker counts, shared-context
// suites pinned to one worker, and no case lost or duplicated relative to
// the input.
func ValidatePlan(plan domain.ExecutionPlan, cases []domain.TestCase) error {
	seenSuites := make(map[string]bool, len(plan.Suites))
	planned := make(map[string]int)

	for _, suite := range plan.Suites {
		if len(suite.Cases) == 0 {
			return &InvariantError{Reason: fmt.Sprintf("suite %q is empty", suite.Name)}
		}
		if suite.Workers < 1 {
			return &InvariantError{Reason: fmt.Sprintf("suite %q has %d workers", suite.Name, suite.Workers)}
		}
		if suite.SharedContext && suite.Workers != 1 {
			return &InvariantError{Reason: fmt.Sprintf("suite %q shares context but has %d workers", suite.Name, suite.Workers)}
		}
		if seenSuites[suite.Name] {
			return &InvariantError{Reason: fmt.Sprintf("suite name %q appears twice", suite.Name)}
		}
		seenSuites[suite.Name] = true

		for _, c := range suite.Cases {
			planned[c.Name]++
		}
	}

	input := make(map[string]int, len(cases))
	for _, c := range cases {
		input[c.Name]++
	}
	for name, count := range input {
		if planned[name] != count {
			return &InvariantError{Reason: fmt.Sprintf("case %q scheduled %d times, expected %d", name, planned[name], count)}
		}
	}
	for name, count := range planned {
		if input[name] != count {
			return &InvariantError{Reason: fmt.Sprintf("case %q scheduled %d times, expected %d", name, count, input[name])}
		}
	}
	return nil
}
