package discovery

import (
	"path/filepath"
	"strings"

	"wtr/internal/domain"
)

// Filter filters test cases by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test cases by name pattern using wildcard matching
// Supports patterns like "checkout-*" or "*cart*"
func (f *Filter) FilterByName(cases []domain.TestCase, pattern string) []domain.TestCase {
	if pattern == "" {
		return cases
	}

	var filtered []domain.TestCase
	for _, c := range cases {
		if matchesPattern(c.Name, pattern) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// matchesPattern matches a case name against a wildcard pattern, falling
// back to substring matching when the pattern has no wildcards.
func matchesPattern(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.ContainsAny(pattern, "*?") {
		// Flexible match for patterns like "*cart*": every literal part
		// must appear in the name.
		parts := strings.Split(pattern, "*")
		hasLiteral := false
		for _, part := range parts {
			if part == "" {
				continue
			}
			hasLiteral = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasLiteral
	}

	return strings.Contains(name, pattern)
}
