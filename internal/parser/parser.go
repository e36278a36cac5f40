package parser

import "wtr/internal/domain"

// Parser parses suite results and extracts case-level outcomes
type Parser interface {
	ParseCaseCounts(result domain.ExecutionResult) (passed, failed int)
	ParseFailures(result domain.ExecutionResult) []domain.CaseFailure
	ParseHeals(result domain.ExecutionResult) []string
}
