package parser

import (
	"fmt"
	"regexp"
	"strings"

	"wtr/internal/domain"
)

// RunnerParser parses list-reporter output from the test runner
type RunnerParser struct{}

// NewRunnerParser creates a new RunnerParser
func NewRunnerParser() *RunnerParser {
	return &RunnerParser{}
}

var (
	passedPattern  = regexp.MustCompile(`(?m)^\s*(\d+) passed`)
	failedPattern  = regexp.MustCompile(`(?m)^\s*(\d+) failed`)
	flakyPattern   = regexp.MustCompile(`(?m)^\s*(\d+) flaky`)
	failureHeader  = regexp.MustCompile(`^\s{2,}(\d+)\)\s+(.*)$`)
	summaryLine    = regexp.MustCompile(`^\s*\d+ (passed|failed|flaky|skipped|interrupted|did not run)`)
	locationToken  = regexp.MustCompile(`\S+:\d+:\d+`)
	retrySuffix    = regexp.MustCompile(`\s*\(retry #\d+\)$`)
	healMarker     = "Selector healed:"
)

// ParseCaseCounts extracts passed and failed case counts from the runner
// summary. Flaky cases passed on retry and count as passed. When no summary
// is present the whole suite counts as one case (suite-level fallback).
func (p *RunnerParser) ParseCaseCounts(result domain.ExecutionResult) (passed, failed int) {
	output := result.Stdout + "\n" + result.Stderr

	if m := passedPattern.FindStringSubmatch(output); len(m) >= 2 {
		fmt.Sscanf(m[1], "%d", &passed)
	}
	if m := flakyPattern.FindStringSubmatch(output); len(m) >= 2 {
		var flaky int
		fmt.Sscanf(m[1], "%d", &flaky)
		passed += flaky
	}
	if m := failedPattern.FindStringSubmatch(output); len(m) >= 2 {
		fmt.Sscanf(m[1], "%d", &failed)
	}
	if passed > 0 || failed > 0 {
		return passed, failed
	}

	// Fallback: one "case" per suite
	if result.Success {
		return 1, 0
	}
	return 0, 1
}

// ParseFailures extracts the numbered failure blocks the list reporter
// prints after the run. Retried cases are reported once, keeping the first
// block's message.
func (p *RunnerParser) ParseFailures(result domain.ExecutionResult) []domain.CaseFailure {
	lines := strings.Split(result.Stdout+"\n"+result.Stderr, "\n")

	var failures []domain.CaseFailure
	seen := make(map[string]bool)

	for i := 0; i < len(lines); i++ {
		header := failureHeader.FindStringSubmatch(lines[i])
		if header == nil {
			continue
		}

		failure := p.parseFailureBlock(header[2], lines, i+1)
		if seen[failure.CaseName] {
			continue
		}
		seen[failure.CaseName] = true
		failures = append(failures, failure)
	}
	return failures
}

// parseFailureBlock builds one failure from its header line and the message
// lines that follow, up to the next header or the summary.
func (p *RunnerParser) parseFailureBlock(header string, lines []string, start int) domain.CaseFailure {
	failure := domain.CaseFailure{}
	failure.CaseName, failure.Location = p.parseFailureHeader(header)

	var messageLines []string
	for j := start; j < len(lines); j++ {
		line := lines[j]
		if failureHeader.MatchString(line) || summaryLine.MatchString(line) {
			break
		}
		if len(messageLines) == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		messageLines = append(messageLines, line)
	}
	for len(messageLines) > 0 && strings.TrimSpace(messageLines[len(messageLines)-1]) == "" {
		messageLines = messageLines[:len(messageLines)-1]
	}
	failure.Message = strings.Join(messageLines, "\n")
	return failure
}

// parseFailureHeader splits a header like
// "[chromium] › all.spec.ts:9:5 › products list ────" into location and
// case title.
func (p *RunnerParser) parseFailureHeader(header string) (name, location string) {
	header = strings.TrimRight(header, "─ ")

	segments := strings.Split(header, "›")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}

	name = retrySuffix.ReplaceAllString(segments[len(segments)-1], "")
	for _, segment := range segments[:len(segments)-1] {
		if loc := locationToken.FindString(segment); loc != "" {
			location = loc
			break
		}
	}
	return name, location
}

// ParseHeals extracts healed-selector warnings from suite output, in order,
// without duplicates.
func (p *RunnerParser) ParseHeals(result domain.ExecutionResult) []string {
	lines := strings.Split(result.Stdout+"\n"+result.Stderr, "\n")

	var heals []string
	seen := make(map[string]bool)
	for _, line := range lines {
		idx := strings.Index(line, healMarker)
		if idx < 0 {
			continue
		}
		warning := strings.TrimSpace(line[idx:])
		if seen[warning] {
			continue
		}
		seen[warning] = true
		heals = append(heals, warning)
	}
	return heals
}
