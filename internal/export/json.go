package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wtr/internal/domain"
)

// Save aggregates suite reports into a run report and writes it to the
// configured JSON output file.
func (e *JSONExporter) Save(suites []domain.SuiteReport, runID, mode string, duration time.Duration, suiteProcs int) error {
	passed := 0
	failed := 0
	timedOut := 0
	canceled := 0
	passedCases := 0
	failedCases := 0
	healed := 0
	for _, s := range suites {
		if s.Success {
			passed++
		} else {
			failed++
		}
		if s.TimedOut {
			timedOut++
		}
		if s.Canceled {
			canceled++
		}
		passedCases += s.CasesPassed
		failedCases += s.CasesFailed
		healed += len(s.HealedSelectors)
	}

	report := domain.RunReport{
		Meta: domain.RunMeta{
			RunID:           runID,
			Mode:            mode,
			TotalSuites:     len(suites),
			PassedSuites:    passed,
			FailedSuites:    failed,
			TimedOutSuites:  timedOut,
			CanceledSuites:  canceled,
			PassedCases:     passedCases,
			FailedCases:     failedCases,
			HealedSelectors: healed,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			SuiteProcs:      suiteProcs,
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Suites: suites,
	}

	return e.SaveReport(&report)
}

// Load reads the last run report from the configured JSON output file.
func (e *JSONExporter) Load() (*domain.RunReport, error) {
	path := e.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}

// SaveReport writes the full report to the configured JSON file (e.g. after triaging suites in the viewer).
func (e *JSONExporter) SaveReport(report *domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	path := e.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
