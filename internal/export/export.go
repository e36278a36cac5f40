package export

import (
	"time"

	"wtr/internal/config"
	"wtr/internal/domain"
)

// Exporter persists and loads run reports (e.g. for the fails viewer).
type Exporter interface {
	Save(suites []domain.SuiteReport, runID, mode string, duration time.Duration, suiteProcs int) error
	Load() (*domain.RunReport, error)
	// SaveReport writes the full report (e.g. after triage updates).
	SaveReport(report *domain.RunReport) error
}

// JSONExporter stores run reports in a JSON file under the configured output path.
type JSONExporter struct {
	cfg *config.Config
}

// NewJSONExporter returns an Exporter that reads/writes the config's output JSON path.
func NewJSONExporter(cfg *config.Config) *JSONExporter {
	return &JSONExporter{cfg: cfg}
}
