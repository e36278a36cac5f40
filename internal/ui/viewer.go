package ui

import "wtr/internal/domain"

// Viewer displays failed suites in an interactive TUI
type Viewer interface {
	View(report *domain.RunReport) error
}
