package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"wtr/internal/config"
	"wtr/internal/domain"

	"github.com/fatih/color"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintRunStats reads and displays run statistics from the exported report file
func (f *Formatter) PrintRunStats() error {
	outputPath := f.config.GetOutputPath()

	// Read JSON file
	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read report file: %w", err)
	}

	// Parse JSON
	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("failed to parse report: %w", err)
	}

	meta := report.Meta

	// Print header
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Suite Execution Statistics                ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	// Print table
	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	// Run ID
	fmt.Printf("│ %-31s │ ", "Run ID")
	color.White("%-27s │\n", meta.RunID)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Mode
	fmt.Printf("│ %-31s │ ", "Mode")
	color.White("%-27s │\n", meta.Mode)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Total Suites
	fmt.Printf("│ %-31s │ ", "Total Suites")
	color.White("%-27d │\n", meta.TotalSuites)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Passed Suites
	fmt.Printf("│ %-31s │ ", "Passed Suites")
	color.Green("%-27d │\n", meta.PassedSuites)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Failed Suites
	fmt.Printf("│ %-31s │ ", "Failed Suites")
	color.Red("%-27d │\n", meta.FailedSuites)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Timed Out Suites
	fmt.Printf("│ %-31s │ ", "Timed Out Suites")
	color.Red("%-27d │\n", meta.TimedOutSuites)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Canceled Suites
	fmt.Printf("│ %-31s │ ", "Canceled Suites")
	color.Yellow("%-27d │\n", meta.CanceledSuites)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Passed Cases
	fmt.Printf("│ %-31s │ ", "Passed Cases")
	color.Green("%-27d │\n", meta.PassedCases)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Failed Cases
	fmt.Printf("│ %-31s │ ", "Failed Cases")
	color.Red("%-27d │\n", meta.FailedCases)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Healed Selectors
	fmt.Printf("│ %-31s │ ", "Healed Selectors")
	color.Yellow("%-27d │\n", meta.HealedSelectors)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Duration
	fmt.Printf("│ %-31s │ ", "Duration")
	durationStr := fmt.Sprintf("%.2fs", meta.DurationSeconds)
	color.White("%-27s │\n", durationStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Suite Procs
	fmt.Printf("│ %-31s │ ", "Suite Procs")
	color.White("%-27d │\n", meta.SuiteProcs)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Timestamp
	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Println()
	if meta.FailedSuites == 0 {
		color.Green("✓ All suites passed!")
	} else {
		color.Red("✗ %d suite(s) failed with %d case failure(s)", meta.FailedSuites, meta.FailedCases)
		fmt.Println()
		f.printFailureTree(report.FailedSuites())
	}

	f.printHealWarnings(report.Suites)

	return nil
}

// printFailureTree prints failed suites with their case failures as a tree
func (f *Formatter) printFailureTree(suites []domain.SuiteReport) {
	for i, suite := range suites {
		isLastSuite := i == len(suites)-1

		marker := ""
		if suite.TimedOut {
			marker = " " + color.RedString("[timed out]")
		} else if suite.Canceled {
			marker = " " + color.YellowString("[canceled]")
		}

		if isLastSuite {
			color.Cyan("└── %s%s", suite.Name, marker)
		} else {
			color.Cyan("├── %s%s", suite.Name, marker)
		}

		for j, failure := range suite.Failures {
			isLastCase := j == len(suite.Failures)-1

			var prefix string
			if isLastSuite {
				if isLastCase {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if isLastCase {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}

			location := ""
			if failure.Location != "" {
				location = color.YellowString(" (%s)", failure.Location)
			}
			fmt.Printf("%s%s%s\n", prefix, color.RedString(failure.CaseName), location)
		}
	}
}

// printHealWarnings lists healed-selector warnings collected across suites
func (f *Formatter) printHealWarnings(suites []domain.SuiteReport) {
	var warnings []string
	for _, suite := range suites {
		warnings = append(warnings, suite.HealedSelectors...)
	}
	if len(warnings) == 0 {
		return
	}

	fmt.Println()
	color.Yellow("⚠ %d selector(s) healed during this run:", len(warnings))
	for _, warning := range warnings {
		color.Yellow("  %s", warning)
	}
}

// PrintPlan prints the execution plan, optionally with the cases inside each suite.
// failedCases is optional; if set, cases in this set are marked with [F] in red (from last run).
func (f *Formatter) PrintPlan(plan *domain.ExecutionPlan, showCases bool, failedCases map[string]struct{}) error {
	color.Green("Planned %d suite(s) in %s mode with %d case(s):\n", len(plan.Suites), plan.Mode, plan.TotalCases())

	for i, suite := range plan.Suites {
		isLastSuite := i == len(plan.Suites)-1

		shared := ""
		if suite.SharedContext {
			shared = ", shared context"
		}
		suiteLine := fmt.Sprintf("%s (%d case(s), workers: %d%s)", suite.Name, len(suite.Cases), suite.Workers, shared)

		if isLastSuite {
			color.Cyan("└── %s", suiteLine)
		} else {
			color.Cyan("├── %s", suiteLine)
		}

		if !showCases {
			continue
		}

		// Print cases as children
		if len(suite.Cases) == 0 {
			var prefix string
			if isLastSuite {
				prefix = "    └── "
			} else {
				prefix = "│   └── "
			}
			fmt.Printf("%s%s\n", prefix, color.RedString("(no cases)"))
			continue
		}

		for j, testCase := range suite.Cases {
			isLastCase := j == len(suite.Cases)-1

			var prefix string
			if isLastSuite {
				if isLastCase {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if isLastCase {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}

			failMarker := ""
			if len(failedCases) > 0 {
				if _, ok := failedCases[strings.ToLower(testCase.Name)]; ok {
					failMarker = " " + color.RedString("[F]")
				}
			}

			fmt.Printf("%s%s%s\n", prefix, color.YellowString("%s [%s]", testCase.Name, testCase.Category), failMarker)
		}

		// Add spacing between suites (except for the last one)
		if i < len(plan.Suites)-1 {
			fmt.Println()
		}
	}

	return nil
}

// PrintBanner prints the run banner with suite and case counts
func (f *Formatter) PrintBanner(plan *domain.ExecutionPlan, suiteProcs int) {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║                    Executing Test Suites                   ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")
	color.White("Mode: %s | Suites: %d | Cases: %d | Suite processes: %d\n\n",
		plan.Mode, len(plan.Suites), plan.TotalCases(), suiteProcs)
}
