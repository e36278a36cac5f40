package ui

import (
	"fmt"
	"strings"

	"wtr/internal/config"
	"wtr/internal/domain"
	"wtr/internal/export"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// FailsViewer displays failed suites in an interactive TUI
type FailsViewer struct {
	config   *config.Config
	exporter export.Exporter
}

// NewFailsViewer creates a new FailsViewer
func NewFailsViewer(cfg *config.Config, exporter export.Exporter) *FailsViewer {
	return &FailsViewer{
		config:   cfg,
		exporter: exporter,
	}
}

// View displays the report's failed suites in an interactive TUI
func (fv *FailsViewer) View(report *domain.RunReport) error {
	// Indexes of failed suites within the full report, so triage updates
	// write back into the report that gets saved.
	var failedIdx []int
	for i, s := range report.Suites {
		if !s.Success {
			failedIdx = append(failedIdx, i)
		}
	}

	if len(failedIdx) == 0 {
		color.Green("✓ No failed suites found!")
		return nil
	}

	// Track triaged suites (by list index) - loaded from the report
	triaged := make(map[int]bool)
	for i, idx := range failedIdx {
		if report.Suites[idx].Triaged {
			triaged[i] = true
		}
	}

	// Function to persist triage status into the exported report
	saveTriaged := func() error {
		for i, idx := range failedIdx {
			report.Suites[idx].Triaged = triaged[i]
		}
		return fv.exporter.SaveReport(report)
	}

	// Create the application
	app := tview.NewApplication()

	// Create list for failed suites (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	// Function to get formatted text for a list item
	getListItemText := func(i int) string {
		suite := report.Suites[failedIdx[i]]
		name := suite.Name
		if name == "" {
			name = fmt.Sprintf("Suite %d", i+1)
		}

		if triaged[i] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", i+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", i+1, name)
	}

	// Function to update list item display with triage status
	updateListItem := func(i int) {
		if i < 0 || i >= list.GetItemCount() {
			return
		}
		list.SetItemText(i, getListItemText(i), "")
	}

	// Add failed suites to the list with numbers and colors
	for i := range failedIdx {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	// Set list colors for better visibility
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// Create stats header view (shows suite status line)
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	// Create text view for suite details (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	// Create a container with right padding for the details view
	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	// Create right side layout: stats on top, details below
	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// Create simple flex layout: list on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	// Count untriaged suites
	countUntriaged := func() int {
		count := 0
		for i := range failedIdx {
			if !triaged[i] {
				count++
			}
		}
		return count
	}

	// Create header text view (so we can update it)
	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	// Function to update header
	updateHeader := func() {
		headerText := fmt.Sprintf(" Failed Suites (%d total, %d untriaged) | Use ↑↓ to navigate, [yellow]R[white] to mark triaged, → to view details, ← to go back, Ctrl+C to exit ",
			len(failedIdx), countUntriaged())
		headerView.SetText(headerText)
	}

	// Set initial header
	updateHeader()

	// Update details when selection changes
	updateDetails := func() {
		i := list.GetCurrentItem()
		if i >= 0 && i < len(failedIdx) {
			suite := report.Suites[failedIdx[i]]
			statsView.SetText(fv.formatSuiteStats(suite, i+1))
			detailsView.SetText(fv.formatSuiteDetails(suite))
		}
	}

	// Set up keyboard handlers for list
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				i := list.GetCurrentItem()
				if i >= 0 && i < len(failedIdx) {
					triaged[i] = !triaged[i]
					updateListItem(i)
					updateHeader()
					updateDetails()
					if err := saveTriaged(); err != nil {
						_ = err
					}
				}
				return nil
			}
		}
		return event
	})

	// Set up keyboard handlers for details view
	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	// Update details when list selection changes
	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	// Set initial details
	updateDetails()

	// Create main layout with title
	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(
			tview.NewBox().SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
				return x, y, width, height
			}),
			1, 0, false,
		).
		AddItem(flex, 0, 1, true)

	// Run the application
	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatSuiteDetails formats a failed suite for display using tview color tags ([red], [cyan], etc.)
func (fv *FailsViewer) formatSuiteDetails(suite domain.SuiteReport) string {
	var builder strings.Builder

	// Suite status
	fmt.Fprintf(&builder, "[red]✗ Suite: %s[white]\n\n", tview.Escape(suite.Name))

	status := fmt.Sprintf("exit code %d", suite.ExitCode)
	if suite.TimedOut {
		status += ", timed out"
	}
	if suite.Canceled {
		status += ", canceled"
	}
	fmt.Fprintf(&builder, "[cyan]Status: %s[white]\n", status)
	fmt.Fprintf(&builder, "[cyan]Duration: %.2fs[white]\n", suite.DurationSeconds)
	fmt.Fprintf(&builder, "[cyan]Cases: %d passed, %d failed[white]\n\n", suite.CasesPassed, suite.CasesFailed)

	// Failed cases
	if len(suite.Failures) > 0 {
		fmt.Fprintf(&builder, "[yellow]Failed cases:[white]\n")
		for _, failure := range suite.Failures {
			fmt.Fprintf(&builder, "  [red]✗ %s[white]", tview.Escape(failure.CaseName))
			if failure.Location != "" {
				fmt.Fprintf(&builder, " [yellow](%s)[white]", tview.Escape(failure.Location))
			}
			fmt.Fprintf(&builder, "\n")
			if failure.Message != "" {
				for _, line := range strings.Split(strings.TrimRight(failure.Message, "\n"), "\n") {
					fmt.Fprintf(&builder, "    %s\n", tview.Escape(line))
				}
			}
		}
		fmt.Fprintf(&builder, "\n")
	}

	// Healed selectors
	if len(suite.HealedSelectors) > 0 {
		fmt.Fprintf(&builder, "[yellow]Healed selectors:[white]\n")
		for _, warning := range suite.HealedSelectors {
			fmt.Fprintf(&builder, "  %s\n", tview.Escape(warning))
		}
		fmt.Fprintf(&builder, "\n")
	}

	// Captured output, tail-truncated
	fv.appendOutput(&builder, "Output (stdout)", suite.Stdout)
	fv.appendOutput(&builder, "Output (stderr)", suite.Stderr)

	return builder.String()
}

const outputTailLines = 30

// appendOutput writes the last lines of a captured stream to the details text
func (fv *FailsViewer) appendOutput(builder *strings.Builder, label, output string) {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return
	}

	lines := strings.Split(output, "\n")
	fmt.Fprintf(builder, "[yellow]%s:[white]\n", label)
	if skipped := len(lines) - outputTailLines; skipped > 0 {
		fmt.Fprintf(builder, "  [gray]... %d earlier line(s) skipped[white]\n", skipped)
		lines = lines[skipped:]
	}
	for _, line := range lines {
		fmt.Fprintf(builder, "  %s\n", tview.Escape(line))
	}
	fmt.Fprintf(builder, "\n")
}

// formatSuiteStats formats the stats header for a failed suite
func (fv *FailsViewer) formatSuiteStats(suite domain.SuiteReport, number int) string {
	name := suite.Name
	if name == "" {
		name = fmt.Sprintf("Suite %d", number)
	}

	return fmt.Sprintf("[cyan]suite:[white] [yellow]%s[white] [cyan]exit:[white] [yellow]%d[white]\n",
		tview.Escape(name), suite.ExitCode)
}
