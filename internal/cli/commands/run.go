package commands

import (
	"fmt"

	"wtr/internal/config"
	"wtr/internal/discovery"
	"wtr/internal/domain"
	"wtr/internal/executor"
	"wtr/internal/export"
	"wtr/internal/parser"
	"wtr/internal/provision"
	"wtr/internal/scheduler"
	"wtr/internal/ui"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	pool      *executor.Pool
	parser    parser.Parser
	exporter  export.Exporter
	formatter *ui.Formatter
	preparer  provision.Preparer
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	pool *executor.Pool,
	runnerParser parser.Parser,
	exporter export.Exporter,
	formatter *ui.Formatter,
	preparer provision.Preparer,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		pool:      pool,
		parser:    runnerParser,
		exporter:  exporter,
		formatter: formatter,
		preparer:  preparer,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Discover cases
	cases, err := discoverCases(rc.config, rc.scanner)
	if err != nil {
		return err
	}

	// Filter cases
	cases = rc.filter.FilterByName(cases, rc.config.Flags.NameFilter)

	if len(cases) == 0 {
		color.Yellow("No cases to execute")
		return nil
	}

	// Build the execution plan
	plan, err := buildPlan(rc.config, cases)
	if err != nil {
		return err
	}

	// Provision databases if flag is set
	if rc.config.Flags.Prepare {
		if err := rc.preparer.Prepare(cmd.Context(), plan.MaxWorkers()); err != nil {
			return fmt.Errorf("database preparation failed: %w", err)
		}
		fmt.Println()
	}

	rc.formatter.PrintBanner(&plan, rc.config.SuiteProcs)

	// Assemble one process spec per suite
	specs := make([]executor.Spec, 0, len(plan.Suites))
	for _, suite := range plan.Suites {
		specs = append(specs, executor.NewSpec(suite, rc.config.SuiteTimeout, nil))
	}

	// Create and set progress bar
	progressBar := ui.NewProgressBar(len(specs))
	rc.pool.SetProgress(progressBar)

	// Execute suites
	results, duration, err := rc.pool.ExecuteWithOptions(cmd.Context(), specs, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	// Parse each raw result into a suite report
	reports := make([]domain.SuiteReport, 0, len(results))
	failedCount := 0
	for _, result := range results {
		report := buildSuiteReport(rc.parser, result)
		if !report.Success {
			failedCount++
		}
		reports = append(reports, report)
	}

	// Save the run report
	if err := rc.exporter.Save(reports, uuid.NewString(), plan.Mode, duration, rc.config.SuiteProcs); err != nil {
		return fmt.Errorf("failed to save run report: %w", err)
	}

	// Print stats
	if err := rc.formatter.PrintRunStats(); err != nil {
		return err
	}

	if failedCount > 0 && rc.config.Flags.OpenFails {
		report, err := rc.exporter.Load()
		if err != nil {
			return err
		}
		if err := rc.viewer.View(report); err != nil {
			return err
		}
	}

	if failedCount > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d suite(s) failed", failedCount)
	}
	return nil
}

// discoverCases loads cases from the generator manifest when one is present
// and falls back to scanning the specs directory.
func discoverCases(cfg *config.Config, scanner *discovery.Scanner) ([]domain.TestCase, error) {
	manifestPath := cfg.GetManifestPath()
	if cfg.Flags.Manifest != "" || discovery.ManifestExists(manifestPath) {
		manifest, err := discovery.LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		return manifest.Cases, nil
	}
	return scanner.Scan(cfg.GetSpecsPath())
}

// buildPlan schedules the cases and validates the resulting plan
func buildPlan(cfg *config.Config, cases []domain.TestCase) (domain.ExecutionPlan, error) {
	policy, err := loadPolicy(cfg)
	if err != nil {
		return domain.ExecutionPlan{}, err
	}

	sched := scheduler.NewPolicyScheduler(cfg.MaxWorkers)
	plan, err := sched.Schedule(cases, policy)
	if err != nil {
		return domain.ExecutionPlan{}, err
	}
	if err := scheduler.ValidatePlan(plan, cases); err != nil {
		return domain.ExecutionPlan{}, err
	}
	return plan, nil
}

// loadPolicy resolves the scheduling policy from the policy file and the mode flag.
// The mode flag wins over the file's mode.
func loadPolicy(cfg *config.Config) (scheduler.Policy, error) {
	policy := scheduler.DefaultPolicy()
	if cfg.Flags.PolicyFile != "" {
		loaded, err := scheduler.LoadPolicyFile(cfg.Flags.PolicyFile)
		if err != nil {
			return scheduler.Policy{}, err
		}
		policy = loaded
	}
	if cfg.Flags.Mode != "" {
		policy.Mode = scheduler.Mode(cfg.Flags.Mode)
	}
	return policy, nil
}

// buildSuiteReport parses one raw execution result into a suite report
func buildSuiteReport(p parser.Parser, result domain.ExecutionResult) domain.SuiteReport {
	passed, failed := p.ParseCaseCounts(result)
	return domain.SuiteReport{
		Name:            result.SuiteName,
		Success:         result.Success,
		ExitCode:        result.ExitCode,
		TimedOut:        result.TimedOut,
		Canceled:        result.Canceled,
		DurationSeconds: result.DurationSeconds,
		CasesPassed:     passed,
		CasesFailed:     failed,
		HealedSelectors: p.ParseHeals(result),
		Failures:        p.ParseFailures(result),
		Stdout:          result.Stdout,
		Stderr:          result.Stderr,
	}
}
