package commands

import (
	"wtr/internal/cli"
	"wtr/internal/config"
	"wtr/internal/discovery"
	"wtr/internal/executor"
	"wtr/internal/export"
	"wtr/internal/parser"
	"wtr/internal/provision"
	"wtr/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	Plan    *PlanCommand
	Prepare *PrepareCommand
	Fails   *FailsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	runnerParser := parser.NewRunnerParser()
	pool := executor.NewPool(cfg, executor.NewProcessExecutor(cfg))
	jsonExporter := export.NewJSONExporter(cfg)
	formatter := ui.NewFormatter(cfg)
	dbManager := provision.NewDatabaseManager(cfg)
	preparer := provision.NewSeeder(cfg, dbManager)
	failsViewer := ui.NewFailsViewer(cfg, jsonExporter)

	return &Commands{
		Run:     NewRunCommand(cfg, scanner, filter, pool, runnerParser, jsonExporter, formatter, preparer, failsViewer),
		Plan:    NewPlanCommand(cfg, scanner, filter, formatter, jsonExporter),
		Prepare: NewPrepareCommand(cfg, preparer),
		Fails:   NewFailsCommand(cfg, jsonExporter, failsViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.Flags = flags.ToConfigFlags()
		if flags.MaxWorkers > 0 {
			cfg.MaxWorkers = flags.MaxWorkers
		}
		if flags.SuiteProcs > 0 {
			cfg.SuiteProcs = flags.SuiteProcs
		}
		if flags.Timeout > 0 {
			cfg.SuiteTimeout = flags.Timeout
		}
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run generated test suites",
		Long:    "Schedule generated test cases into suites and execute each suite as an isolated runner process",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().StringVarP(&flags.Mode, "mode", "m", "", "Scheduling mode: sequential, parallel or smart (default from policy file, else smart)")
	runCmd.Flags().StringVar(&flags.PolicyFile, "policy", "", "Path to a scheduling policy YAML file")
	runCmd.Flags().IntVarP(&flags.MaxWorkers, "max-workers", "w", 0, "Cap on in-runner workers per parallel suite")
	runCmd.Flags().IntVarP(&flags.SuiteProcs, "suite-procs", "p", 0, "Number of suite processes to run concurrently")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Wall clock limit per suite process (e.g. 5m)")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g. 'checkout-*' or '*cart*')")
	runCmd.Flags().StringVarP(&flags.SpecsPath, "specs-path", "s", "", "Directory holding the generated spec files")
	runCmd.Flags().StringVar(&flags.Manifest, "manifest", "", "Path to the generator manifest (default <specs-path>/manifest.json)")
	runCmd.Flags().BoolVar(&flags.Prepare, "prepare", false, "Provision per-worker test databases before executing suites")
	runCmd.Flags().BoolVar(&flags.SkipSeed, "skip-seed", false, "With --prepare, create missing databases but skip the seed command")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on the first failed suite and cancel suites still in flight")
	runCmd.Flags().BoolVar(&flags.OpenFails, "open-fails", false, "Open the fails viewer when the run finishes with failures")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Pass the runner's verbose reporter flag to every suite process")
	rootCmd.AddCommand(runCmd)

	// Plan command
	planCmd := &cobra.Command{
		Use:     "plan",
		Short:   "Show the execution plan without running it",
		Long:    "Discover generated test cases and print the suites the scheduler would run",
		RunE:    c.Plan.Execute,
		PreRunE: applyFlags,
	}
	planCmd.Flags().StringVarP(&flags.Mode, "mode", "m", "", "Scheduling mode: sequential, parallel or smart (default from policy file, else smart)")
	planCmd.Flags().StringVar(&flags.PolicyFile, "policy", "", "Path to a scheduling policy YAML file")
	planCmd.Flags().IntVarP(&flags.MaxWorkers, "max-workers", "w", 0, "Cap on in-runner workers per parallel suite")
	planCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g. 'checkout-*' or '*cart*')")
	planCmd.Flags().StringVarP(&flags.SpecsPath, "specs-path", "s", "", "Directory holding the generated spec files")
	planCmd.Flags().StringVar(&flags.Manifest, "manifest", "", "Path to the generator manifest (default <specs-path>/manifest.json)")
	planCmd.Flags().BoolVarP(&flags.ShowCases, "cases", "c", false, "List the cases inside each suite")
	rootCmd.AddCommand(planCmd)

	// Prepare command
	prepareCmd := &cobra.Command{
		Use:     "prepare",
		Short:   "Provision per-worker test databases",
		Long:    "Create the missing per-worker test databases and run the configured seed command against each",
		RunE:    c.Prepare.Execute,
		PreRunE: applyFlags,
	}
	prepareCmd.Flags().IntVarP(&flags.MaxWorkers, "workers", "w", 0, "Number of worker databases to prepare")
	prepareCmd.Flags().BoolVar(&flags.SkipSeed, "skip-seed", false, "Create missing databases but skip the seed command")
	rootCmd.AddCommand(prepareCmd)

	// Fails command
	failsCmd := &cobra.Command{
		Use:   "fails",
		Short: "View failed suites interactively",
		Long:  "Display failed suites from the last run in an interactive viewer",
		RunE:  c.Fails.Execute,
	}
	rootCmd.AddCommand(failsCmd)
}
