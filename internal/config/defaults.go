package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSpecsPath is the default generated specs directory
	DefaultSpecsPath = "tests/generated"
	// DefaultManifestFile is the default manifest file name inside the specs directory
	DefaultManifestFile = "manifest.json"
	// DefaultOutputJSONFile is the default run report file name
	DefaultOutputJSONFile = "run-report.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "reports"
	// DefaultRunnerBin is the default test runner binary
	DefaultRunnerBin = "npx"
	// DefaultVerboseFlag is appended to the runner command in verbose runs
	DefaultVerboseFlag = "--reporter=list"
	// DefaultParallelFlag passes the in-runner worker count
	DefaultParallelFlag = "--workers"
	// DefaultMaxWorkers caps in-runner workers for parallel suites
	DefaultMaxWorkers = 4
	// DefaultSuiteProcs is the default number of concurrent suite processes
	DefaultSuiteProcs = 2
	// DefaultSuiteTimeout is the per-suite wall clock limit
	DefaultSuiteTimeout = 10 * time.Minute
)

// DefaultRunnerArgs are the default test runner arguments before the artifact path
var DefaultRunnerArgs = []string{"playwright", "test"}

// DefaultPathsToIgnore are the default directories to ignore when scanning for generated specs
var DefaultPathsToIgnore = []string{
	"node_modules",
	"reports",
	"playwright-report",
	"test-results",
}
