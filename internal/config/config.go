package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	SpecsPath   string

	// Generated suite manifest
	ManifestFile string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Runner settings
	RunnerBin    string
	RunnerArgs   []string
	VerboseFlag  string
	ParallelFlag string

	// Execution settings
	MaxWorkers   int
	SuiteProcs   int
	SuiteTimeout time.Duration

	// Paths to ignore when scanning for generated specs
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Mode       string
	PolicyFile string
	MaxWorkers int
	SuiteProcs int
	Timeout    time.Duration
	NameFilter string
	SpecsPath  string
	Manifest   string
	Prepare    bool
	SkipSeed   bool
	FailFast   bool
	OpenFails  bool
	Verbose    bool
	ShowCases  bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		SpecsPath:      DefaultSpecsPath,
		ManifestFile:   DefaultManifestFile,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		RunnerBin:      DefaultRunnerBin,
		VerboseFlag:    DefaultVerboseFlag,
		ParallelFlag:   DefaultParallelFlag,
		MaxWorkers:     DefaultMaxWorkers,
		SuiteProcs:     DefaultSuiteProcs,
		SuiteTimeout:   DefaultSuiteTimeout,
		Flags:          Flags{MaxWorkers: DefaultMaxWorkers, SuiteProcs: DefaultSuiteProcs, Timeout: DefaultSuiteTimeout},
	}
	cfg.RunnerArgs = make([]string, len(DefaultRunnerArgs))
	copy(cfg.RunnerArgs, DefaultRunnerArgs)
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	// Apply flag overrides
	if flags.MaxWorkers > 0 {
		cfg.MaxWorkers = flags.MaxWorkers
	}
	if flags.SuiteProcs > 0 {
		cfg.SuiteProcs = flags.SuiteProcs
	}
	if flags.Timeout > 0 {
		cfg.SuiteTimeout = flags.Timeout
	}

	return cfg
}

// GetSpecsPath returns the generated specs directory, using flag if provided
func (c *Config) GetSpecsPath() string {
	if c.Flags.SpecsPath != "" {
		if filepath.IsAbs(c.Flags.SpecsPath) {
			return c.Flags.SpecsPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.SpecsPath)
	}

	return filepath.Join(c.ProjectPath, c.SpecsPath)
}

// GetManifestPath returns the path to the generated suite manifest, using flag if provided
func (c *Config) GetManifestPath() string {
	if c.Flags.Manifest != "" {
		if filepath.IsAbs(c.Flags.Manifest) {
			return c.Flags.Manifest
		}
		return filepath.Join(c.ProjectPath, c.Flags.Manifest)
	}

	return filepath.Join(c.GetSpecsPath(), c.ManifestFile)
}

// GetOutputPath returns the full path to the run report JSON (under project so run and fails use the same file).
// Resolves to an absolute path so run and fails always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// RunnerCommand returns the runner binary and its base arguments.
// WTR_RUNNER overrides the default, split on whitespace.
func (c *Config) RunnerCommand() []string {
	if raw := os.Getenv("WTR_RUNNER"); raw != "" {
		if fields := strings.Fields(raw); len(fields) > 0 {
			return fields
		}
	}
	return append([]string{c.RunnerBin}, c.RunnerArgs...)
}

// SeedCommand returns the per-worker database seed command, split on
// whitespace. Empty when DB_SEED_CMD is unset, meaning no seeding.
func (c *Config) SeedCommand() []string {
	raw := os.Getenv("DB_SEED_CMD")
	if raw == "" {
		return nil
	}
	return strings.Fields(raw)
}

// GetDatabaseName returns the database name for a worker
func (c *Config) GetDatabaseName(workerID int) string {
	prefix := os.Getenv("DB_DATABASE_PREFIX")
	if prefix == "" {
		prefix = "testing"
	}
	return fmt.Sprintf("%s_%d", prefix, workerID)
}
