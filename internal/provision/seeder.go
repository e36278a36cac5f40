package provision

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"wtr/internal/config"
	"wtr/internal/domain"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// Seeder implements Preparer: it ensures per-worker databases exist and runs
// the configured seed command once against each of them.
type Seeder struct {
	config    *config.Config
	databases *DatabaseManager
}

// NewSeeder creates a new Seeder
func NewSeeder(cfg *config.Config, databases *DatabaseManager) *Seeder {
	return &Seeder{
		config:    cfg,
		databases: databases,
	}
}

// Prepare provisions and seeds one database per runner worker in parallel
func (s *Seeder) Prepare(ctx context.Context, workerCount int) error {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║                 Preparing Test Databases                   ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	workers, err := s.databases.EnsureDatabases(workerCount)
	if err != nil {
		return fmt.Errorf("failed to prepare databases: %w", err)
	}
	if len(workers) == 0 {
		return fmt.Errorf("no test databases available")
	}

	if s.config.Flags.SkipSeed {
		color.Green("✓ %d test database(s) ready (seeding skipped)\n", len(workers))
		return nil
	}

	seedCmd := s.config.SeedCommand()
	if len(seedCmd) == 0 {
		color.Green("✓ %d test database(s) ready, no seed command configured\n", len(workers))
		return nil
	}

	color.White("Databases: %d | Seed command: %s\n\n", len(workers), strings.Join(seedCmd, " "))

	var progressMu sync.Mutex
	completedCount := 0

	bar := progressbar.NewOptions(len(workers),
		progressbar.OptionSetDescription(
			color.CyanString("Seeding: ")+
				color.GreenString("[completed: 0/%d]", len(workers)),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	var wg sync.WaitGroup
	results := make(chan domain.PrepareResult, len(workers))
	startTime := time.Now()

	for _, workerID := range workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			result := s.seedWorker(ctx, id, seedCmd)

			progressMu.Lock()
			completedCount++
			current := completedCount
			progressMu.Unlock()

			bar.Set(current)
			bar.Describe(color.CyanString("Seeding: ") +
				color.GreenString("[completed: %d/%d]", current, len(workers)))

			results <- result
		}(workerID)
	}

	// Close results channel when all workers are done
	go func() {
		wg.Wait()
		close(results)
	}()

	var failed []domain.PrepareResult
	for result := range results {
		if !result.Success {
			failed = append(failed, result)
		}
	}

	bar.Finish()

	duration := time.Since(startTime)

	fmt.Print("\n")
	if len(failed) == 0 {
		color.Green("✓ Seeded %d test database(s)\n", len(workers))
		color.White("Duration: %s\n", duration.Round(time.Millisecond))
		return nil
	}

	color.Red("✗ Seeding failed for %d database(s)\n", len(failed))
	for _, result := range failed {
		color.Red("  Worker %d (DB: %s): %v\n", result.WorkerID, result.Database, result.Error)
	}
	return fmt.Errorf("seeding failed for %d database(s)", len(failed))
}

// seedWorker runs the seed command against one worker database with streaming capture
func (s *Seeder) seedWorker(ctx context.Context, workerID int, seedCmd []string) domain.PrepareResult {
	database := s.config.GetDatabaseName(workerID)

	projectAbsPath, err := filepath.Abs(s.config.ProjectPath)
	if err != nil {
		return domain.PrepareResult{
			WorkerID: workerID,
			Database: database,
			Error:    fmt.Errorf("failed to get absolute project path: %w", err),
		}
	}

	cmd := exec.CommandContext(ctx, seedCmd[0], seedCmd[1:]...)
	cmd.Dir = projectAbsPath
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("DB_DATABASE=%s", database))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return domain.PrepareResult{
			WorkerID: workerID,
			Database: database,
			Error:    fmt.Errorf("failed to create stdout pipe: %w", err),
		}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return domain.PrepareResult{
			WorkerID: workerID,
			Database: database,
			Error:    fmt.Errorf("failed to create stderr pipe: %w", err),
		}
	}

	if err := cmd.Start(); err != nil {
		return domain.PrepareResult{
			WorkerID: workerID,
			Database: database,
			Error:    fmt.Errorf("failed to start seed command: %w", err),
		}
	}

	var outputMu sync.Mutex
	var outputBuilder strings.Builder
	var scanWg sync.WaitGroup

	collect := func(r io.Reader) {
		defer scanWg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			outputMu.Lock()
			outputBuilder.WriteString(scanner.Text())
			outputBuilder.WriteString("\n")
			outputMu.Unlock()
		}
	}

	scanWg.Add(2)
	go collect(stdout)
	go collect(stderr)

	// Drain both pipes before reaping the process
	scanWg.Wait()
	err = cmd.Wait()

	return domain.PrepareResult{
		WorkerID: workerID,
		Database: database,
		Success:  err == nil,
		Output:   outputBuilder.String(),
		Error:    err,
	}
}
