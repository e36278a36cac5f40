package executor

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"wtr/internal/config"
	"wtr/internal/domain"
)

// ProcessExecutor materializes suite artifacts and runs them through the
// external test runner
type ProcessExecutor struct {
	config *config.Config
}

// NewProcessExecutor creates a new ProcessExecutor
func NewProcessExecutor(cfg *config.Config) *ProcessExecutor {
	return &ProcessExecutor{config: cfg}
}

// Run materializes the suite artifact in a fresh working directory and
// executes the runner against it. The runner and everything it spawns run
// in their own process group so a timeout or cancellation kills the whole
// tree. Captured output is returned even when the process is killed.
func (e *ProcessExecutor) Run(ctx context.Context, spec Spec) (domain.ExecutionResult, error) {
	result := domain.ExecutionResult{SuiteName: spec.SuiteName}

	if spec.SuiteName == "" {
		return result, fmt.Errorf("suite name is required")
	}
	if strings.TrimSpace(spec.Code) == "" {
		return result, fmt.Errorf("suite %s has no code to run", spec.SuiteName)
	}
	if spec.Workers < 1 {
		spec.Workers = 1
	}

	workDir, artifact, err := e.materialize(spec)
	if err != nil {
		return result, err
	}
	defer os.RemoveAll(workDir)

	runner := e.config.RunnerCommand()
	args := append([]string{}, runner[1:]...)
	args = append(args, artifact)
	if e.config.Flags.Verbose && e.config.VerboseFlag != "" {
		args = append(args, e.config.VerboseFlag)
	}
	if spec.Workers > 1 && e.config.ParallelFlag != "" {
		args = append(args, e.config.ParallelFlag, strconv.Itoa(spec.Workers))
	}

	cmd := exec.Command(runner[0], args...)
	cmd.Dir = e.config.ProjectPath

	// Set environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, spec.Env...)
	cmd.Env = append(cmd.Env,
		fmt.Sprintf("WTR_SUITE=%s", spec.SuiteName),
		fmt.Sprintf("WTR_WORKERS=%d", spec.Workers),
	)
	if len(spec.Chains) > 0 {
		cmd.Env = append(cmd.Env, fmt.Sprintf("WTR_CHAINS=%s", filepath.Join(workDir, chainsFileName)))
	}

	configureProcAttr(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return result, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return result, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	runCtx := ctx
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	if err := cmd.Start(); err != nil {
		return result, fmt.Errorf("failed to start test runner: %w", err)
	}

	var outBuilder, errBuilder strings.Builder
	var scanWg sync.WaitGroup
	scanWg.Add(2)
	go capture(stdout, &outBuilder, &scanWg)
	go capture(stderr, &errBuilder, &scanWg)

	// Drain both pipes before reaping the process.
	waitErr := make(chan error, 1)
	go func() {
		scanWg.Wait()
		waitErr <- cmd.Wait()
	}()

	select {
	case err := <-waitErr:
		result.DurationSeconds = time.Since(startTime).Seconds()
		result.Stdout = outBuilder.String()
		result.Stderr = errBuilder.String()
		result.ExitCode = cmd.ProcessState.ExitCode()
		result.Success = err == nil && result.ExitCode == 0
		return result, nil

	case <-runCtx.Done():
		// Killing the group closes the pipes, which unblocks the wait
		// goroutine above.
		killProcessGroup(cmd.Process.Pid)
		<-waitErr

		result.DurationSeconds = time.Since(startTime).Seconds()
		result.Stdout = outBuilder.String()
		result.Stderr = errBuilder.String()
		result.ExitCode = killedExitCode
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			result.TimedOut = true
			result.Stderr += fmt.Sprintf("suite %s timed out after %s\n", spec.SuiteName, spec.Timeout)
		} else {
			result.Canceled = true
		}
		return result, nil
	}
}

// capture drains one output stream line by line. The buffer is grown past
// the scanner default so long assertion diffs survive intact.
func capture(r io.Reader, out *strings.Builder, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		out.WriteString(scanner.Text())
		out.WriteString("\n")
	}
}

const chainsFileName = "chains.json"

// materialize writes the suite artifact, and its selector chains when
// present, into a directory no other execution shares.
func (e *ProcessExecutor) materialize(spec Spec) (string, string, error) {
	workDir, err := os.MkdirTemp("", fmt.Sprintf("wtr-%s-*", sanitizeName(spec.SuiteName)))
	if err != nil {
		return "", "", fmt.Errorf("failed to create suite work dir: %w", err)
	}

	artifact := filepath.Join(workDir, sanitizeName(spec.SuiteName)+".spec.ts")
	if err := os.WriteFile(artifact, []byte(spec.Code), 0644); err != nil {
		os.RemoveAll(workDir)
		return "", "", fmt.Errorf("failed to write suite artifact: %w", err)
	}

	if len(spec.Chains) > 0 {
		data, err := json.MarshalIndent(spec.Chains, "", "  ")
		if err != nil {
			os.RemoveAll(workDir)
			return "", "", fmt.Errorf("failed to encode selector chains: %w", err)
		}
		if err := os.WriteFile(filepath.Join(workDir, chainsFileName), data, 0644); err != nil {
			os.RemoveAll(workDir)
			return "", "", fmt.Errorf("failed to write selector chains: %w", err)
		}
	}

	return workDir, artifact, nil
}

var unsafeNamePattern = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeName makes a suite name safe to use in file names.
func sanitizeName(name string) string {
	cleaned := unsafeNamePattern.ReplaceAllString(name, "-")
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		return "suite"
	}
	return cleaned
}
