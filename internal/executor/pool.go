package executor

import (
	"context"
	"sync"
	"time"

	"wtr/internal/config"
	"wtr/internal/domain"
	"wtr/internal/ui"
)

// Pool runs independent suites as concurrent runner processes
type Pool struct {
	config   *config.Config
	executor Executor
	progress *ui.ProgressBar
}

// NewPool creates a new Pool
func NewPool(cfg *config.Config, exec Executor) *Pool {
	return &Pool{config: cfg, executor: exec}
}

// SetProgress sets the progress bar for the pool
func (p *Pool) SetProgress(progress *ui.ProgressBar) {
	p.progress = progress
}

// Execute runs all suites (no fail-fast).
func (p *Pool) Execute(ctx context.Context, specs []Spec) ([]domain.ExecutionResult, time.Duration, error) {
	return p.ExecuteWithOptions(ctx, specs, false)
}

// ExecuteWithOptions runs suites with optional fail-fast (stop on first failing suite).
func (p *Pool) ExecuteWithOptions(ctx context.Context, specs []Spec, failFast bool) ([]domain.ExecutionResult, time.Duration, error) {
	if len(specs) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return p.executeAll(ctx, specs)
	}
	return p.executeFailFast(ctx, specs)
}

// executeAll runs every suite to completion.
func (p *Pool) executeAll(ctx context.Context, specs []Spec) ([]domain.ExecutionResult, time.Duration, error) {
	queue := make(chan Spec, len(specs))
	results := make(chan domain.ExecutionResult, len(specs))
	for _, spec := range specs {
		queue <- spec
	}
	close(queue)

	var mu sync.Mutex
	var completed, passed, failed int
	startTime := time.Now()
	procs := p.config.SuiteProcs
	if procs <= 0 {
		procs = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < procs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for spec := range queue {
				result := p.runOne(ctx, spec)
				results <- result
				mu.Lock()
				completed++
				if result.Success {
					passed++
				} else {
					failed++
				}
				if p.progress != nil {
					p.progress.Update(completed, passed, failed)
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.ExecutionResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if p.progress != nil {
		p.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// executeFailFast runs suites and stops after the first failure. Canceling
// the shared context kills suites still in flight; their results stay in
// the output tagged as canceled, partial output intact.
func (p *Pool) executeFailFast(ctx context.Context, specs []Spec) ([]domain.ExecutionResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan Spec, 1)
	results := make(chan domain.ExecutionResult, len(specs))

	go func() {
		defer close(queue)
		for _, spec := range specs {
			select {
			case <-ctx.Done():
				return
			case queue <- spec:
			}
		}
	}()

	var mu sync.Mutex
	var completed, passed, failed int
	var seenFailure bool
	startTime := time.Now()
	procs := p.config.SuiteProcs
	if procs <= 0 {
		procs = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < procs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for spec := range queue {
				mu.Lock()
				skip := seenFailure
				mu.Unlock()
				if skip {
					continue
				}
				result := p.runOne(ctx, spec)
				mu.Lock()
				done := seenFailure
				mu.Unlock()
				if done {
					// The run already stopped; record the attempt as canceled.
					result.Canceled = true
					result.Success = false
					results <- result
					continue
				}
				results <- result
				mu.Lock()
				completed++
				if result.Success {
					passed++
				} else {
					failed++
				}
				if p.progress != nil {
					p.progress.Update(completed, passed, failed)
				}
				if !result.Success {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.ExecutionResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if p.progress != nil {
		p.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// runOne folds pre-start failures into a result so one broken suite never
// aborts the whole run.
func (p *Pool) runOne(ctx context.Context, spec Spec) domain.ExecutionResult {
	result, err := p.executor.Run(ctx, spec)
	if err != nil {
		result.SuiteName = spec.SuiteName
		result.Success = false
		result.ExitCode = killedExitCode
		if result.Stderr == "" {
			result.Stderr = err.Error()
		}
	}
	return result
}
