package executor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"wtr/internal/config"
	"wtr/internal/domain"
)

// stubExecutor fakes suite runs and tracks concurrency. Stalled suites
// block until the run context is canceled, like a killed process.
type stubExecutor struct {
	mu         sync.Mutex
	running    int
	maxRunning int
	calls      int
	delay      time.Duration
	failing    map[string]bool
	stalled    map[string]bool
	stallBegan chan struct{}
	brokenSpec string
}

func (s *stubExecutor) Run(ctx context.Context, spec Spec) (domain.ExecutionResult, error) {
	s.mu.Lock()
	s.calls++
	s.running++
	if s.running > s.maxRunning {
		s.maxRunning = s.running
	}
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	canceled := false
	if s.stalled[spec.SuiteName] {
		if s.stallBegan != nil {
			close(s.stallBegan)
		}
		<-ctx.Done()
		canceled = true
	} else if s.stallBegan != nil {
		// Hold other suites until the stalled one is in flight.
		<-s.stallBegan
	}

	s.mu.Lock()
	s.running--
	s.mu.Unlock()

	if spec.SuiteName == s.brokenSpec {
		return domain.ExecutionResult{SuiteName: spec.SuiteName}, errors.New("runner refused to start")
	}
	if canceled {
		return domain.ExecutionResult{
			SuiteName: spec.SuiteName,
			ExitCode:  killedExitCode,
			Stdout:    "partial output",
			Canceled:  true,
		}, nil
	}
	return domain.ExecutionResult{
		SuiteName: spec.SuiteName,
		Success:   !s.failing[spec.SuiteName],
	}, nil
}

func poolConfig(procs int) *config.Config {
	cfg := config.New()
	cfg.SuiteProcs = procs
	return cfg
}

func specNames(names ...string) []Spec {
	specs := make([]Spec, len(names))
	for i, n := range names {
		specs[i] = Spec{SuiteName: n, Code: "x", Workers: 1}
	}
	return specs
}

func TestPool_Execute(t *testing.T) {
	stub := &stubExecutor{delay: 30 * time.Millisecond}
	pool := NewPool(poolConfig(2), stub)

	results, duration, err := pool.Execute(context.Background(), specNames("a", "b", "c", "d"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 4 {
		t.Errorf("expected 4 results, got %d", len(results))
	}
	if stub.maxRunning > 2 {
		t.Errorf("expected at most 2 concurrent suites, saw %d", stub.maxRunning)
	}
	if duration <= 0 {
		t.Errorf("expected a positive duration, got %s", duration)
	}

	seen := make(map[string]bool)
	for _, r := range results {
		seen[r.SuiteName] = true
		if !r.Success {
			t.Errorf("expected suite %s to pass", r.SuiteName)
		}
	}
	for _, name := range []string{"a", "b", "c", "d"} {
		if !seen[name] {
			t.Errorf("missing result for suite %s", name)
		}
	}
}

func TestPool_ExecuteEmpty(t *testing.T) {
	pool := NewPool(poolConfig(2), &stubExecutor{})
	results, duration, err := pool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil || duration != 0 {
		t.Errorf("expected empty run to be a no-op, got %v, %s", results, duration)
	}
}

func TestPool_FailFastStopsRemainingSuites(t *testing.T) {
	stub := &stubExecutor{failing: map[string]bool{"first": true}}
	pool := NewPool(poolConfig(1), stub)

	results, _, err := pool.ExecuteWithOptions(context.Background(), specNames("first", "second", "third"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected only the failing suite's result, got %d", len(results))
	}
	if results[0].SuiteName != "first" || results[0].Success {
		t.Errorf("expected first to fail, got %+v", results[0])
	}
	if stub.calls != 1 {
		t.Errorf("expected no further suites to run, got %d calls", stub.calls)
	}
}

func TestPool_FailFastKeepsCanceledResults(t *testing.T) {
	stub := &stubExecutor{
		failing:    map[string]bool{"first": true},
		stalled:    map[string]bool{"slow": true},
		stallBegan: make(chan struct{}),
	}
	pool := NewPool(poolConfig(2), stub)

	results, _, err := pool.ExecuteWithOptions(context.Background(), specNames("first", "slow", "third"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected the failing and the canceled suite, got %d results", len(results))
	}

	byName := make(map[string]domain.ExecutionResult)
	for _, r := range results {
		byName[r.SuiteName] = r
	}
	if _, ok := byName["third"]; ok {
		t.Error("expected third never to start, got a result for it")
	}
	if stub.calls != 2 {
		t.Errorf("expected only first and slow to run, got %d calls", stub.calls)
	}

	first, ok := byName["first"]
	if !ok {
		t.Fatal("missing result for suite first")
	}
	if first.Success || first.Canceled {
		t.Errorf("expected first to fail outright, got %+v", first)
	}

	slow, ok := byName["slow"]
	if !ok {
		t.Fatal("missing result for suite slow")
	}
	if !slow.Canceled {
		t.Error("expected slow to be marked canceled")
	}
	if slow.Success {
		t.Error("expected slow not to count as passed")
	}
	if slow.Stdout != "partial output" {
		t.Errorf("expected captured output to be kept, got %q", slow.Stdout)
	}
}

func TestPool_FoldsLaunchErrorsIntoResults(t *testing.T) {
	stub := &stubExecutor{brokenSpec: "broken"}
	pool := NewPool(poolConfig(1), stub)

	results, _, err := pool.Execute(context.Background(), specNames("broken", "fine"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	var broken *domain.ExecutionResult
	for i := range results {
		if results[i].SuiteName == "broken" {
			broken = &results[i]
		}
	}
	if broken == nil {
		t.Fatal("missing result for broken suite")
	}
	if broken.Success {
		t.Error("expected broken suite to fail")
	}
	if broken.ExitCode != killedExitCode {
		t.Errorf("expected sentinel exit code, got %d", broken.ExitCode)
	}
	if broken.Stderr != "runner refused to start" {
		t.Errorf("expected launch error in stderr, got %q", broken.Stderr)
	}
}
