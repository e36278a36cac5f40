package scheduler

import (
	"testing"

	"wtr/internal/domain"
)

func caseNames(s domain.Suite) []string {
	names := make([]string, len(s.Cases))
	for i, c := range s.Cases {
		names[i] = c.Name
	}
	return names
}

func TestSchedule_Sequential(t *testing.T) {
	s := NewPolicyScheduler(8)
	cases := []domain.TestCase{
		{Name: "login", Category: domain.CategoryFunctional, Route: "/login"},
		{Name: "health", Category: domain.CategoryApi},
		{Name: "home", Category: domain.CategoryVisual, Route: "/"},
	}

	plan, err := s.Schedule(cases, Policy{Mode: ModeSequential})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Suites) != 1 {
		t.Fatalf("expected 1 suite, got %d", len(plan.Suites))
	}
	suite := plan.Suites[0]
	if suite.Name != "all" {
		t.Errorf("expected suite name all, got %q", suite.Name)
	}
	if suite.Workers != 1 {
		t.Errorf("expected 1 worker, got %d", suite.Workers)
	}
	if len(suite.Cases) != 3 {
		t.Errorf("expected 3 cases, got %d", len(suite.Cases))
	}
	if err := ValidatePlan(plan, cases); err != nil {
		t.Errorf("expected valid plan, got %v", err)
	}
}

func TestSchedule_Parallel(t *testing.T) {
	tests := []struct {
		name            string
		caseCount       int
		maxWorkers      int
		expectedWorkers int
	}{
		{name: "workers capped by case count", caseCount: 2, maxWorkers: 8, expectedWorkers: 2},
		{name: "workers capped by max", caseCount: 10, maxWorkers: 4, expectedWorkers: 4},
		{name: "single case runs one worker", caseCount: 1, maxWorkers: 8, expectedWorkers: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cases []domain.TestCase
			for i := 0; i < tt.caseCount; i++ {
				cases = append(cases, domain.TestCase{Name: string(rune('a' + i))})
			}

			plan, err := NewPolicyScheduler(tt.maxWorkers).Schedule(cases, Policy{Mode: ModeParallel})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(plan.Suites) != 1 {
				t.Fatalf("expected 1 suite, got %d", len(plan.Suites))
			}
			if plan.Suites[0].Workers != tt.expectedWorkers {
				t.Errorf("expected %d workers, got %d", tt.expectedWorkers, plan.Suites[0].Workers)
			}
		})
	}
}

func TestSchedule_Smart(t *testing.T) {
	s := NewPolicyScheduler(4)
	cases := []domain.TestCase{
		{Name: "home-loads", Category: domain.CategoryFunctional, Route: "/"},
		{Name: "api-health", Category: domain.CategoryApi},
		{Name: "products-list", Category: domain.CategoryFunctional, Route: "/products"},
		{Name: "home-visual", Category: domain.CategoryVisual, Route: "/"},
	}

	plan, err := s.Schedule(cases, Policy{Mode: ModeSmart})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Suites) != 3 {
		t.Fatalf("expected 3 suites, got %d: %+v", len(plan.Suites), plan.Suites)
	}

	api := plan.Suites[0]
	if api.Name != "api-tests" {
		t.Errorf("expected api-tests first, got %q", api.Name)
	}
	if len(api.Cases) != 1 || api.Cases[0].Name != "api-health" {
		t.Errorf("expected api-health in api-tests, got %v", caseNames(api))
	}
	if api.Workers != 1 {
		t.Errorf("expected 1 worker for a single api case, got %d", api.Workers)
	}

	home := plan.Suites[1]
	if home.Name != "ui-root" {
		t.Errorf("expected ui-root, got %q", home.Name)
	}
	if len(home.Cases) != 2 {
		t.Errorf("expected 2 cases on the root route, got %v", caseNames(home))
	}
	if home.Workers != 1 {
		t.Errorf("route suites must run sequentially, got %d workers", home.Workers)
	}

	products := plan.Suites[2]
	if products.Name != "ui-products" {
		t.Errorf("expected ui-products, got %q", products.Name)
	}
	if len(products.Cases) != 1 || products.Cases[0].Name != "products-list" {
		t.Errorf("expected products-list, got %v", caseNames(products))
	}

	if err := ValidatePlan(plan, cases); err != nil {
		t.Errorf("expected valid plan, got %v", err)
	}
}

func TestSchedule_SmartApiWorkerCap(t *testing.T) {
	s := NewPolicyScheduler(3)
	var cases []domain.TestCase
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		cases = append(cases, domain.TestCase{Name: name, Category: domain.CategoryApi})
	}

	plan, err := s.Schedule(cases, Policy{Mode: ModeSmart})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Suites) != 1 {
		t.Fatalf("expected 1 suite, got %d", len(plan.Suites))
	}
	if plan.Suites[0].Workers != 3 {
		t.Errorf("expected workers capped at 3, got %d", plan.Suites[0].Workers)
	}
}

func TestSchedule_SmartRouteNameCollision(t *testing.T) {
	s := NewPolicyScheduler(4)
	cases := []domain.TestCase{
		{Name: "one", Category: domain.CategoryFunctional, Route: "/a b"},
		{Name: "two", Category: domain.CategoryFunctional, Route: "/a-b"},
	}

	plan, err := s.Schedule(cases, Policy{Mode: ModeSmart})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Suites) != 2 {
		t.Fatalf("expected 2 suites, got %d", len(plan.Suites))
	}
	if plan.Suites[0].Name != "ui-a-b" || plan.Suites[1].Name != "ui-a-b-2" {
		t.Errorf("expected collision suffix, got %q and %q", plan.Suites[0].Name, plan.Suites[1].Name)
	}
}

func TestSchedule_ExplicitAssignments(t *testing.T) {
	s := NewPolicyScheduler(8)
	cases := []domain.TestCase{
		{Name: "checkout-flow"},
		{Name: "cart-add"},
		{Name: "drifter"},
	}
	policy := Policy{
		Mode: ModeParallel, // Assignments win over the global mode
		Assignments: map[string]string{
			"checkout-flow": "checkout",
			"cart-add":      "checkout",
		},
		Suites: map[string]SuiteOverride{
			"checkout": {Mode: ModeParallel, Workers: 2},
		},
	}

	plan, err := s.Schedule(cases, policy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Mode != "explicit" {
		t.Errorf("expected explicit mode, got %q", plan.Mode)
	}
	if len(plan.Suites) != 2 {
		t.Fatalf("expected 2 suites, got %d", len(plan.Suites))
	}

	checkout := plan.Suites[0]
	if checkout.Name != "checkout" || len(checkout.Cases) != 2 {
		t.Errorf("expected checkout with 2 cases, got %q with %v", checkout.Name, caseNames(checkout))
	}
	if checkout.Workers != 2 {
		t.Errorf("expected override workers 2, got %d", checkout.Workers)
	}

	rest := plan.Suites[1]
	if rest.Name != "unassigned" {
		t.Errorf("expected unassigned catch-all, got %q", rest.Name)
	}
	if rest.Workers != 1 {
		t.Errorf("expected 1 worker for unassigned, got %d", rest.Workers)
	}
	if err := ValidatePlan(plan, cases); err != nil {
		t.Errorf("expected valid plan, got %v", err)
	}
}

func TestSchedule_SharedContextForcesOneWorker(t *testing.T) {
	s := NewPolicyScheduler(8)
	cases := []domain.TestCase{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	policy := Policy{
		Assignments: map[string]string{"a": "stateful", "b": "stateful", "c": "stateful"},
		Suites: map[string]SuiteOverride{
			"stateful": {Mode: ModeParallel, Workers: 4, SharedContext: true},
		},
	}

	plan, err := s.Schedule(cases, policy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Suites) != 1 {
		t.Fatalf("expected 1 suite, got %d", len(plan.Suites))
	}
	suite := plan.Suites[0]
	if !suite.SharedContext {
		t.Error("expected shared context to be kept")
	}
	if suite.Workers != 1 {
		t.Errorf("shared context must force 1 worker, got %d", suite.Workers)
	}
}

func TestSchedule_OverrideInSmartMode(t *testing.T) {
	s := NewPolicyScheduler(8)
	cases := []domain.TestCase{
		{Name: "a", Category: domain.CategoryApi},
		{Name: "b", Category: domain.CategoryApi},
		{Name: "c", Category: domain.CategoryApi},
	}
	policy := Policy{
		Mode:   ModeSmart,
		Suites: map[string]SuiteOverride{"api-tests": {Mode: ModeSequential}},
	}

	plan, err := s.Schedule(cases, policy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Suites[0].Workers != 1 {
		t.Errorf("expected sequential override to pin workers to 1, got %d", plan.Suites[0].Workers)
	}
}

func TestSchedule_OverridesIgnoredInSequentialAndParallel(t *testing.T) {
	tests := []struct {
		name            string
		mode            Mode
		expectedWorkers int
	}{
		{name: "sequential keeps one worker", mode: ModeSequential, expectedWorkers: 1},
		{name: "parallel keeps the computed count", mode: ModeParallel, expectedWorkers: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases := []domain.TestCase{
				{Name: "a", Category: domain.CategoryFunctional, Route: "/"},
				{Name: "b", Category: domain.CategoryFunctional, Route: "/"},
			}
			policy := Policy{
				Mode:   tt.mode,
				Suites: map[string]SuiteOverride{"all": {Mode: ModeParallel, Workers: 4}},
			}

			plan, err := NewPolicyScheduler(8).Schedule(cases, policy)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(plan.Suites) != 1 {
				t.Fatalf("expected 1 suite, got %d", len(plan.Suites))
			}
			if plan.Suites[0].Workers != tt.expectedWorkers {
				t.Errorf("expected %d workers, got %d", tt.expectedWorkers, plan.Suites[0].Workers)
			}
		})
	}
}

func TestSchedule_EmptyInput(t *testing.T) {
	s := NewPolicyScheduler(4)
	for _, mode := range []Mode{ModeSequential, ModeParallel, ModeSmart} {
		plan, err := s.Schedule(nil, Policy{Mode: mode})
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", mode, err)
		}
		if len(plan.Suites) != 0 {
			t.Errorf("expected no suites for empty input in %s mode, got %d", mode, len(plan.Suites))
		}
	}
}

func TestSchedule_UnknownMode(t *testing.T) {
	s := NewPolicyScheduler(4)
	_, err := s.Schedule([]domain.TestCase{{Name: "a"}}, Policy{Mode: "round-robin"})
	if err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestSchedule_WorkerOverrideClampedUpward(t *testing.T) {
	s := NewPolicyScheduler(8)
	cases := []domain.TestCase{{Name: "a"}, {Name: "b"}}
	policy := Policy{
		Assignments: map[string]string{"a": "grp", "b": "grp"},
		Suites:      map[string]SuiteOverride{"grp": {Mode: ModeParallel}},
	}

	plan, err := s.Schedule(cases, policy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Suites[0].Workers != 1 {
		t.Errorf("expected zero-worker override clamped to 1, got %d", plan.Suites[0].Workers)
	}
}
