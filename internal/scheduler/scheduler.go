package scheduler

import (
	"fmt"
	"regexp"
	"strings"

	"wtr/internal/domain"
)

// Suite name for runs that execute everything as one group.
const allSuiteName = "all"

// Suite name for cases an explicit policy leaves unassigned.
const unassignedSuiteName = "unassigned"

// Suite name smart mode gives the api group.
const apiSuiteName = "api-tests"

// Scheduler turns discovered cases into an execution plan
type Scheduler interface {
	Schedule(cases []domain.TestCase, policy Policy) (domain.ExecutionPlan, error)
}

// PolicyScheduler groups cases according to a scheduling policy
type PolicyScheduler struct {
	maxWorkers int
}

// NewPolicyScheduler creates a new PolicyScheduler. maxWorkers caps the
// in-runner worker count of any parallel suite.
func NewPolicyScheduler(maxWorkers int) *PolicyScheduler {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &PolicyScheduler{maxWorkers: maxWorkers}
}

// Schedule builds the execution plan for the given cases. Explicit
// assignments take precedence over the global mode whenever the policy
// carries any. Malformed cases never fail scheduling, only an unknown
// mode does.
func (s *PolicyScheduler) Schedule(cases []domain.TestCase, policy Policy) (domain.ExecutionPlan, error) {
	grouping, err := s.groupingFor(policy)
	if err != nil {
		return domain.ExecutionPlan{}, err
	}

	mode := planMode(policy)
	suites := grouping.partition(cases)
	// Suite overrides belong to smart and explicit grouping only; sequential
	// and parallel runs keep the worker counts their mode defines.
	if mode == ModeSmart || mode == ModeExplicit {
		suites = applyOverrides(suites, policy.Suites)
	}
	plan := domain.ExecutionPlan{
		Mode:   string(mode),
		Suites: normalize(suites),
	}
	return plan, nil
}

func planMode(policy Policy) Mode {
	if len(policy.Assignments) > 0 {
		return ModeExplicit
	}
	if policy.Mode == "" {
		return ModeSmart
	}
	return policy.Mode
}

func (s *PolicyScheduler) groupingFor(policy Policy) (grouping, error) {
	if len(policy.Assignments) > 0 {
		return explicitGrouping{assignments: policy.Assignments}, nil
	}
	switch policy.Mode {
	case ModeSequential:
		return sequentialGrouping{}, nil
	case ModeParallel:
		return parallelGrouping{maxWorkers: s.maxWorkers}, nil
	case ModeSmart, "":
		return smartGrouping{maxWorkers: s.maxWorkers}, nil
	default:
		return nil, fmt.Errorf("unknown scheduling mode %q", policy.Mode)
	}
}

// grouping partitions cases into suites for one scheduling mode
type grouping interface {
	partition(cases []domain.TestCase) []domain.Suite
}

type sequentialGrouping struct{}

func (sequentialGrouping) partition(cases []domain.TestCase) []domain.Suite {
	if len(cases) == 0 {
		return nil
	}
	return []domain.Suite{{Name: allSuiteName, Cases: cases, Workers: 1}}
}

type parallelGrouping struct {
	maxWorkers int
}

func (g parallelGrouping) partition(cases []domain.TestCase) []domain.Suite {
	if len(cases) == 0 {
		return nil
	}
	return []domain.Suite{{Name: allSuiteName, Cases: cases, Workers: min(len(cases), g.maxWorkers)}}
}

// smartGrouping puts api cases in one parallel suite and groups ui cases by
// route into sequential suites, so cases mutating the same pages never race.
type smartGrouping struct {
	maxWorkers int
}

func (g smartGrouping) partition(cases []domain.TestCase) []domain.Suite {
	var apiCases []domain.TestCase
	var routeOrder []string
	routeCases := make(map[string][]domain.TestCase)

	for _, c := range cases {
		if c.Category == domain.CategoryApi {
			apiCases = append(apiCases, c)
			continue
		}
		if _, seen := routeCases[c.Route]; !seen {
			routeOrder = append(routeOrder, c.Route)
		}
		routeCases[c.Route] = append(routeCases[c.Route], c)
	}

	var suites []domain.Suite
	usedNames := map[string]bool{}
	if len(apiCases) > 0 {
		suites = append(suites, domain.Suite{
			Name:    apiSuiteName,
			Cases:   apiCases,
			Workers: min(len(apiCases), g.maxWorkers),
		})
		usedNames[apiSuiteName] = true
	}
	for _, route := range routeOrder {
		name := uniqueName(routeSuiteName(route), usedNames)
		suites = append(suites, domain.Suite{Name: name, Cases: routeCases[route], Workers: 1})
	}
	return suites
}

// explicitGrouping follows per-case suite assignments
type explicitGrouping struct {
	assignments map[string]string
}

func (g explicitGrouping) partition(cases []domain.TestCase) []domain.Suite {
	var order []string
	grouped := make(map[string][]domain.TestCase)

	for _, c := range cases {
		name := g.assignments[c.Name]
		if name == "" {
			name = unassignedSuiteName
		}
		if _, seen := grouped[name]; !seen {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], c)
	}

	var suites []domain.Suite
	for _, name := range order {
		suites = append(suites, domain.Suite{Name: name, Cases: grouped[name], Workers: 1})
	}
	return suites
}

// applyOverrides adjusts suites the policy names. Suites without an
// override keep what their grouping decided.
func applyOverrides(suites []domain.Suite, overrides map[string]SuiteOverride) []domain.Suite {
	if len(overrides) == 0 {
		return suites
	}
	for i, suite := range suites {
		ov, ok := overrides[suite.Name]
		if !ok {
			continue
		}
		switch ov.Mode {
		case ModeSequential:
			suites[i].Workers = 1
		case ModeParallel:
			suites[i].Workers = ov.Workers
		default:
			if ov.Workers > 0 {
				suites[i].Workers = ov.Workers
			}
		}
		suites[i].SharedContext = ov.SharedContext
	}
	return suites
}

// normalize enforces the plan invariants: no empty suites, workers at
// least one, shared context pinned to a single worker.
func normalize(suites []domain.Suite) []domain.Suite {
	var out []domain.Suite
	for _, s := range suites {
		if len(s.Cases) == 0 {
			continue
		}
		if s.Workers < 1 {
			s.Workers = 1
		}
		if s.SharedContext {
			s.Workers = 1
		}
		out = append(out, s)
	}
	return out
}

var routeNamePattern = regexp.MustCompile(`[^a-z0-9]+`)

// routeSuiteName derives a stable suite name from a page route.
func routeSuiteName(route string) string {
	cleaned := routeNamePattern.ReplaceAllString(strings.ToLower(route), "-")
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "root"
	}
	return "ui-" + cleaned
}

// uniqueName suffixes a name until it is unused and marks it used.
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s-%d", name, i)
	}
	used[candidate] = true
	return candidate
}
