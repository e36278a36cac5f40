package domain

// Suite is a named group of test cases that executes as one runner process
type Suite struct {
	Name          string     // Unique suite name within a plan
	Cases         []TestCase // Cases in scheduling order
	Workers       int        // In-runner worker count, always >= 1
	SharedContext bool       // Cases share browser state, forces Workers == 1
}

// ExecutionPlan is the full set of suites produced by scheduling a run
type ExecutionPlan struct {
	Mode   string  // Scheduling mode the plan was built with
	Suites []Suite // Suites in execution order
}

// TotalCases counts the cases across all suites.
func (p ExecutionPlan) TotalCases() int {
	total := 0
	for _, s := range p.Suites {
		total += len(s.Cases)
	}
	return total
}

// MaxWorkers reports the highest in-runner worker count any suite asks for.
// Provisioning sizes per-worker resources from it.
func (p ExecutionPlan) MaxWorkers() int {
	max := 1
	for _, s := range p.Suites {
		if s.Workers > max {
			max = s.Workers
		}
	}
	return max
}
