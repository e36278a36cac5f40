package domain

// ExecutionResult represents the outcome of running one suite process
type ExecutionResult struct {
	SuiteName       string  // Suite the process ran
	Success         bool    // Exit code was zero
	ExitCode        int     // Process exit code, -1 when killed before exiting
	Stdout          string  // Captured standard output, possibly partial
	Stderr          string  // Captured standard error, possibly partial
	TimedOut        bool    // Killed by the per-suite timeout
	Canceled        bool    // Killed by external cancellation
	DurationSeconds float64 // Wall-clock time of the attempt
}

// RunMeta contains metadata about a whole run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	Mode            string  `json:"mode"`
	TotalSuites     int     `json:"total_suites"`
	PassedSuites    int     `json:"passed_suites"`
	FailedSuites    int     `json:"failed_suites"`
	TimedOutSuites  int     `json:"timed_out_suites"`
	CanceledSuites  int     `json:"canceled_suites"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	HealedSelectors int     `json:"healed_selectors"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	SuiteProcs      int     `json:"suite_procs"`
	Timestamp       string  `json:"timestamp"`
}

// SuiteReport is the parsed, reportable outcome of one suite
type SuiteReport struct {
	Name            string        `json:"name"`
	Success         bool          `json:"success"`
	ExitCode        int           `json:"exit_code"`
	TimedOut        bool          `json:"timed_out,omitempty"`
	Canceled        bool          `json:"canceled,omitempty"`
	DurationSeconds float64       `json:"duration_seconds"`
	CasesPassed     int           `json:"cases_passed"`
	CasesFailed     int           `json:"cases_failed"`
	HealedSelectors []string      `json:"healed_selectors,omitempty"`
	Failures        []CaseFailure `json:"failures,omitempty"`
	Stdout          string        `json:"stdout,omitempty"`
	Stderr          string        `json:"stderr,omitempty"`
	Triaged         bool          `json:"triaged,omitempty"` // Track if suite failure is marked as triaged
}

// RunReport is the complete output structure handed to the reporting layer
type RunReport struct {
	Meta   RunMeta       `json:"meta"`
	Suites []SuiteReport `json:"suites"`
}

// FailedSuites returns the suites that did not pass.
func (r *RunReport) FailedSuites() []SuiteReport {
	var failed []SuiteReport
	for _, s := range r.Suites {
		if !s.Success {
			failed = append(failed, s)
		}
	}
	return failed
}
