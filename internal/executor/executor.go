package executor

import (
	"context"
	"time"

	"wtr/internal/domain"
)

// killedExitCode marks a process that never exited on its own.
const killedExitCode = -1

// Spec describes one suite process to run
type Spec struct {
	SuiteName string        // Suite the artifact belongs to
	Code      string        // Runner-native source to materialize
	Workers   int           // In-runner worker count
	Timeout   time.Duration // Wall clock limit, 0 means no limit
	Env       []string      // Extra KEY=VALUE pairs for the runner process
	Chains    ChainIndex    // Fallback chains for the suite's steps
}

// Executor runs one suite and reports the outcome. The error return is
// reserved for failures before the process starts; everything after start
// is reported through the result.
type Executor interface {
	Run(ctx context.Context, spec Spec) (domain.ExecutionResult, error)
}
