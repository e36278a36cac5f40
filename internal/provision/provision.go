package provision

import "context"

// Preparer provisions per-worker test databases before a run
type Preparer interface {
	Prepare(ctx context.Context, workerCount int) error
}
