package driving

import "context"

// Scheduler runs translation passes on a cron schedule.
type Scheduler interface {
	// Start begins running scheduled passes.
	// Blocks until context is cancelled or an error occurs.
	Start(ctx context.Context) error

	// Stop gracefully stops the scheduler, waiting for a running pass.
	Stop() error
}
