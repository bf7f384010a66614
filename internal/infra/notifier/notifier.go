// Package notifier sends run summary notifications after a pipeline run.
// It defines the Notifier interface which allows different notification
// mechanisms (Slack, Discord, etc.) to be used interchangeably, plus a
// no-op implementation for when notifications are disabled.
package notifier

import (
	"context"
	"time"
)

// RunSummary is the per-run aggregate handed to a notifier.
// Counters mirror the pipeline's run stats; they are observational only.
type RunSummary struct {
	Fetched          int
	New              int
	SkippedDuplicate int
	Scored           int
	Generated        int
	Ready            int
	Review           int
	Archive          int
	Duration         time.Duration
	DryRun           bool
}

// Notifier is an interface for reporting a finished run.
// Implementations handle rate limiting, retries, and error logging internally.
type Notifier interface {
	// NotifyRunSummary sends a notification describing one completed run.
	NotifyRunSummary(ctx context.Context, summary RunSummary) error
}
