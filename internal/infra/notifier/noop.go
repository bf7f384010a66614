package notifier

import "context"

// NoOpNotifier is used when notifications are disabled so callers never
// need a nil check.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// NotifyRunSummary does nothing and returns nil immediately.
func (n *NoOpNotifier) NotifyRunSummary(ctx context.Context, summary RunSummary) error {
	return nil
}
