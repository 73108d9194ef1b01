package outbound

import "context"

// TaskPollerPort queries the vendor's task-status endpoint until the task
// completes, fails, or the attempt budget runs out. On success it returns the
// finished audio URL.
type TaskPollerPort interface {
	Poll(ctx context.Context, taskID string) (string, error)
}
