package workflow

import (
	"context"

	"moviesphere/internal/store"
)

// Health reports queue depth by analysis state alongside worker status.
type Health struct {
	Running bool
	Queue   store.HealthSummary
}

// Health summarizes the manager and its queue.
func (m *Manager) Health(ctx context.Context) (Health, error) {
	summary, err := m.store.Health(ctx)
	if err != nil {
		return Health{}, err
	}
	return Health{Running: m.Running(), Queue: *summary}, nil
}
