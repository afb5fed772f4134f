package sessions

import (
	"context"
	"fmt"

	"moviesphere/internal/config"
	"moviesphere/internal/services"
)

// Store tracks login sessions so a ban can force every device to log out.
type Store interface {
	// Create opens a session for the user and returns its token.
	Create(ctx context.Context, userID int64) (string, error)
	// InvalidateAll revokes every session belonging to the user and
	// returns how many were revoked.
	InvalidateAll(ctx context.Context, userID int64) (int, error)
	// CountActive returns the number of live sessions for the user.
	CountActive(ctx context.Context, userID int64) (int, error)
	// Close releases backend resources.
	Close() error
}

// NewFromConfig constructs the configured session backend. The memory
// backend is the default and suits single-process deployments; redis is
// for deployments where the web tier holds the sessions.
func NewFromConfig(cfg config.Sessions) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemory(), nil
	case "redis":
		return NewRedis(cfg)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "sessions", "new store",
			fmt.Sprintf("unknown backend %q", cfg.Backend), nil)
	}
}
