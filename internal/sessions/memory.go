package sessions

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process session store.
type Memory struct {
	mu    sync.Mutex
	users map[int64]map[string]struct{}
}

// NewMemory returns an empty in-process session store.
func NewMemory() *Memory {
	return &Memory{users: make(map[int64]map[string]struct{})}
}

// Create opens a session for the user.
func (m *Memory) Create(_ context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	tokens, ok := m.users[userID]
	if !ok {
		tokens = make(map[string]struct{})
		m.users[userID] = tokens
	}
	tokens[token] = struct{}{}
	return token, nil
}

// InvalidateAll revokes every session for the user.
func (m *Memory) InvalidateAll(_ context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	revoked := len(m.users[userID])
	delete(m.users, userID)
	return revoked, nil
}

// CountActive returns the number of live sessions for the user.
func (m *Memory) CountActive(_ context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users[userID]), nil
}

// Close is a no-op for the in-process store.
func (m *Memory) Close() error {
	return nil
}
