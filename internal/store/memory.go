package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store. The list lives exactly as long as the
// process and is discarded on restart.
type Memory struct {
	mu    sync.Mutex
	tasks []string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Add implements Store. The mutex is the only ordering guarantee: tasks
// appear in the order Add calls acquire it.
func (m *Memory) Add(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, text)
	return nil
}

// List implements Store. Returns a copy so callers cannot mutate the list.
func (m *Memory) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}
