package slot

import (
	"context"
	"sync"
)

// Memory is a process-local Slot, used when no durable backend is configured
// and in tests.
type Memory struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set {
		return nil, ErrNotFound
	}

	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Set(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = append([]byte(nil), data...)
	m.set = true

	return nil
}

func (m *Memory) Remove(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = nil
	m.set = false

	return nil
}
