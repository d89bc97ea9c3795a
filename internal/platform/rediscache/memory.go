package rediscache

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Cache for single-node runs and tests.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
	gens map[string]int64

	Hits          int
	Invalidations int
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}, gens: map[string]int64{}}
}

func memKey(docID, format string, gen int64) string {
	return fmt.Sprintf("%s:%s:%d", docID, format, gen)
}

func (m *Memory) Generation(_ context.Context, docID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gens[docID], nil
}

func (m *Memory) Get(_ context.Context, docID, format string, gen int64) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[memKey(docID, format, gen)]
	if ok {
		m.Hits++
	}
	return b, ok, nil
}

// Set drops values for retired generations instead of storing them.
func (m *Memory) Set(_ context.Context, docID, format string, gen int64, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gens[docID] {
		return nil
	}
	m.data[memKey(docID, format, gen)] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Invalidate(_ context.Context, docID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old := m.gens[docID]
	for _, f := range []string{"mermaid", "png"} {
		delete(m.data, memKey(docID, f, old))
	}
	m.gens[docID] = old + 1
	m.Invalidations++
	return nil
}

func (m *Memory) Close() error { return nil }
