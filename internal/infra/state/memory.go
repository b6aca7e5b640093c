package state

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/barbershop-bot/internal/domain/booking"
)

// MemoryStore guarda o estado das conversas no processo. Conversas paradas
// há mais de ttl são removidas por Sweep.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]booking.State
	ttl    time.Duration
	now    func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		states: make(map[int64]booking.State),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id int64) (booking.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.states[id]
	if !ok || m.expired(st) {
		return booking.State{}, nil
	}
	return st, nil
}

func (m *MemoryStore) Set(_ context.Context, id int64, st booking.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st.UpdatedAt = m.now()
	m.states[id] = st
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, id)
	return nil
}

// Sweep remove estados expirados e devolve quantos saíram.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, st := range m.states {
		if m.expired(st) {
			delete(m.states, id)
			removed++
		}
	}
	return removed
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.states)
}

func (m *MemoryStore) expired(st booking.State) bool {
	return m.ttl > 0 && m.now().Sub(st.UpdatedAt) > m.ttl
}

var _ booking.StateStore = (*MemoryStore)(nil)
