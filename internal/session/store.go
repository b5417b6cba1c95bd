package session

import (
	"context"
	"sync"
	"time"
)

// Store persists session snapshots.
type Store interface {
	Create(ctx context.Context, s *Snapshot) error
	Load(ctx context.Context, id string) (*Snapshot, error)
	// Update runs fn on the current snapshot and saves the result atomically.
	// An error from fn aborts the update and is returned unchanged.
	Update(ctx context.Context, id string, fn func(*Snapshot) error) (*Snapshot, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type memEntry struct {
	snap    *Snapshot
	expires time.Time
}

// MemoryStore is a process-local Store used when no Redis is configured.
type MemoryStore struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	items map[string]*memEntry
}

// NewMemoryStore returns a store whose entries expire ttl after their last
// write. A non-positive ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, items: make(map[string]*memEntry)}
}

func (m *MemoryStore) expiry() time.Time {
	if m.ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(m.ttl)
}

// get returns a live entry, dropping it when expired. Caller holds mu.
func (m *MemoryStore) get(id string) (*memEntry, bool) {
	e, ok := m.items[id]
	if !ok {
		return nil, false
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.items, id)
		return nil, false
	}
	return e, true
}

func (m *MemoryStore) Create(ctx context.Context, s *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.get(s.ID); ok {
		return ErrExists
	}
	m.items[s.ID] = &memEntry{snap: s.clone(), expires: m.expiry()}
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return e.snap.clone(), nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, fn func(*Snapshot) error) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	cur := e.snap.clone()
	if err := fn(cur); err != nil {
		return nil, err
	}
	m.items[id] = &memEntry{snap: cur.clone(), expires: m.expiry()}
	return cur, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.get(id); !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id := range m.items {
		if _, ok := m.get(id); ok {
			n++
		}
	}
	return n, nil
}
