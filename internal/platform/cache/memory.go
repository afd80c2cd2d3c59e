package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	val     []byte
	expires time.Time
}

// DefaultMemoryEntries caps the in-memory cache. Expired entries are swept
// first when the cap is reached, then the entry closest to expiry is evicted.
const DefaultMemoryEntries = 10000

type memoryCache struct {
	mu         sync.Mutex
	items      map[string]entry
	now        func() time.Time
	maxEntries int
}

func NewMemory() Cache {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memoryCache {
	return &memoryCache{items: map[string]entry{}, now: now, maxEntries: DefaultMemoryEntries}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok {
		return nil, ErrMiss
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.items, key)
		return nil, ErrMiss
	}
	out := make([]byte, len(e.val))
	copy(out, e.val)
	return out, nil
}

func (m *memoryCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	e := entry{val: append([]byte(nil), val...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[key]; !exists && m.maxEntries > 0 && len(m.items) >= m.maxEntries {
		m.makeRoom()
	}
	m.items[key] = e
	return nil
}

// makeRoom frees at least one slot. Callers hold mu.
func (m *memoryCache) makeRoom() {
	now := m.now()
	for k, e := range m.items {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.items, k)
		}
	}
	if len(m.items) < m.maxEntries {
		return
	}
	var victim string
	var soonest time.Time
	for k, e := range m.items {
		// entries without a ttl go last
		if victim == "" || (!e.expires.IsZero() && (soonest.IsZero() || e.expires.Before(soonest))) {
			victim, soonest = k, e.expires
		}
	}
	delete(m.items, victim)
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *memoryCache) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	m.mu.Unlock()
	return nil
}

func (m *memoryCache) Close() error { return nil }
