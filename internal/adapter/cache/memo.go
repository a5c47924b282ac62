package cache

import (
	"sync"
)

// Key identifies a memoized analytics result.
type Key struct {
	Corpus string
	Mode   string
}

// ComputeFunc produces the value for a key on a cache miss.
type ComputeFunc[V any] func(corpus, mode string) (V, error)

// Memo wraps a compute function with an LRU cache keyed by (corpus, mode).
// Entries for a corpus are dropped with Invalidate when its report changes.
type Memo[V any] struct {
	mu      sync.Mutex
	compute ComputeFunc[V]
	entries map[Key]V
	order   []Key
	maxSize int
	hits    int
	misses  int
}

func NewMemo[V any](maxSize int, compute ComputeFunc[V]) *Memo[V] {
	if maxSize <= 0 {
		maxSize = 64
	}
	return &Memo[V]{
		compute: compute,
		entries: make(map[Key]V),
		order:   make([]Key, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get returns the cached value for (corpus, mode), computing it on a miss.
// Errors are not cached.
func (m *Memo[V]) Get(corpus, mode string) (V, error) {
	key := Key{Corpus: corpus, Mode: mode}

	m.mu.Lock()
	if v, ok := m.entries[key]; ok {
		m.hits++
		m.moveToEnd(key)
		m.mu.Unlock()
		return v, nil
	}
	m.misses++
	m.mu.Unlock()

	v, err := m.compute(corpus, mode)
	if err != nil {
		return v, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[key]; !exists {
		if len(m.entries) >= m.maxSize {
			m.evictOldest()
		}
		m.order = append(m.order, key)
	} else {
		m.moveToEnd(key)
	}
	m.entries[key] = v
	return v, nil
}

// Invalidate drops every mode cached for corpus.
func (m *Memo[V]) Invalidate(corpus string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.order[:0]
	for _, k := range m.order {
		if k.Corpus == corpus {
			delete(m.entries, k)
			continue
		}
		kept = append(kept, k)
	}
	m.order = kept
}

// Reset drops every entry.
func (m *Memo[V]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[Key]V)
	m.order = m.order[:0]
}

func (m *Memo[V]) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Stats returns hit and miss counts.
func (m *Memo[V]) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}

func (m *Memo[V]) evictOldest() {
	if len(m.order) == 0 {
		return
	}
	oldest := m.order[0]
	m.order = m.order[1:]
	delete(m.entries, oldest)
}

func (m *Memo[V]) moveToEnd(key Key) {
	m.removeFromOrder(key)
	m.order = append(m.order, key)
}

func (m *Memo[V]) removeFromOrder(key Key) {
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
