package store

import (
	"bytes"
	"sort"
	"sync"
)

// MemKV is an in-memory KV, used for tests, the genesis builder, and
// development nodes that do not need persistence across restarts.
type MemKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemKV returns an empty MemKV.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string][]byte)}
}

func (m *MemKV) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemKV) Set(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *MemKV) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

func (m *MemKV) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	m.mu.RLock()
	type kv struct {
		k string
		v []byte
	}
	var items []kv
	for k, v := range m.data {
		if bytes.HasPrefix([]byte(k), prefix) {
			items = append(items, kv{k, v})
		}
	}
	m.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].k < items[j].k })
	for _, it := range items {
		if !fn([]byte(it.k), it.v) {
			break
		}
	}
	return nil
}
