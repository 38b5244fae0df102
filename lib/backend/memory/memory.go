// Package memory implements backend.IBackend on top of an xsync map.
// Nothing is persisted between process restarts.
package memory

import (
	"slices"
	"sync/atomic"

	"github.com/ValentinKolb/jDB/lib/backend"
	"github.com/puzpuzpuz/xsync/v3"
)

type memoryImpl struct {
	data   *xsync.MapOf[string, []byte]
	closed atomic.Bool
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() backend.IBackend {
	return &memoryImpl{
		data: xsync.NewMapOf[string, []byte](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see backend.IBackend)
// --------------------------------------------------------------------------

func (m *memoryImpl) Get(key string) ([]byte, bool, error) {
	if m.closed.Load() {
		return nil, false, backend.ErrClosed
	}
	value, ok := m.data.Load(key)
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(value), true, nil
}

func (m *memoryImpl) Set(key string, value []byte) error {
	if m.closed.Load() {
		return backend.ErrClosed
	}
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	m.data.Store(key, valueCopy)
	return nil
}

func (m *memoryImpl) Delete(key string) error {
	if m.closed.Load() {
		return backend.ErrClosed
	}
	m.data.Delete(key)
	return nil
}

func (m *memoryImpl) Keys() ([]string, error) {
	if m.closed.Load() {
		return nil, backend.ErrClosed
	}
	keys := make([]string, 0, m.data.Size())
	m.data.Range(func(key string, _ []byte) bool {
		keys = append(keys, key)
		return true
	})
	slices.Sort(keys)
	return keys, nil
}

func (m *memoryImpl) Close() error {
	m.closed.Store(true)
	return nil
}
