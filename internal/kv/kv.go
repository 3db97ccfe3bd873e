// Package kv provides small string-keyed byte stores used to persist
// application data such as the favorites list.
package kv

import (
	"fmt"
	"strings"
	"sync"
)

// Store is the minimal key-value contract. Get reports found=false when the
// key has never been written.
type Store interface {
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
}

// Backend is a Store that owns resources.
type Backend interface {
	Store
	Close() error
}

// Supported drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Open returns the backend for driver rooted at path. For the file driver path
// is a directory; for sqlite it is a directory or a database file ending in .db.
func Open(driver, path string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverFile:
		return NewFile(path)
	case DriverSQLite:
		return NewSQLite(path)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// Memory is an in-process Store. The zero value is not usable; call NewMemory.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(v), true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = cloneBytes(value)
	return nil
}

func (m *Memory) Close() error { return nil }

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	dup := make([]byte, len(b))
	copy(dup, b)
	return dup
}
