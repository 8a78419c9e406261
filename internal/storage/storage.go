// Package storage provides the shared sink capability that is threaded
// through every native function call. A sink records knowledge-base items
// and findings for one scan; pure-compute builtins ignore it.
package storage

import "sync"

// Sink is the storage capability handed to native functions. A sink is
// bound to one scan key; implementations decide where items end up.
type Sink interface {
	// Dispatch records a value under the given item name. Multiple values
	// may accumulate under the same name.
	Dispatch(name, value string) error
	// Retrieve returns all values recorded under the given item name, in
	// dispatch order. An unknown name yields an empty slice, not an error.
	Retrieve(name string) ([]string, error)
	// Close releases any resources held by the sink.
	Close() error
}

// MemSink is an in-memory Sink, used by tests and by script runs that do
// not persist findings.
type MemSink struct {
	mu    sync.RWMutex
	items map[string][]string
}

// NewMemSink creates an empty in-memory sink.
func NewMemSink() *MemSink {
	return &MemSink{items: make(map[string][]string)}
}

func (s *MemSink) Dispatch(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[name] = append(s.items[name], value)
	return nil
}

func (s *MemSink) Retrieve(name string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := s.items[name]
	out := make([]string, len(values))
	copy(out, values)
	return out, nil
}

func (s *MemSink) Close() error {
	return nil
}
