package resource

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// registry is the implementation of the Registry interface.
type registry[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	free    func(T)
}

type entry[T any] struct {
	value T
	refs  int
}

// Registry shares values by key with exact reference counting. The first Acquire of a
// key creates the value; later Acquires share it. The value is freed exactly once, when
// the last Handle for it is released.
type Registry[T any] interface {
	// Acquire returns a new Handle for key, calling create only if no live value exists.
	//
	// Parameters:
	//   - key: the sharing key, usually a load path
	//   - create: builds the value on first use
	//
	// Returns:
	//   - *Handle[T]: a handle owning one reference
	//   - error: the create error; nothing is registered in that case
	Acquire(key string, create func() (T, error)) (*Handle[T], error)

	// Refs returns the live reference count for key, 0 if absent.
	//
	// Parameters:
	//   - key: the sharing key
	//
	// Returns:
	//   - int: the count
	Refs(key string) int

	// Has reports whether key currently has a live value.
	//
	// Parameters:
	//   - key: the sharing key
	//
	// Returns:
	//   - bool: true if live
	Has(key string) bool

	// Keys returns the keys with live values.
	//
	// Returns:
	//   - []string: the live keys, unordered
	Keys() []string

	// Len returns the number of live values.
	//
	// Returns:
	//   - int: the count
	Len() int
}

var _ Registry[int] = &registry[int]{}

// NewRegistry creates an empty Registry.
//
// Parameters:
//   - free: called with a value once its last reference is released; may be nil
//
// Returns:
//   - Registry[T]: the registry
func NewRegistry[T any](free func(T)) Registry[T] {
	return &registry[T]{
		entries: make(map[string]*entry[T]),
		free:    free,
	}
}

func (r *registry[T]) Acquire(key string, create func() (T, error)) (*Handle[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[key]; ok {
		e.refs++
		return &Handle[T]{reg: r, key: key, value: e.value}, nil
	}

	v, err := create()
	if err != nil {
		return nil, fmt.Errorf("resource %q: %w", key, err)
	}
	r.entries[key] = &entry[T]{value: v, refs: 1}
	return &Handle[T]{reg: r, key: key, value: v}, nil
}

func (r *registry[T]) Refs(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[key]; ok {
		return e.refs
	}
	return 0
}

func (r *registry[T]) Has(key string) bool {
	return r.Refs(key) > 0
}

func (r *registry[T]) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	return keys
}

func (r *registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *registry[T]) retain(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		panic(fmt.Sprintf("resource: clone of released resource %q", key))
	}
	e.refs++
}

// drop removes one reference and reports whether it was the last.
func (r *registry[T]) drop(key string) bool {
	r.mu.Lock()
	e, ok := r.entries[key]
	if !ok {
		r.mu.Unlock()
		return false
	}
	e.refs--
	if e.refs > 0 {
		r.mu.Unlock()
		return false
	}
	delete(r.entries, key)
	r.mu.Unlock()

	if r.free != nil {
		r.free(e.value)
	}
	return true
}

// Handle owns one reference to a registry value.
type Handle[T any] struct {
	reg      *registry[T]
	key      string
	value    T
	released atomic.Bool
}

// Key returns the sharing key.
func (h *Handle[T]) Key() string {
	return h.key
}

// Value returns the shared value. It must not be used after Release.
func (h *Handle[T]) Value() T {
	return h.value
}

// Clone returns a new Handle owning an additional reference to the same value.
// Panics if h was already released.
//
// Returns:
//   - *Handle[T]: the new handle
func (h *Handle[T]) Clone() *Handle[T] {
	if h.released.Load() {
		panic(fmt.Sprintf("resource: clone of released handle %q", h.key))
	}
	h.reg.retain(h.key)
	return &Handle[T]{reg: h.reg, key: h.key, value: h.value}
}

// Release drops this handle's reference. Only the first call on a handle has an effect.
//
// Returns:
//   - bool: true if this call freed the value
func (h *Handle[T]) Release() bool {
	if !h.released.CompareAndSwap(false, true) {
		return false
	}
	return h.reg.drop(h.key)
}
