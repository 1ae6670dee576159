package measure

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// Constructor builds an algorithm from its raw configuration block.
type Constructor[T any] func(conf map[string]any) (T, error)

// Registry stores named entries with stable small integer tags, one instance
// per capability family. Registration is idempotent: re-registering a name
// keeps the first entry and returns the original tag, so init-time
// registration from multiple packages cannot conflict. Tags are allocated in
// registration order and never reused.
type Registry[T any] struct {
	mu      sync.RWMutex
	tags    map[string]int
	names   []string
	entries []T
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{tags: make(map[string]int)}
}

// Register stores v under name and returns its tag. A nil entry is a
// programmer error and panics.
func (r *Registry[T]) Register(name string, v T) int {
	if isNil(v) {
		panic(fmt.Sprintf("measure: nil registration for %q", name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if tag, ok := r.tags[name]; ok {
		return tag
	}
	tag := len(r.entries)
	r.tags[name] = tag
	r.names = append(r.names, name)
	r.entries = append(r.entries, v)
	return tag
}

// Lookup resolves a name to its tag.
func (r *Registry[T]) Lookup(name string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tag, ok := r.tags[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return tag, nil
}

// Get returns the entry registered under tag.
func (r *Registry[T]) Get(tag int) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if tag < 0 || tag >= len(r.entries) {
		var zero T
		return zero, fmt.Errorf("%w: tag %d", ErrNotRegistered, tag)
	}
	return r.entries[tag], nil
}

// GetByName returns the entry registered under name.
func (r *Registry[T]) GetByName(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tag, ok := r.tags[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return r.entries[tag], nil
}

// Name returns the name registered for tag.
func (r *Registry[T]) Name(tag int) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if tag < 0 || tag >= len(r.names) {
		return "", fmt.Errorf("%w: tag %d", ErrNotRegistered, tag)
	}
	return r.names[tag], nil
}

// Names returns all registered names, sorted.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	sort.Strings(out)
	return out
}

// Len returns the number of registered entries.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Create instantiates an algorithm by name from a constructor registry.
func Create[T any](r *Registry[Constructor[T]], name string, conf map[string]any) (T, error) {
	ctor, err := r.GetByName(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return ctor(conf)
}

// Decode fills out the provided struct from a raw config block using json tags.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: out})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
