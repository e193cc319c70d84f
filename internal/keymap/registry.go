// Package keymap holds process-wide keyboard shortcut bindings. Each
// binding is owned by whoever created it and must be released by its
// owner; releasing is idempotent.
package keymap

import "sync"

type binding struct {
	handler func()
}

type Registry struct {
	mu       sync.Mutex
	bindings map[string][]*binding
}

func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string][]*binding)}
}

// Global is the registry shared by every component in the process.
var Global = NewRegistry()

// Bind attaches handler to key and returns the function that detaches it.
func (r *Registry) Bind(key string, handler func()) (release func()) {
	b := &binding{handler: handler}

	r.mu.Lock()
	r.bindings[key] = append(r.bindings[key], b)
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			list := r.bindings[key]
			for i, candidate := range list {
				if candidate == b {
					r.bindings[key] = append(list[:i:i], list[i+1:]...)
					break
				}
			}
			if len(r.bindings[key]) == 0 {
				delete(r.bindings, key)
			}
		})
	}
}

// Dispatch runs the most recently bound handler for key and reports
// whether one existed.
func (r *Registry) Dispatch(key string) bool {
	r.mu.Lock()
	list := r.bindings[key]
	var b *binding
	if len(list) > 0 {
		b = list[len(list)-1]
	}
	r.mu.Unlock()

	if b == nil {
		return false
	}
	b.handler()
	return true
}

// Len reports how many bindings key currently has.
func (r *Registry) Len(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bindings[key])
}
