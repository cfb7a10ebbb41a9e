package entity

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds registered entities and their last rendered states.
// It plays the host-framework role: lifecycle on add/remove, re-render on
// data-source notifications.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]Entity
	states   map[string]State
	cleanups map[string]func()
}

func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[string]Entity),
		states:   make(map[string]State),
		cleanups: make(map[string]func()),
	}
}

// Add registers entities, renders their initial state, and attaches each one.
// Duplicate ids are rejected.
func (r *Registry) Add(entities ...Entity) error {
	for _, e := range entities {
		id := e.UniqueID()

		r.mu.Lock()
		if _, exists := r.entities[id]; exists {
			r.mu.Unlock()
			return fmt.Errorf("entity %q already registered", id)
		}
		r.entities[id] = e
		r.states[id] = e.State()
		r.mu.Unlock()

		// Attach outside the lock: the entity's data source may notify
		// synchronously, and the write callback takes the lock again.
		detach := e.Attach(func() { r.render(e) })

		r.mu.Lock()
		r.cleanups[id] = detach
		r.mu.Unlock()
	}
	return nil
}

func (r *Registry) render(e Entity) {
	state := e.State()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entities[e.UniqueID()]; !exists {
		return
	}
	r.states[e.UniqueID()] = state
}

// Remove detaches and forgets an entity. Returns false for unknown ids.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	_, exists := r.entities[id]
	cleanup := r.cleanups[id]
	delete(r.entities, id)
	delete(r.states, id)
	delete(r.cleanups, id)
	r.mu.Unlock()

	if !exists {
		return false
	}
	if cleanup != nil {
		cleanup()
	}
	return true
}

// Close removes every registered entity.
func (r *Registry) Close() {
	r.mu.RLock()
	ids := make([]string, 0, len(r.entities))
	for id := range r.entities {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	for _, id := range ids {
		r.Remove(id)
	}
}

// States returns all rendered entity states, ordered by id.
func (r *Registry) States() []State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]State, 0, len(r.states))
	for _, s := range r.states {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// State returns one rendered entity state by id.
func (r *Registry) State(id string) (State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.states[id]
	return s, ok
}

// Len reports the number of registered entities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}
