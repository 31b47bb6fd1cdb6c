package schema

import (
	"fmt"
	"sync"
)

// Registry indexes entities by name and by remote name. Late-bound
// relationship targets resolve against the registry their entity was
// registered in.
type Registry struct {
	mu       sync.RWMutex
	ordered  []*Entity
	byName   map[string]*Entity
	byRemote map[string]*Entity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]*Entity),
		byRemote: make(map[string]*Entity),
	}
}

// Register adds entities in order. It stops at the first failure; entities
// before it remain registered.
func (r *Registry) Register(entities ...*Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entities {
		if err := r.registerLocked(e); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is Register that panics on failure.
func (r *Registry) MustRegister(entities ...*Entity) {
	if err := r.Register(entities...); err != nil {
		panic(err)
	}
}

func (r *Registry) registerLocked(e *Entity) error {
	if e == nil {
		return fmt.Errorf("register: nil entity")
	}
	if _, ok := r.byName[e.name]; ok {
		return &AlreadyRegisteredError{Name: e.name}
	}
	if _, ok := r.byRemote[e.remote]; ok {
		return &AlreadyRegisteredError{Name: e.remote, Remote: true}
	}

	rels := e.Relationships()
	for _, rel := range rels {
		if owner := rel.registry.Load(); owner != nil && owner != r {
			return fmt.Errorf("register %s: relationship %s belongs to another registry", e.name, rel.name)
		}
	}
	var bound []*Relationship
	for _, rel := range rels {
		if rel.registry.CompareAndSwap(nil, r) {
			bound = append(bound, rel)
			continue
		}
		if rel.registry.Load() != r {
			for _, b := range bound {
				b.registry.CompareAndSwap(r, nil)
			}
			return fmt.Errorf("register %s: relationship %s belongs to another registry", e.name, rel.name)
		}
	}

	r.ordered = append(r.ordered, e)
	r.byName[e.name] = e
	r.byRemote[e.remote] = e
	return nil
}

// Entity looks up an entity by local name.
func (r *Registry) Entity(name string) (*Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byName[name]
	if !ok {
		return nil, &NotRegisteredError{Name: name}
	}
	return e, nil
}

// ByRemoteName looks up an entity by the name the remote source uses.
func (r *Registry) ByRemoteName(remote string) (*Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byRemote[remote]
	if !ok {
		return nil, &NotRegisteredError{Name: remote}
	}
	return e, nil
}

// Entities returns every registered entity in registration order.
func (r *Registry) Entities() []*Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Entity, len(r.ordered))
	copy(out, r.ordered)
	return out
}
