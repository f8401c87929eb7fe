package sync

import "fmt"

// ValidateFunc checks the free-form payload of one record before a write.
// Validation failures should carry per-field details via FieldErrors.
type ValidateFunc func(payload map[string]any) error

// Entity binds one syncable type to its payload validators and store.
// Validate checks update and resolution payloads, where an absent key keeps
// the stored value. ValidateCreate checks create payloads, which have no
// stored row to fall back on; left nil, it defaults to Validate.
type Entity struct {
	Type           EntityType
	Validate       ValidateFunc
	ValidateCreate ValidateFunc
	Store          Store
}

// Registry is the static entity-type lookup table, populated once at startup.
// Iteration follows registration order.
type Registry struct {
	entities map[EntityType]Entity
	order    []EntityType
}

func NewRegistry(entities ...Entity) *Registry {
	r := &Registry{
		entities: make(map[EntityType]Entity, len(entities)),
		order:    make([]EntityType, 0, len(entities)),
	}
	for _, e := range entities {
		if _, dup := r.entities[e.Type]; dup {
			continue
		}
		if e.ValidateCreate == nil {
			e.ValidateCreate = e.Validate
		}
		r.entities[e.Type] = e
		r.order = append(r.order, e.Type)
	}
	return r
}

func (r *Registry) Lookup(t EntityType) (Entity, error) {
	e, ok := r.entities[t]
	if !ok {
		return Entity{}, fmt.Errorf("%w: %q", ErrUnknownEntityType, t)
	}
	return e, nil
}

func (r *Registry) Types() []EntityType {
	types := make([]EntityType, len(r.order))
	copy(types, r.order)
	return types
}
