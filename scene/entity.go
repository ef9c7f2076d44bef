package scene

// Entity is an opaque handle identifying one entity in a world.
// The handle itself carries no data; all entity state lives in the
// indices keyed by it. Handle 0 is an ordinary, valid handle.
type Entity uint64

// EntityIndex tracks the set of currently live entity handles.
type EntityIndex struct {
	live map[Entity]struct{}
}

// NewEntityIndex creates an empty entity index.
func NewEntityIndex() *EntityIndex {
	return &EntityIndex{
		live: make(map[Entity]struct{}),
	}
}

// Add marks an entity handle as live. Adding an already-live handle is a no-op.
func (x *EntityIndex) Add(e Entity) {
	x.live[e] = struct{}{}
}

// Remove marks an entity handle as no longer live. Removing an unknown
// handle is a no-op.
func (x *EntityIndex) Remove(e Entity) {
	delete(x.live, e)
}

// Contains reports whether the entity handle is live.
func (x *EntityIndex) Contains(e Entity) bool {
	_, ok := x.live[e]
	return ok
}

// Count returns the number of live entities.
func (x *EntityIndex) Count() int {
	return len(x.live)
}

// All returns the live entity handles in unspecified order.
func (x *EntityIndex) All() []Entity {
	entities := make([]Entity, 0, len(x.live))
	for e := range x.live {
		entities = append(entities, e)
	}
	return entities
}

// Clear removes all live entities.
func (x *EntityIndex) Clear() {
	x.live = make(map[Entity]struct{})
}
