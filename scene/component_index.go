package scene

// ComponentIndex tracks, per component type name, the set of entities that
// currently carry that component. It answers membership and set-algebra
// queries; the component data itself lives elsewhere.
//
// Entity existence is advisory: the index never consults an EntityIndex,
// it simply records what it is told via OnAdd/OnRemove.
type ComponentIndex struct {
	members map[string]map[Entity]struct{}
}

// NewComponentIndex creates an empty component membership index.
func NewComponentIndex() *ComponentIndex {
	return &ComponentIndex{
		members: make(map[string]map[Entity]struct{}),
	}
}

// OnAdd records that the entity now carries a component of the given type.
// Duplicate adds for the same (type, entity) pair are idempotent.
func (x *ComponentIndex) OnAdd(componentType string, e Entity) {
	set, ok := x.members[componentType]
	if !ok {
		set = make(map[Entity]struct{})
		x.members[componentType] = set
	}
	set[e] = struct{}{}
}

// OnRemove records that the entity no longer carries a component of the
// given type. Removing a non-member is a no-op. A type whose last member
// is removed is pruned from the type list entirely.
func (x *ComponentIndex) OnRemove(componentType string, e Entity) {
	set, ok := x.members[componentType]
	if !ok {
		return
	}
	delete(set, e)
	if len(set) == 0 {
		delete(x.members, componentType)
	}
}

// Has reports whether the entity carries a component of the given type.
func (x *ComponentIndex) Has(componentType string, e Entity) bool {
	_, ok := x.members[componentType][e]
	return ok
}

// List returns the entities carrying the given component type, in
// unspecified order. Unknown types yield an empty result.
func (x *ComponentIndex) List(componentType string) []Entity {
	set := x.members[componentType]
	entities := make([]Entity, 0, len(set))
	for e := range set {
		entities = append(entities, e)
	}
	return entities
}

// Count returns the number of entities carrying the given component type.
func (x *ComponentIndex) Count(componentType string) int {
	return len(x.members[componentType])
}

// ComponentTypes returns the component types that currently have at least
// one member. Empty buckets are pruned on removal, so every returned type
// has a non-zero count.
func (x *ComponentIndex) ComponentTypes() []string {
	types := make([]string, 0, len(x.members))
	for t := range x.members {
		types = append(types, t)
	}
	return types
}

// TotalComponentCount returns the sum of all per-type member counts.
func (x *ComponentIndex) TotalComponentCount() int {
	total := 0
	for _, set := range x.members {
		total += len(set)
	}
	return total
}

// ListWithAllComponents returns the entities carrying every one of the
// given component types (set intersection). An empty type list yields an
// empty result, as does any unknown type.
//
// The smallest membership set among the requested types is used as the
// candidate seed and the remaining types only filter it, so query cost is
// proportional to the rarest component's population rather than the most
// common one.
func (x *ComponentIndex) ListWithAllComponents(componentTypes []string) []Entity {
	if len(componentTypes) == 0 {
		return nil
	}

	var seed map[Entity]struct{}
	for _, t := range componentTypes {
		set, ok := x.members[t]
		if !ok {
			return nil
		}
		if seed == nil || len(set) < len(seed) {
			seed = set
		}
	}

	result := make([]Entity, 0, len(seed))
candidates:
	for e := range seed {
		for _, t := range componentTypes {
			if _, ok := x.members[t][e]; !ok {
				continue candidates
			}
		}
		result = append(result, e)
	}
	return result
}

// ListWithAnyComponent returns the entities carrying at least one of the
// given component types (set union). An empty type list yields an empty
// result.
func (x *ComponentIndex) ListWithAnyComponent(componentTypes []string) []Entity {
	if len(componentTypes) == 0 {
		return nil
	}

	union := make(map[Entity]struct{})
	for _, t := range componentTypes {
		for e := range x.members[t] {
			union[e] = struct{}{}
		}
	}

	result := make([]Entity, 0, len(union))
	for e := range union {
		result = append(result, e)
	}
	return result
}

// RemoveEntity removes the entity from every component type it belongs to,
// pruning types that become empty.
func (x *ComponentIndex) RemoveEntity(e Entity) {
	for t, set := range x.members {
		delete(set, e)
		if len(set) == 0 {
			delete(x.members, t)
		}
	}
}

// Clear removes all membership records.
func (x *ComponentIndex) Clear() {
	x.members = make(map[string]map[Entity]struct{})
}
