package scene

import (
	"fmt"

	"go.uber.org/zap"
)

// ErrCircularReference is returned when a reparent would make an entity
// its own ancestor.
var ErrCircularReference = fmt.Errorf("circular reference in hierarchy")

// ComponentEntry is one (component type, component data) pair attached to
// an entity. Entries keep their attachment order, which is the order the
// contribution combiner folds them in.
type ComponentEntry struct {
	Type string
	Data any
}

// World owns one isolated simulation/editor session: the live-entity set,
// the component membership index, the hierarchy, the metadata manager, and
// the component data store. All mutations go through World so the indices
// stay mutually consistent; external code never touches their internals.
//
// A World is single-threaded by design. Create one per session and tear it
// down with Clear; independent sessions use independent instances.
type World struct {
	entities   *EntityIndex
	components *ComponentIndex
	hierarchy  *HierarchyIndex
	metadata   *EntityMetadataManager

	data   map[Entity][]ComponentEntry
	nextID Entity
	logger *zap.Logger
}

// NewWorld creates an empty world. A nil logger disables logging.
func NewWorld(logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &World{
		entities:   NewEntityIndex(),
		components: NewComponentIndex(),
		hierarchy:  NewHierarchyIndex(),
		metadata:   NewEntityMetadataManager(),
		data:       make(map[Entity][]ComponentEntry),
		logger:     logger,
	}
}

// EntityIndex returns the world's live-entity index.
func (w *World) EntityIndex() *EntityIndex { return w.entities }

// ComponentIndex returns the world's component membership index.
func (w *World) ComponentIndex() *ComponentIndex { return w.components }

// HierarchyIndex returns the world's hierarchy index.
func (w *World) HierarchyIndex() *HierarchyIndex { return w.hierarchy }

// MetadataManager returns the world's entity metadata manager.
func (w *World) MetadataManager() *EntityMetadataManager { return w.metadata }

// CreateEntity allocates a fresh handle, registers it as live, and creates
// its metadata record. An empty name gets the manager's default.
func (w *World) CreateEntity(name string) Entity {
	e := w.nextID
	w.nextID++

	w.entities.Add(e)
	w.metadata.CreateEntity(e, name)
	w.logger.Debug("entity created", zap.Uint64("entity", uint64(e)), zap.String("name", name))
	return e
}

// DestroyEntity removes the entity from every index: live set, component
// memberships, component data, hierarchy (orphaning its children), and
// metadata. Destroying an unknown entity is a no-op.
func (w *World) DestroyEntity(e Entity) {
	if !w.entities.Contains(e) {
		return
	}
	w.entities.Remove(e)
	w.components.RemoveEntity(e)
	delete(w.data, e)
	w.hierarchy.RemoveEntity(e)
	w.metadata.DestroyEntity(e)
	w.logger.Debug("entity destroyed", zap.Uint64("entity", uint64(e)))
}

// SetComponent attaches component data of the given type to the entity,
// replacing in place if the entity already carries that type. Attachment
// order of distinct types is preserved. Unknown entities are ignored.
func (w *World) SetComponent(e Entity, componentType string, data any) {
	if !w.entities.Contains(e) {
		w.logger.Warn("set component on unknown entity",
			zap.Uint64("entity", uint64(e)), zap.String("type", componentType))
		return
	}

	entries := w.data[e]
	for i := range entries {
		if entries[i].Type == componentType {
			entries[i].Data = data
			return
		}
	}
	w.data[e] = append(entries, ComponentEntry{Type: componentType, Data: data})
	w.components.OnAdd(componentType, e)
}

// RemoveComponent detaches the component type from the entity. Removing a
// type the entity does not carry is a no-op.
func (w *World) RemoveComponent(e Entity, componentType string) {
	entries := w.data[e]
	for i := range entries {
		if entries[i].Type == componentType {
			w.data[e] = append(entries[:i], entries[i+1:]...)
			w.components.OnRemove(componentType, e)
			return
		}
	}
}

// Component returns the entity's data for the given component type.
func (w *World) Component(e Entity, componentType string) (any, bool) {
	for _, entry := range w.data[e] {
		if entry.Type == componentType {
			return entry.Data, true
		}
	}
	return nil, false
}

// Components returns a copy of the entity's component entries in
// attachment order, ready to feed to the contribution combiner.
func (w *World) Components(e Entity) []ComponentEntry {
	entries := w.data[e]
	out := make([]ComponentEntry, len(entries))
	copy(out, entries)
	return out
}

// SetParent attaches child under parent after checking that the edit would
// not make the child its own ancestor. The hierarchy index itself is
// advisory; World is the enforcement point.
func (w *World) SetParent(child, parent Entity) error {
	if w.hierarchy.WouldCreateCycle(child, parent) {
		w.logger.Warn("reparent refused",
			zap.Uint64("child", uint64(child)), zap.Uint64("parent", uint64(parent)))
		return fmt.Errorf("set parent of entity %d to %d: %w", child, parent, ErrCircularReference)
	}
	w.hierarchy.SetParent(child, parent)
	return nil
}

// ClearParent detaches the child from its parent, making it a root.
func (w *World) ClearParent(child Entity) {
	w.hierarchy.ClearParent(child)
}

// Clear tears the world down: every index is emptied and handle allocation
// restarts from zero.
func (w *World) Clear() {
	w.entities.Clear()
	w.components.Clear()
	w.hierarchy.Clear()
	w.metadata.Clear()
	w.data = make(map[Entity][]ComponentEntry)
	w.nextID = 0
	w.logger.Debug("world cleared")
}
