package scene

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Metadata holds the stable identity of one entity: a display name, a
// globally unique identifier, and creation/modification timestamps in Unix
// milliseconds. Names are not required to be unique; GUIDs are.
type Metadata struct {
	Name     string `json:"name"`
	GUID     string `json:"guid"`
	Created  int64  `json:"created"`
	Modified int64  `json:"modified"`
}

// EntityMetadataManager tracks per-entity metadata together with two
// derived reverse indices: name -> entities (names may be shared) and
// GUID -> entity (GUIDs are 1:1). The reverse indices are maintained on
// every mutation and rebuilt wholesale on Deserialize.
//
// Each world owns its own manager instance; there is no process-wide one.
type EntityMetadataManager struct {
	metadata map[Entity]Metadata
	byName   map[string]map[Entity]struct{}
	byGUID   map[string]Entity
}

// NewEntityMetadataManager creates an empty metadata manager.
func NewEntityMetadataManager() *EntityMetadataManager {
	return &EntityMetadataManager{
		metadata: make(map[Entity]Metadata),
		byName:   make(map[string]map[Entity]struct{}),
		byGUID:   make(map[string]Entity),
	}
}

// CreateEntity registers metadata for the entity with the given display
// name, a fresh GUID, and Created == Modified == now. An empty name gets
// the default "Entity {id}". Creating an entity that already has metadata
// is a no-op.
func (m *EntityMetadataManager) CreateEntity(id Entity, name string) {
	if _, ok := m.metadata[id]; ok {
		return
	}
	if name == "" {
		name = fmt.Sprintf("Entity %d", id)
	}

	now := time.Now().UnixMilli()
	meta := Metadata{
		Name:     name,
		GUID:     m.GenerateGUID(),
		Created:  now,
		Modified: now,
	}
	m.metadata[id] = meta
	m.indexName(meta.Name, id)
	m.byGUID[meta.GUID] = id
}

// SetName updates the entity's display name, keeping the name index in
// step and bumping Modified. An entity with no metadata yet is implicitly
// created first.
func (m *EntityMetadataManager) SetName(id Entity, name string) {
	meta, ok := m.metadata[id]
	if !ok {
		m.CreateEntity(id, name)
		return
	}

	m.unindexName(meta.Name, id)
	meta.Name = name
	meta.Modified = time.Now().UnixMilli()
	m.metadata[id] = meta
	m.indexName(name, id)
}

// Name returns the entity's display name, if it has metadata.
func (m *EntityMetadataManager) Name(id Entity) (string, bool) {
	meta, ok := m.metadata[id]
	return meta.Name, ok
}

// SetGUID assigns a GUID to the entity and reports whether the assignment
// was honored. A GUID already owned by a different entity is rejected and
// the entity keeps its previous GUID; this guards against identity
// collisions during scene merge and import. An entity with no metadata yet
// is implicitly created first.
func (m *EntityMetadataManager) SetGUID(id Entity, guid string) bool {
	if owner, taken := m.byGUID[guid]; taken && owner != id {
		return false
	}

	meta, ok := m.metadata[id]
	if !ok {
		m.CreateEntity(id, "")
		meta = m.metadata[id]
	}
	if meta.GUID == guid {
		return true
	}

	delete(m.byGUID, meta.GUID)
	meta.GUID = guid
	meta.Modified = time.Now().UnixMilli()
	m.metadata[id] = meta
	if guid != "" {
		m.byGUID[guid] = id
	}
	return true
}

// GUID returns the entity's GUID, if it has metadata.
func (m *EntityMetadataManager) GUID(id Entity) (string, bool) {
	meta, ok := m.metadata[id]
	return meta.GUID, ok
}

// GenerateGUID produces a GUID distinct from every previously generated
// value in this process.
func (m *EntityMetadataManager) GenerateGUID() string {
	return uuid.NewString()
}

// EnsureGUID returns the entity's GUID, lazily generating and assigning
// one if the entity has none (or an empty one).
func (m *EntityMetadataManager) EnsureGUID(id Entity) string {
	meta, ok := m.metadata[id]
	if ok && meta.GUID != "" {
		return meta.GUID
	}

	guid := m.GenerateGUID()
	m.SetGUID(id, guid)
	return guid
}

// FindByName returns the entities whose display name matches exactly
// (case-sensitive). Several entities may share a name.
func (m *EntityMetadataManager) FindByName(name string) []Entity {
	set := m.byName[name]
	entities := make([]Entity, 0, len(set))
	for e := range set {
		entities = append(entities, e)
	}
	return entities
}

// FindByGUID returns the entity owning the GUID, if any.
func (m *EntityMetadataManager) FindByGUID(guid string) (Entity, bool) {
	e, ok := m.byGUID[guid]
	return e, ok
}

// Get returns a copy of the entity's metadata record, if it has one.
func (m *EntityMetadataManager) Get(id Entity) (Metadata, bool) {
	meta, ok := m.metadata[id]
	return meta, ok
}

// Count returns the number of entities with metadata.
func (m *EntityMetadataManager) Count() int {
	return len(m.metadata)
}

// DestroyEntity removes the entity's metadata record and scrubs both
// reverse indices. Other entities sharing the same name are untouched.
func (m *EntityMetadataManager) DestroyEntity(id Entity) {
	meta, ok := m.metadata[id]
	if !ok {
		return
	}
	m.unindexName(meta.Name, id)
	delete(m.byGUID, meta.GUID)
	delete(m.metadata, id)
}

// Clear removes all metadata and both reverse indices.
func (m *EntityMetadataManager) Clear() {
	m.metadata = make(map[Entity]Metadata)
	m.byName = make(map[string]map[Entity]struct{})
	m.byGUID = make(map[string]Entity)
}

// Serialize returns a copy of all metadata records keyed by entity handle,
// suitable for embedding in a scene file. The copy is detached: mutating
// it does not affect the manager.
func (m *EntityMetadataManager) Serialize() map[Entity]Metadata {
	out := make(map[Entity]Metadata, len(m.metadata))
	for id, meta := range m.metadata {
		out[id] = meta
	}
	return out
}

// Deserialize replaces all manager state with the given records and
// rebuilds both reverse indices from scratch. Prior state is discarded,
// not merged. A Serialize/Clear/Deserialize round trip reproduces
// identical name and GUID lookups.
func (m *EntityMetadataManager) Deserialize(records map[Entity]Metadata) {
	m.Clear()
	for id, meta := range records {
		m.metadata[id] = meta
		m.indexName(meta.Name, id)
		if meta.GUID != "" {
			m.byGUID[meta.GUID] = id
		}
	}
}

func (m *EntityMetadataManager) indexName(name string, id Entity) {
	set, ok := m.byName[name]
	if !ok {
		set = make(map[Entity]struct{})
		m.byName[name] = set
	}
	set[id] = struct{}{}
}

func (m *EntityMetadataManager) unindexName(name string, id Entity) {
	set := m.byName[name]
	delete(set, id)
	if len(set) == 0 {
		delete(m.byName, name)
	}
}
