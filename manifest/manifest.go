// Package manifest describes component types and combines their
// declarative rendering/physics contributions into resolved per-entity
// descriptors.
//
// A manifest declares its capabilities through the RenderingContributor
// and PhysicsContributor interfaces; the combiner dispatches only to
// manifests that implement the relevant one. Registration is an explicit,
// statically-compiled list (see RegisterBuiltins), never discovered at
// runtime.
package manifest

// Manifest describes one component type by name. Concrete manifests opt
// into capabilities by additionally implementing RenderingContributor
// and/or PhysicsContributor.
type Manifest interface {
	ComponentType() string
}

// RenderingContributor is implemented by manifests whose component data
// contributes rendering parameters to an entity's resolved descriptor.
type RenderingContributor interface {
	Manifest
	RenderingContribution(data any) RenderingPatch
}

// PhysicsContributor is implemented by manifests whose component data
// contributes physics body parameters to an entity's resolved descriptor.
type PhysicsContributor interface {
	Manifest
	PhysicsContribution(data any) PhysicsPatch
}

// Registry holds the known component manifests, keyed by component type
// name. Later registrations for the same type replace earlier ones.
type Registry struct {
	manifests map[string]Manifest
}

// NewRegistry creates an empty manifest registry.
func NewRegistry() *Registry {
	return &Registry{
		manifests: make(map[string]Manifest),
	}
}

// Register adds a manifest to the registry.
func (r *Registry) Register(m Manifest) {
	r.manifests[m.ComponentType()] = m
}

// Get returns the manifest for a component type, if one is registered.
func (r *Registry) Get(componentType string) (Manifest, bool) {
	m, ok := r.manifests[componentType]
	return m, ok
}

// Types returns the registered component type names in unspecified order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.manifests))
	for t := range r.manifests {
		types = append(types, t)
	}
	return types
}
