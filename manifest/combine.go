package manifest

// Source is one (component type, component data) pair from an entity, in
// attachment order. The combiner folds over sources in order, so later
// components override earlier ones field by field.
type Source struct {
	ComponentType string
	Data          any
}

// Material holds the resolved surface parameters of a rendering
// descriptor.
type Material struct {
	Color     string
	Metalness float64
	Roughness float64
}

// RenderingDescriptor is the fully resolved rendering state of one entity,
// ready to hand to the renderer.
type RenderingDescriptor struct {
	Visible       bool
	CastShadow    bool
	ReceiveShadow bool
	Material      Material
	MeshID        string
}

// DefaultRenderingDescriptor returns the accumulator seed: visible,
// shadow-casting and shadow-receiving, with a neutral material.
func DefaultRenderingDescriptor() RenderingDescriptor {
	return RenderingDescriptor{
		Visible:       true,
		CastShadow:    true,
		ReceiveShadow: true,
		Material: Material{
			Color:     "#cccccc",
			Metalness: 0,
			Roughness: 1,
		},
	}
}

// RenderingPatch is one component's partial rendering contribution. Nil
// fields leave the accumulator untouched.
type RenderingPatch struct {
	Visible       *bool
	CastShadow    *bool
	ReceiveShadow *bool
	Color         *string
	Metalness     *float64
	Roughness     *float64
	MeshID        *string
}

// PhysicsDescriptor is the fully resolved physics body state of one
// entity. Enabled is false until some component contributes a body, so an
// entity with no physics components is reported as non-physical.
type PhysicsDescriptor struct {
	Enabled     bool
	BodyType    string
	Mass        float64
	Friction    float64
	Restitution float64
}

// DefaultPhysicsDescriptor returns the accumulator seed: a disabled
// dynamic body with unit mass and the engine's default material.
func DefaultPhysicsDescriptor() PhysicsDescriptor {
	return PhysicsDescriptor{
		Enabled:     false,
		BodyType:    "dynamic",
		Mass:        1,
		Friction:    0.7,
		Restitution: 0.3,
	}
}

// PhysicsPatch is one component's partial physics contribution. Nil fields
// leave the accumulator untouched.
type PhysicsPatch struct {
	Enabled     *bool
	BodyType    *string
	Mass        *float64
	Friction    *float64
	Restitution *float64
}

// CombineRendering resolves an entity's rendering descriptor by folding
// every source's rendering contribution, in order, into the default
// descriptor. Sources whose type is unregistered, or whose manifest does
// not contribute rendering, are skipped.
func CombineRendering(reg *Registry, sources []Source) RenderingDescriptor {
	desc := DefaultRenderingDescriptor()
	for _, src := range sources {
		m, ok := reg.Get(src.ComponentType)
		if !ok {
			continue
		}
		contributor, ok := m.(RenderingContributor)
		if !ok {
			continue
		}
		applyRenderingPatch(&desc, contributor.RenderingContribution(src.Data))
	}
	return desc
}

// CombinePhysics resolves an entity's physics descriptor by folding every
// source's physics contribution, in order, into the default descriptor.
// Sources whose type is unregistered, or whose manifest does not
// contribute physics, are skipped.
func CombinePhysics(reg *Registry, sources []Source) PhysicsDescriptor {
	desc := DefaultPhysicsDescriptor()
	for _, src := range sources {
		m, ok := reg.Get(src.ComponentType)
		if !ok {
			continue
		}
		contributor, ok := m.(PhysicsContributor)
		if !ok {
			continue
		}
		applyPhysicsPatch(&desc, contributor.PhysicsContribution(src.Data))
	}
	return desc
}

func applyRenderingPatch(desc *RenderingDescriptor, patch RenderingPatch) {
	if patch.Visible != nil {
		desc.Visible = *patch.Visible
	}
	if patch.CastShadow != nil {
		desc.CastShadow = *patch.CastShadow
	}
	if patch.ReceiveShadow != nil {
		desc.ReceiveShadow = *patch.ReceiveShadow
	}
	if patch.Color != nil {
		desc.Material.Color = *patch.Color
	}
	if patch.Metalness != nil {
		desc.Material.Metalness = *patch.Metalness
	}
	if patch.Roughness != nil {
		desc.Material.Roughness = *patch.Roughness
	}
	if patch.MeshID != nil {
		desc.MeshID = *patch.MeshID
	}
}

func applyPhysicsPatch(desc *PhysicsDescriptor, patch PhysicsPatch) {
	if patch.Enabled != nil {
		desc.Enabled = *patch.Enabled
	}
	if patch.BodyType != nil {
		desc.BodyType = *patch.BodyType
	}
	if patch.Mass != nil {
		desc.Mass = *patch.Mass
	}
	if patch.Friction != nil {
		desc.Friction = *patch.Friction
	}
	if patch.Restitution != nil {
		desc.Restitution = *patch.Restitution
	}
}

func ptr[T any](v T) *T {
	return &v
}
