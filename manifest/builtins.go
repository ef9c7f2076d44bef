package manifest

// Component data types for the engine's core components. Field shapes
// mirror the scene file schema; zero values are filled by the manifests
// where the schema has non-zero defaults.

// TransformData positions an entity in its parent's space.
type TransformData struct {
	Position [3]float64
	Rotation [3]float64
	Scale    [3]float64
}

// MeshRendererData attaches a renderable mesh to an entity.
type MeshRendererData struct {
	MeshID         string
	Color          string
	Enabled        bool
	CastShadows    bool
	ReceiveShadows bool
}

// LightData attaches a light source to an entity.
type LightData struct {
	Kind        string
	Color       string
	Intensity   float64
	CastShadows bool
}

// RigidBodyData attaches a simulated physics body to an entity.
type RigidBodyData struct {
	BodyType string
	Mass     float64
}

// ColliderData attaches a collision shape to an entity.
type ColliderData struct {
	Shape       string
	Friction    float64
	Restitution float64
}

// TransformManifest declares the Transform component. It contributes
// nothing to rendering or physics descriptors; the combiner skips it.
type TransformManifest struct{}

func (TransformManifest) ComponentType() string { return "Transform" }

// MeshRendererManifest declares the MeshRenderer component and its
// rendering contribution.
type MeshRendererManifest struct{}

func (MeshRendererManifest) ComponentType() string { return "MeshRenderer" }

func (MeshRendererManifest) RenderingContribution(data any) RenderingPatch {
	d, ok := data.(MeshRendererData)
	if !ok {
		return RenderingPatch{}
	}
	patch := RenderingPatch{
		Visible:       ptr(d.Enabled),
		CastShadow:    ptr(d.CastShadows),
		ReceiveShadow: ptr(d.ReceiveShadows),
	}
	if d.MeshID != "" {
		patch.MeshID = ptr(d.MeshID)
	}
	if d.Color != "" {
		patch.Color = ptr(d.Color)
	}
	return patch
}

// LightManifest declares the Light component. Lights only affect whether
// the entity casts shadows.
type LightManifest struct{}

func (LightManifest) ComponentType() string { return "Light" }

func (LightManifest) RenderingContribution(data any) RenderingPatch {
	d, ok := data.(LightData)
	if !ok {
		return RenderingPatch{}
	}
	return RenderingPatch{
		CastShadow: ptr(d.CastShadows),
	}
}

// RigidBodyManifest declares the RigidBody component and its physics
// contribution. Attaching a body enables physics for the entity.
type RigidBodyManifest struct{}

func (RigidBodyManifest) ComponentType() string { return "RigidBody" }

func (RigidBodyManifest) PhysicsContribution(data any) PhysicsPatch {
	d, ok := data.(RigidBodyData)
	if !ok {
		return PhysicsPatch{}
	}
	patch := PhysicsPatch{
		Enabled: ptr(true),
	}
	if d.BodyType != "" {
		patch.BodyType = ptr(d.BodyType)
	}
	if d.Mass > 0 {
		patch.Mass = ptr(d.Mass)
	}
	return patch
}

// ColliderManifest declares the Collider component and its physics
// contribution. A collider enables physics and overrides the body's
// surface material.
type ColliderManifest struct{}

func (ColliderManifest) ComponentType() string { return "Collider" }

func (ColliderManifest) PhysicsContribution(data any) PhysicsPatch {
	d, ok := data.(ColliderData)
	if !ok {
		return PhysicsPatch{}
	}
	return PhysicsPatch{
		Enabled:     ptr(true),
		Friction:    ptr(d.Friction),
		Restitution: ptr(d.Restitution),
	}
}

// RegisterBuiltins registers the engine's core component manifests. The
// list is the compile-time equivalent of the scene schema: adding a
// component type means adding a manifest here.
func RegisterBuiltins(reg *Registry) {
	reg.Register(TransformManifest{})
	reg.Register(MeshRendererManifest{})
	reg.Register(LightManifest{})
	reg.Register(RigidBodyManifest{})
	reg.Register(ColliderManifest{})
}
