package manifest_test

import (
	"testing"

	"github.com/plus3/scenecore/manifest"
	"github.com/stretchr/testify/assert"
)

func newBuiltinRegistry() *manifest.Registry {
	reg := manifest.NewRegistry()
	manifest.RegisterBuiltins(reg)
	return reg
}

func TestCombineRenderingDefaults(t *testing.T) {
	reg := newBuiltinRegistry()

	desc := manifest.CombineRendering(reg, nil)

	assert.True(t, desc.Visible)
	assert.True(t, desc.CastShadow)
	assert.True(t, desc.ReceiveShadow)
	assert.Equal(t, "#cccccc", desc.Material.Color)
}

func TestCombineRenderingMeshRenderer(t *testing.T) {
	reg := newBuiltinRegistry()

	desc := manifest.CombineRendering(reg, []manifest.Source{
		{ComponentType: "MeshRenderer", Data: manifest.MeshRendererData{
			MeshID:         "cube",
			Color:          "#ff0000",
			Enabled:        true,
			CastShadows:    true,
			ReceiveShadows: false,
		}},
	})

	assert.True(t, desc.Visible)
	assert.True(t, desc.CastShadow)
	assert.False(t, desc.ReceiveShadow)
	assert.Equal(t, "cube", desc.MeshID)
	assert.Equal(t, "#ff0000", desc.Material.Color)
}

func TestCombineRenderingSkipsNonContributors(t *testing.T) {
	reg := newBuiltinRegistry()

	// Transform has no rendering capability and an unregistered type has
	// no manifest at all; neither may disturb the accumulator.
	desc := manifest.CombineRendering(reg, []manifest.Source{
		{ComponentType: "MeshRenderer", Data: manifest.MeshRendererData{
			Enabled: true, CastShadows: true, ReceiveShadows: true, Color: "#00ff00",
		}},
		{ComponentType: "Transform", Data: manifest.TransformData{}},
		{ComponentType: "Script", Data: "ignored"},
	})

	assert.True(t, desc.Visible)
	assert.Equal(t, "#00ff00", desc.Material.Color)
}

func TestCombineRenderingFieldByFieldOverride(t *testing.T) {
	reg := newBuiltinRegistry()

	// The later light overrides CastShadow only; the renderer's color and
	// visibility survive.
	desc := manifest.CombineRendering(reg, []manifest.Source{
		{ComponentType: "MeshRenderer", Data: manifest.MeshRendererData{
			Enabled: true, CastShadows: true, ReceiveShadows: true, Color: "#0000ff",
		}},
		{ComponentType: "Light", Data: manifest.LightData{CastShadows: false}},
	})

	assert.True(t, desc.Visible)
	assert.False(t, desc.CastShadow)
	assert.Equal(t, "#0000ff", desc.Material.Color)
}

func TestCombineRenderingWrongDataType(t *testing.T) {
	reg := newBuiltinRegistry()

	// Mistyped data yields an empty patch, never a panic.
	desc := manifest.CombineRendering(reg, []manifest.Source{
		{ComponentType: "MeshRenderer", Data: 42},
	})

	assert.Equal(t, manifest.DefaultRenderingDescriptor(), desc)
}

func TestCombinePhysicsDefaultsDisabled(t *testing.T) {
	reg := newBuiltinRegistry()

	t.Run("no sources", func(t *testing.T) {
		desc := manifest.CombinePhysics(reg, nil)
		assert.False(t, desc.Enabled)
	})

	t.Run("no physics-contributing sources", func(t *testing.T) {
		desc := manifest.CombinePhysics(reg, []manifest.Source{
			{ComponentType: "Transform", Data: manifest.TransformData{}},
			{ComponentType: "MeshRenderer", Data: manifest.MeshRendererData{Enabled: true}},
		})
		assert.False(t, desc.Enabled)
	})
}

func TestCombinePhysicsRigidBodyAndCollider(t *testing.T) {
	reg := newBuiltinRegistry()

	desc := manifest.CombinePhysics(reg, []manifest.Source{
		{ComponentType: "RigidBody", Data: manifest.RigidBodyData{BodyType: "static", Mass: 5}},
		{ComponentType: "Collider", Data: manifest.ColliderData{Friction: 0.2, Restitution: 0.9}},
	})

	assert.True(t, desc.Enabled)
	assert.Equal(t, "static", desc.BodyType)
	assert.Equal(t, 5.0, desc.Mass)
	assert.Equal(t, 0.2, desc.Friction)
	assert.Equal(t, 0.9, desc.Restitution)
}

func TestRegistry(t *testing.T) {
	reg := newBuiltinRegistry()

	m, ok := reg.Get("Transform")
	assert.True(t, ok)
	assert.Equal(t, "Transform", m.ComponentType())

	_, ok = reg.Get("Script")
	assert.False(t, ok)

	assert.ElementsMatch(t,
		[]string{"Transform", "MeshRenderer", "Light", "RigidBody", "Collider"},
		reg.Types())
}
