package scene_test

import (
	"testing"

	"github.com/plus3/scenecore/scene"
	"github.com/stretchr/testify/assert"
)

func TestComponentIndexAddRemove(t *testing.T) {
	idx := scene.NewComponentIndex()

	idx.OnAdd("Transform", 1)
	assert.True(t, idx.Has("Transform", 1))
	assert.Contains(t, idx.List("Transform"), scene.Entity(1))
	assert.Equal(t, 1, idx.Count("Transform"))

	idx.OnRemove("Transform", 1)
	assert.False(t, idx.Has("Transform", 1))
	assert.Empty(t, idx.List("Transform"))
}

func TestComponentIndexIdempotentAdd(t *testing.T) {
	idx := scene.NewComponentIndex()

	idx.OnAdd("Transform", 1)
	idx.OnAdd("Transform", 1)

	assert.Equal(t, 1, idx.Count("Transform"))
	assert.Equal(t, 1, idx.TotalComponentCount())
}

func TestComponentIndexRemoveNonMember(t *testing.T) {
	idx := scene.NewComponentIndex()

	// Removing from an unknown type and a known type must both be no-ops.
	idx.OnRemove("Transform", 1)
	idx.OnAdd("Transform", 2)
	idx.OnRemove("Transform", 1)

	assert.Equal(t, 1, idx.Count("Transform"))
}

func TestComponentIndexPrunesEmptyTypes(t *testing.T) {
	idx := scene.NewComponentIndex()

	idx.OnAdd("Transform", 1)
	idx.OnAdd("Light", 1)
	idx.OnRemove("Light", 1)

	assert.Equal(t, []string{"Transform"}, idx.ComponentTypes())
}

func TestComponentIndexEmptyStringType(t *testing.T) {
	idx := scene.NewComponentIndex()

	// The empty string is an ordinary type key.
	idx.OnAdd("", 7)
	assert.True(t, idx.Has("", 7))
	assert.Contains(t, idx.ComponentTypes(), "")
}

func TestComponentIndexTotalCount(t *testing.T) {
	idx := scene.NewComponentIndex()

	idx.OnAdd("Transform", 1)
	idx.OnAdd("Transform", 2)
	idx.OnAdd("MeshRenderer", 1)

	assert.Equal(t, 3, idx.TotalComponentCount())
}

func TestListWithAllComponents(t *testing.T) {
	idx := scene.NewComponentIndex()

	idx.OnAdd("Transform", 1)
	idx.OnAdd("Transform", 2)
	idx.OnAdd("Transform", 3)
	idx.OnAdd("MeshRenderer", 2)
	idx.OnAdd("MeshRenderer", 3)
	idx.OnAdd("RigidBody", 3)

	t.Run("intersection", func(t *testing.T) {
		result := idx.ListWithAllComponents([]string{"Transform", "MeshRenderer"})
		assert.ElementsMatch(t, []scene.Entity{2, 3}, result)
	})

	t.Run("order independent", func(t *testing.T) {
		a := idx.ListWithAllComponents([]string{"Transform", "MeshRenderer", "RigidBody"})
		b := idx.ListWithAllComponents([]string{"RigidBody", "MeshRenderer", "Transform"})
		assert.ElementsMatch(t, a, b)
		assert.ElementsMatch(t, []scene.Entity{3}, a)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		assert.Empty(t, idx.ListWithAllComponents(nil))
		assert.Empty(t, idx.ListWithAllComponents([]string{}))
	})

	t.Run("unknown type empties the intersection", func(t *testing.T) {
		assert.Empty(t, idx.ListWithAllComponents([]string{"Transform", "Script"}))
	})

	t.Run("duplicate types", func(t *testing.T) {
		result := idx.ListWithAllComponents([]string{"RigidBody", "RigidBody"})
		assert.ElementsMatch(t, []scene.Entity{3}, result)
	})
}

func TestListWithAnyComponent(t *testing.T) {
	idx := scene.NewComponentIndex()

	idx.OnAdd("Transform", 1)
	idx.OnAdd("MeshRenderer", 2)
	idx.OnAdd("MeshRenderer", 3)

	t.Run("union", func(t *testing.T) {
		result := idx.ListWithAnyComponent([]string{"Transform", "MeshRenderer"})
		assert.ElementsMatch(t, []scene.Entity{1, 2, 3}, result)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		assert.Empty(t, idx.ListWithAnyComponent(nil))
	})

	t.Run("unknown types contribute nothing", func(t *testing.T) {
		result := idx.ListWithAnyComponent([]string{"Script", "Transform"})
		assert.ElementsMatch(t, []scene.Entity{1}, result)
	})
}

func TestComponentIndexRemoveEntity(t *testing.T) {
	idx := scene.NewComponentIndex()

	idx.OnAdd("Transform", 1)
	idx.OnAdd("MeshRenderer", 1)
	idx.OnAdd("Transform", 2)

	idx.RemoveEntity(1)

	assert.False(t, idx.Has("Transform", 1))
	assert.False(t, idx.Has("MeshRenderer", 1))
	assert.True(t, idx.Has("Transform", 2))
	// MeshRenderer lost its last member and must be pruned.
	assert.Equal(t, []string{"Transform"}, idx.ComponentTypes())
}

func TestComponentIndexClear(t *testing.T) {
	idx := scene.NewComponentIndex()

	idx.OnAdd("Transform", 1)
	idx.Clear()

	assert.Empty(t, idx.ComponentTypes())
	assert.Equal(t, 0, idx.TotalComponentCount())
}

func BenchmarkListWithAllComponents(b *testing.B) {
	idx := scene.NewComponentIndex()

	// One common component, one rare one. The query should pay for the
	// rare population, not the common one.
	for i := 0; i < 100000; i++ {
		idx.OnAdd("Transform", scene.Entity(i))
	}
	for i := 0; i < 100; i++ {
		idx.OnAdd("RigidBody", scene.Entity(i*1000))
	}

	types := []string{"Transform", "RigidBody"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx.ListWithAllComponents(types)
	}
}
