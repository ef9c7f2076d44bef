package scene

import "github.com/kamstrup/intmap"

// HierarchyIndex tracks parent/child relationships among entity handles.
// Each entity has at most one parent; an entity with no parent is a root.
// The child->parent map and the cached parent->children sets always agree.
//
// The index is a mechanism, not an enforcement point: SetParent applies
// whatever it is given, and WouldCreateCycle only reports risk. Callers
// that must keep the forest acyclic check before mutating (World does).
type HierarchyIndex struct {
	parents  *intmap.Map[Entity, Entity]
	children map[Entity]map[Entity]struct{}
}

// NewHierarchyIndex creates an empty hierarchy index.
func NewHierarchyIndex() *HierarchyIndex {
	return &HierarchyIndex{
		parents:  intmap.New[Entity, Entity](256),
		children: make(map[Entity]map[Entity]struct{}),
	}
}

// SetParent attaches child under parent. If the child already has a
// different parent it is detached from the old parent's child set first,
// so the old parent never retains a stale reference.
func (x *HierarchyIndex) SetParent(child, parent Entity) {
	x.detach(child)

	x.parents.Put(child, parent)
	set, ok := x.children[parent]
	if !ok {
		set = make(map[Entity]struct{})
		x.children[parent] = set
	}
	set[child] = struct{}{}
}

// ClearParent detaches the child from its parent entirely, making it a
// root. Detaching a root is a no-op.
func (x *HierarchyIndex) ClearParent(child Entity) {
	x.detach(child)
}

// detach removes the child from its current parent's child set, pruning
// the set if it becomes empty.
func (x *HierarchyIndex) detach(child Entity) {
	parent, ok := x.parents.Get(child)
	if !ok {
		return
	}
	x.parents.Del(child)

	set := x.children[parent]
	delete(set, child)
	if len(set) == 0 {
		delete(x.children, parent)
	}
}

// Parent returns the child's parent, if it has one.
func (x *HierarchyIndex) Parent(child Entity) (Entity, bool) {
	return x.parents.Get(child)
}

// Children returns the direct children of the entity, in unspecified order.
func (x *HierarchyIndex) Children(parent Entity) []Entity {
	set := x.children[parent]
	children := make([]Entity, 0, len(set))
	for c := range set {
		children = append(children, c)
	}
	return children
}

// HasChildren reports whether the entity has at least one direct child.
func (x *HierarchyIndex) HasChildren(e Entity) bool {
	return len(x.children[e]) > 0
}

// ChildrenCount returns the number of direct children of the entity.
func (x *HierarchyIndex) ChildrenCount(e Entity) int {
	return len(x.children[e])
}

// RootEntities returns the entities from the given set that have no
// parent, or whose parent lies outside the set.
func (x *HierarchyIndex) RootEntities(all []Entity) []Entity {
	inSet := make(map[Entity]struct{}, len(all))
	for _, e := range all {
		inSet[e] = struct{}{}
	}

	roots := make([]Entity, 0, len(all))
	for _, e := range all {
		parent, ok := x.parents.Get(e)
		if !ok {
			roots = append(roots, e)
			continue
		}
		if _, member := inSet[parent]; !member {
			roots = append(roots, e)
		}
	}
	return roots
}

// Descendants returns every transitive child of the entity exactly once,
// discovered breadth-first. The entity itself is not included.
func (x *HierarchyIndex) Descendants(e Entity) []Entity {
	var descendants []Entity
	queue := x.Children(e)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		descendants = append(descendants, current)
		queue = append(queue, x.Children(current)...)
	}
	return descendants
}

// WouldCreateCycle reports whether attaching candidateChild under
// candidateParent would make an entity its own ancestor. It walks the
// ancestor chain upward from candidateParent looking for candidateChild;
// self-parenting always counts as a cycle.
//
// A visited guard terminates the walk even if the stored hierarchy already
// contains a cycle, which can happen because SetParent does not validate.
func (x *HierarchyIndex) WouldCreateCycle(candidateChild, candidateParent Entity) bool {
	if candidateChild == candidateParent {
		return true
	}

	visited := map[Entity]struct{}{candidateParent: {}}
	current := candidateParent
	for {
		parent, ok := x.parents.Get(current)
		if !ok {
			return false
		}
		if parent == candidateChild {
			return true
		}
		if _, seen := visited[parent]; seen {
			return false
		}
		visited[parent] = struct{}{}
		current = parent
	}
}

// RemoveEntity detaches the entity from its own parent and orphans all of
// its direct children. The children become roots; they are not re-parented
// to the removed entity's former parent.
func (x *HierarchyIndex) RemoveEntity(e Entity) {
	x.detach(e)

	for c := range x.children[e] {
		x.parents.Del(c)
	}
	delete(x.children, e)
}

// Clear removes all parent/child relationships.
func (x *HierarchyIndex) Clear() {
	x.parents.Clear()
	x.children = make(map[Entity]map[Entity]struct{})
}
