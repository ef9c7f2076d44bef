package scene

// Commands buffers deferred world mutations that are applied together at
// the end of a frame or editor action. Queuing during iteration and
// flushing afterward prevents structural changes while systems are still
// reading the indices.
type Commands struct {
	spawns   []spawnCommand
	destroys []Entity
	sets     []setComponentCommand
	removes  []removeComponentCommand
	parents  []setParentCommand
	defers   []func()
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	name       string
	components []ComponentEntry
}

type setComponentCommand struct {
	entity        Entity
	componentType string
	data          any
}

type removeComponentCommand struct {
	entity        Entity
	componentType string
}

type setParentCommand struct {
	child  Entity
	parent Entity
	detach bool
}

// Spawn queues creation of an entity with the given name and components.
func (c *Commands) Spawn(name string, components ...ComponentEntry) {
	c.spawns = append(c.spawns, spawnCommand{name: name, components: components})
}

// Destroy queues destruction of an entity.
func (c *Commands) Destroy(e Entity) {
	c.destroys = append(c.destroys, e)
}

// SetComponent queues attaching component data to an entity.
func (c *Commands) SetComponent(e Entity, componentType string, data any) {
	c.sets = append(c.sets, setComponentCommand{entity: e, componentType: componentType, data: data})
}

// RemoveComponent queues detaching a component type from an entity.
func (c *Commands) RemoveComponent(e Entity, componentType string) {
	c.removes = append(c.removes, removeComponentCommand{entity: e, componentType: componentType})
}

// SetParent queues a reparent. The cycle check runs at flush time against
// the hierarchy as it stands then.
func (c *Commands) SetParent(child, parent Entity) {
	c.parents = append(c.parents, setParentCommand{child: child, parent: parent})
}

// ClearParent queues detaching an entity from its parent.
func (c *Commands) ClearParent(child Entity) {
	c.parents = append(c.parents, setParentCommand{child: child, detach: true})
}

// Defer queues an arbitrary function, run after all structural commands.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.destroys) + len(c.sets) + len(c.removes) +
		len(c.parents) + len(c.defers)
}

// Flush applies all queued commands to the world and resets the buffer.
// Destroys run first; component and hierarchy commands that target an
// entity destroyed in the same flush are suppressed. Reparent errors do
// not stop the flush; the first one is returned after everything has been
// applied.
func (c *Commands) Flush(w *World) error {
	destroyed := make(map[Entity]bool)
	for _, e := range c.destroys {
		w.DestroyEntity(e)
		destroyed[e] = true
	}

	for _, cmd := range c.removes {
		if !destroyed[cmd.entity] {
			w.RemoveComponent(cmd.entity, cmd.componentType)
		}
	}

	for _, cmd := range c.sets {
		if !destroyed[cmd.entity] {
			w.SetComponent(cmd.entity, cmd.componentType, cmd.data)
		}
	}

	for _, cmd := range c.spawns {
		e := w.CreateEntity(cmd.name)
		for _, entry := range cmd.components {
			w.SetComponent(e, entry.Type, entry.Data)
		}
	}

	var firstErr error
	for _, cmd := range c.parents {
		if destroyed[cmd.child] {
			continue
		}
		if cmd.detach {
			w.ClearParent(cmd.child)
			continue
		}
		if destroyed[cmd.parent] {
			continue
		}
		if err := w.SetParent(cmd.child, cmd.parent); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.destroys = c.destroys[:0]
	c.sets = c.sets[:0]
	c.removes = c.removes[:0]
	c.parents = c.parents[:0]
	c.defers = c.defers[:0]

	return firstErr
}
