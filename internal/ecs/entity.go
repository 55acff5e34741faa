// Package ecs implements the entity-component index that owns all live
// simulation state. Components live in dense per-kind tables; entities are
// addressed through handles that re-resolve on every access, so they stay
// valid across removal and compaction.
package ecs

// EntityID identifies one game object slot. IDs increase monotonically and are
// not reused while the entity they name is alive.
type EntityID uint64

// table records, per component kind, the storage slot holding an entity's
// component, or -1 when the entity has no component of that kind.
type table struct {
	slots []int
}

func (t *table) get(kind int) int {
	if kind < len(t.slots) {
		return t.slots[kind]
	}
	return -1
}

func (t *table) set(kind, slot int) {
	for len(t.slots) <= kind {
		t.slots = append(t.slots, -1)
	}
	t.slots[kind] = slot
}

// Handle is an entity id bound to its index. Queries through a handle of a
// destroyed entity report "not found" rather than failing.
type Handle struct {
	id  EntityID
	idx *Index
}

// ID returns the entity id.
func (h Handle) ID() EntityID {
	return h.id
}

// Valid reports whether the entity still exists.
func (h Handle) Valid() bool {
	return h.idx != nil && h.idx.Contains(h.id)
}

// Index returns the index the handle belongs to.
func (h Handle) Index() *Index {
	return h.idx
}

// Destroy removes the entity and all of its components.
func (h Handle) Destroy() {
	if h.idx != nil {
		h.idx.Destroy(h.id)
	}
}

func (h Handle) table() *table {
	if h.idx == nil {
		return nil
	}
	return h.idx.entities[h.id]
}
