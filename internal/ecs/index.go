package ecs

import "reflect"

// Index owns every entity and component of one simulation. It is not safe for
// concurrent use.
type Index struct {
	nextID   EntityID
	entities map[EntityID]*table
	kinds    map[reflect.Type]int
	stores   []storageBase
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		entities: make(map[EntityID]*table),
		kinds:    make(map[reflect.Type]int),
	}
}

// Create allocates a new entity with no components.
func (idx *Index) Create() Handle {
	for {
		id := idx.nextID
		idx.nextID++
		if _, used := idx.entities[id]; used {
			continue
		}
		idx.entities[id] = &table{}
		return Handle{id: id, idx: idx}
	}
}

// CreateWith allocates an entity and adds the given components in order.
func (idx *Index) CreateWith(components ...Component) Handle {
	h := idx.Create()
	for _, c := range components {
		c.addTo(h)
	}
	return h
}

// Destroy runs remove callbacks for each component of the entity, then
// forgets the entity. Unknown ids are ignored.
func (idx *Index) Destroy(id EntityID) {
	t, ok := idx.entities[id]
	if !ok {
		return
	}
	h := Handle{id: id, idx: idx}
	for kind := 0; kind < len(t.slots); kind++ {
		slot := t.slots[kind]
		if slot < 0 {
			continue
		}
		idx.stores[kind].removeAt(h, slot)
		t.slots[kind] = -1
	}
	delete(idx.entities, id)
}

// Contains reports whether id names a live entity.
func (idx *Index) Contains(id EntityID) bool {
	_, ok := idx.entities[id]
	return ok
}

// Get returns a handle for a live entity.
func (idx *Index) Get(id EntityID) (Handle, bool) {
	if !idx.Contains(id) {
		return Handle{}, false
	}
	return Handle{id: id, idx: idx}, true
}

// Handle binds id to the index without checking that it is alive.
func (idx *Index) Handle(id EntityID) Handle {
	return Handle{id: id, idx: idx}
}

// Size returns the number of live entities.
func (idx *Index) Size() int {
	return len(idx.entities)
}

// Compact packs every component storage, removing the holes left by removed
// components. Raw component pointers obtained before Compact are invalid
// afterwards. Must not be called from inside Iterate.
func (idx *Index) Compact() {
	for _, s := range idx.stores {
		s.compact(idx)
	}
}

// Copy returns a deep copy of all live entities and components. Callbacks are
// not copied.
func (idx *Index) Copy() *Index {
	c := &Index{
		nextID:   idx.nextID,
		entities: make(map[EntityID]*table, len(idx.entities)),
		kinds:    make(map[reflect.Type]int, len(idx.kinds)),
		stores:   make([]storageBase, 0, len(idx.stores)),
	}
	for t, k := range idx.kinds {
		c.kinds[t] = k
	}
	for id := range idx.entities {
		c.entities[id] = &table{}
	}
	for _, s := range idx.stores {
		c.stores = append(c.stores, s.copyInto(c))
	}
	return c
}
