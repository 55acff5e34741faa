package ecs

import "reflect"

// Component is a pending component value for CreateWith.
type Component interface {
	addTo(h Handle)
}

type pending[C any] struct {
	value C
}

func (p pending[C]) addTo(h Handle) {
	Add(h, p.value)
}

// With wraps a component value for CreateWith.
func With[C any](value C) Component {
	return pending[C]{value: value}
}

func storageOf[C any](idx *Index, create bool) *storage[C] {
	t := reflect.TypeFor[C]()
	k, ok := idx.kinds[t]
	if !ok {
		if !create {
			return nil
		}
		k = len(idx.stores)
		idx.kinds[t] = k
		s := &storage[C]{kind: k}
		idx.stores = append(idx.stores, s)
		return s
	}
	return idx.stores[k].(*storage[C])
}

// Add attaches value to the entity, or overwrites an existing component of
// the same type without firing callbacks. Adding to a dead entity panics.
func Add[C any](h Handle, value C) *C {
	t := h.table()
	if t == nil {
		panic("ecs: add component to missing entity")
	}
	s := storageOf[C](h.idx, true)
	if slot := t.get(s.kind); slot >= 0 {
		e := s.at(slot)
		e.data = value
		return &e.data
	}
	slot := s.push(h.id, value)
	t.set(s.kind, slot)
	e := s.at(slot)
	for _, f := range s.onAdd {
		f(h, &e.data)
	}
	return &e.data
}

// Remove detaches the component of type C, firing remove callbacks first.
// It is a no-op if the entity or component is absent.
func Remove[C any](h Handle) {
	t := h.table()
	if t == nil {
		return
	}
	s := storageOf[C](h.idx, false)
	if s == nil {
		return
	}
	slot := t.get(s.kind)
	if slot < 0 {
		return
	}
	s.removeAt(h, slot)
	t.set(s.kind, -1)
}

// Has reports whether the entity has a component of type C.
func Has[C any](idx *Index, id EntityID) bool {
	return Get[C](idx, id) != nil
}

// Get returns the entity's component of type C, or nil.
func Get[C any](idx *Index, id EntityID) *C {
	t, ok := idx.entities[id]
	if !ok {
		return nil
	}
	s := storageOf[C](idx, false)
	if s == nil {
		return nil
	}
	slot := t.get(s.kind)
	if slot < 0 {
		return nil
	}
	return &s.at(slot).data
}

// Iterate calls fn for every live component of type C in storage order. With
// includeNew false, components appended during the loop are skipped.
func Iterate[C any](idx *Index, fn func(Handle, *C), includeNew bool) {
	s := storageOf[C](idx, false)
	if s == nil {
		return
	}
	end := s.length
	for i := 0; ; i++ {
		if i >= s.length || (!includeNew && i >= end) {
			return
		}
		e := s.at(i)
		if !e.live {
			continue
		}
		fn(Handle{id: e.id, idx: idx}, &e.data)
	}
}

// Count returns the number of live components of type C.
func Count[C any](idx *Index) int {
	s := storageOf[C](idx, false)
	if s == nil {
		return 0
	}
	return s.count()
}

// OnAdd registers fn to run after a new component of type C is attached.
func OnAdd[C any](idx *Index, fn func(Handle, *C)) {
	s := storageOf[C](idx, true)
	s.onAdd = append(s.onAdd, fn)
}

// OnRemove registers fn to run before a component of type C is detached.
func OnRemove[C any](idx *Index, fn func(Handle, *C)) {
	s := storageOf[C](idx, true)
	s.onRemove = append(s.onRemove, fn)
}
