package ecs

// chunkSize is the number of entries per storage chunk. Entries never move
// when the storage grows, only when it is compacted.
const chunkSize = 64

type entry[C any] struct {
	id   EntityID
	live bool
	data C
}

// storage is the dense table for one component kind.
type storage[C any] struct {
	kind     int
	size     int // live entries
	length   int // entries including holes
	chunks   [][]entry[C]
	onAdd    []func(Handle, *C)
	onRemove []func(Handle, *C)
}

// storageBase lets the index operate on every component kind without knowing its type.
type storageBase interface {
	removeAt(h Handle, slot int)
	compact(idx *Index)
	copyInto(dst *Index) storageBase
	count() int
}

func (s *storage[C]) at(i int) *entry[C] {
	return &s.chunks[i/chunkSize][i%chunkSize]
}

func (s *storage[C]) push(id EntityID, data C) int {
	if s.length == len(s.chunks)*chunkSize {
		s.chunks = append(s.chunks, make([]entry[C], chunkSize))
	}
	i := s.length
	*s.at(i) = entry[C]{id: id, live: true, data: data}
	s.length++
	s.size++
	return i
}

func (s *storage[C]) removeAt(h Handle, slot int) {
	e := s.at(slot)
	if !e.live {
		return
	}
	for _, f := range s.onRemove {
		f(h, &e.data)
	}
	var zero C
	e.data = zero
	e.live = false
	s.size--
}

// compact moves live entries to the front in order, rewrites each owner's
// slot and drops trailing holes.
func (s *storage[C]) compact(idx *Index) {
	w := 0
	for r := 0; r < s.length; r++ {
		e := s.at(r)
		if !e.live {
			continue
		}
		if r != w {
			*s.at(w) = *e
			if t, ok := idx.entities[e.id]; ok {
				t.set(s.kind, w)
			}
		}
		w++
	}
	for i := w; i < s.length; i++ {
		*s.at(i) = entry[C]{}
	}
	s.length = w
	s.chunks = s.chunks[:(w+chunkSize-1)/chunkSize]
}

func (s *storage[C]) copyInto(dst *Index) storageBase {
	c := &storage[C]{kind: s.kind}
	for i := 0; i < s.length; i++ {
		e := s.at(i)
		if !e.live {
			continue
		}
		slot := c.push(e.id, e.data)
		dst.entities[e.id].set(s.kind, slot)
	}
	return c
}

func (s *storage[C]) count() int {
	return s.size
}
