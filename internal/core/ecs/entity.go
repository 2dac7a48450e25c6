package ecs

import (
	"fmt"
	"slices"
)

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale refs.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }

func (id EntityID) String() string {
	return fmt.Sprintf("%d#%d", id.Index(), id.Generation())
}

// EntityPool manages entity allocation with generational indices and a free list.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

func (p *EntityPool) Create() EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	p.generations = append(p.generations, 0)
	return NewEntityID(idx, 0)
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		return // already destroyed (stale reference)
	}
	idx := id.Index()
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}

// tagObserver is told about tag changes so it can keep tag queries current.
type tagObserver interface {
	tagAdded(e *Entity, tag string)
	tagRemoved(e *Entity, tag string)
}

// Entity is a tagged simulation object. Its pointer is its identity for
// tag-query membership; ID is the handle used by component stores.
type Entity struct {
	id          EntityID
	name        string
	tags        map[string]struct{}
	observer    tagObserver
	initialized bool
	killed      bool
}

// NewEntity creates a detached entity. Entities created through a World are
// attached to its query manager instead.
func NewEntity(id EntityID, name string, tags ...string) *Entity {
	e := &Entity{
		id:   id,
		name: name,
		tags: make(map[string]struct{}, len(tags)),
	}
	for _, t := range tags {
		e.tags[t] = struct{}{}
	}
	return e
}

func (e *Entity) ID() EntityID   { return e.id }
func (e *Entity) Name() string   { return e.name }
func (e *Entity) IsKilled() bool { return e.killed }

func (e *Entity) String() string {
	if e.name == "" {
		return e.id.String()
	}
	return e.name + "(" + e.id.String() + ")"
}

// AddTag attaches tag. Adding a tag the entity already has does nothing.
func (e *Entity) AddTag(tag string) {
	if _, ok := e.tags[tag]; ok {
		return
	}
	e.tags[tag] = struct{}{}
	if e.observer != nil {
		e.observer.tagAdded(e, tag)
	}
}

// RemoveTag detaches tag. Removing a missing tag does nothing.
func (e *Entity) RemoveTag(tag string) {
	if _, ok := e.tags[tag]; !ok {
		return
	}
	delete(e.tags, tag)
	if e.observer != nil {
		e.observer.tagRemoved(e, tag)
	}
}

func (e *Entity) HasTag(tag string) bool {
	_, ok := e.tags[tag]
	return ok
}

// HasAllTags reports whether every tag in tags is attached.
func (e *Entity) HasAllTags(tags []string) bool {
	for _, t := range tags {
		if _, ok := e.tags[t]; !ok {
			return false
		}
	}
	return true
}

// Tags returns the attached tags, sorted.
func (e *Entity) Tags() []string {
	out := make([]string, 0, len(e.tags))
	for t := range e.tags {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
