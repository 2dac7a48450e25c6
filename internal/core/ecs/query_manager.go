package ecs

import (
	"fmt"
	"slices"
)

// QueryManager owns the tag queries of a world, one per distinct tag set,
// and pushes entity membership changes into them.
type QueryManager struct {
	queries  map[string]*TagQuery
	order    []*TagQuery
	entities []*Entity
}

func NewQueryManager() *QueryManager {
	return &QueryManager{
		queries:  make(map[string]*TagQuery, 16),
		order:    make([]*TagQuery, 0, 16),
		entities: make([]*Entity, 0, 256),
	}
}

// TagQuery returns the query for tags, creating it on first request. A new
// query is filled once from the entities the manager already tracks.
func (m *QueryManager) TagQuery(tags ...string) (*TagQuery, error) {
	id := CreateTagQueryID(tags)
	if q, ok := m.queries[id]; ok {
		return q, nil
	}
	q, err := NewTagQuery(tags...)
	if err != nil {
		return nil, fmt.Errorf("create tag query %q: %w", id, err)
	}
	for _, e := range m.entities {
		q.CheckAndAdd(e)
	}
	m.queries[id] = q
	m.order = append(m.order, q)
	return q, nil
}

// Lookup returns an existing query by id.
func (m *QueryManager) Lookup(id string) (*TagQuery, bool) {
	q, ok := m.queries[id]
	return q, ok
}

// Queries returns every query in creation order.
func (m *QueryManager) Queries() []*TagQuery {
	return slices.Clone(m.order)
}

// AddEntity starts tracking e and offers it to every query.
func (m *QueryManager) AddEntity(e *Entity) {
	if e.observer == tagObserver(m) {
		return
	}
	e.observer = m
	m.entities = append(m.entities, e)
	for _, q := range m.order {
		q.CheckAndAdd(e)
	}
}

// RemoveEntity stops tracking e and evicts it from every query.
func (m *QueryManager) RemoveEntity(e *Entity) {
	if e.observer != tagObserver(m) {
		return
	}
	e.observer = nil
	if i := slices.Index(m.entities, e); i >= 0 {
		m.entities = slices.Delete(m.entities, i, i+1)
	}
	for _, q := range m.order {
		q.RemoveEntity(e)
	}
}

func (m *QueryManager) tagAdded(e *Entity, _ string) {
	for _, q := range m.order {
		q.CheckAndAdd(e)
	}
}

func (m *QueryManager) tagRemoved(e *Entity, tag string) {
	for _, q := range m.order {
		if q.HasTag(tag) {
			q.RemoveEntity(e)
		}
	}
}
