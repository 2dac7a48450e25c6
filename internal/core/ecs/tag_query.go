package ecs

import (
	"errors"
	"slices"
	"strings"
)

// ErrNoTags is returned when a tag query is built without tags. Such a query
// would match every entity.
var ErrNoTags = errors.New("ecs: tag query needs at least one tag")

// CreateTagQueryID returns the identity of a tag set: the tags sorted
// lexicographically and joined by "-". tags is not modified.
func CreateTagQueryID(tags []string) string {
	sorted := slices.Clone(tags)
	slices.Sort(sorted)
	return strings.Join(sorted, "-")
}

// TagQuery is an incrementally maintained index of the entities holding all
// of its required tags. It never rescans: admission happens only through
// CheckAndAdd and eviction only through RemoveEntity.
type TagQuery struct {
	id           string
	requiredTags []string
	tags         []string // deduplicated, sorted
	entities     []*Entity
	members      map[*Entity]struct{}

	// EntityAdded fires right after an entity is admitted.
	EntityAdded Observable[*Entity]
	// EntityRemoved fires right after an entity is evicted.
	EntityRemoved Observable[*Entity]
}

func NewTagQuery(requiredTags ...string) (*TagQuery, error) {
	if len(requiredTags) == 0 {
		return nil, ErrNoTags
	}
	tags := slices.Clone(requiredTags)
	slices.Sort(tags)
	return &TagQuery{
		id:           CreateTagQueryID(requiredTags),
		requiredTags: slices.Clone(requiredTags),
		tags:         slices.Compact(tags),
		entities:     make([]*Entity, 0, 64),
		members:      make(map[*Entity]struct{}, 64),
	}, nil
}

func (q *TagQuery) ID() string { return q.id }

// RequiredTags returns the tags as supplied at construction.
func (q *TagQuery) RequiredTags() []string {
	return slices.Clone(q.requiredTags)
}

// Tags returns the distinct required tags, sorted.
func (q *TagQuery) Tags() []string {
	return slices.Clone(q.tags)
}

// HasTag reports whether tag is one of the required tags.
func (q *TagQuery) HasTag(tag string) bool {
	_, ok := slices.BinarySearch(q.tags, tag)
	return ok
}

// CheckAndAdd admits e if it is not yet a member and holds every required
// tag. It reports whether e was admitted by this call.
func (q *TagQuery) CheckAndAdd(e *Entity) bool {
	if _, ok := q.members[e]; ok {
		return false
	}
	if !e.HasAllTags(q.tags) {
		return false
	}
	q.members[e] = struct{}{}
	q.entities = append(q.entities, e)
	q.EntityAdded.NotifyAll(e)
	return true
}

// RemoveEntity evicts e, keeping the order of the remaining members.
// Evicting a non-member is a no-op.
func (q *TagQuery) RemoveEntity(e *Entity) {
	if _, ok := q.members[e]; !ok {
		return
	}
	delete(q.members, e)
	if i := slices.Index(q.entities, e); i >= 0 {
		q.entities = slices.Delete(q.entities, i, i+1)
	}
	q.EntityRemoved.NotifyAll(e)
}

// Entities returns the live member slice, not a copy. A non-nil cmp sorts it
// in place (stable) first, which reorders it for every other caller too.
func (q *TagQuery) Entities(cmp func(a, b *Entity) int) []*Entity {
	if cmp != nil {
		slices.SortStableFunc(q.entities, cmp)
	}
	return q.entities
}

// Has reports whether e is currently a member.
func (q *TagQuery) Has(e *Entity) bool {
	_, ok := q.members[e]
	return ok
}

func (q *TagQuery) Len() int {
	return len(q.entities)
}
