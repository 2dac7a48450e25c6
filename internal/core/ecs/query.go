package ecs

// Each2 iterates over entities that have both component A and B, in the
// insertion order of the smaller store.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		sa.Each(func(id EntityID, a *A) {
			if b, ok := sb.Get(id); ok {
				fn(id, a, b)
			}
		})
		return
	}
	sb.Each(func(id EntityID, b *B) {
		if a, ok := sa.Get(id); ok {
			fn(id, a, b)
		}
	})
}

// Each3 iterates over entities that have components A, B, and C, driven by
// the smallest store.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	join := func(id EntityID) {
		a, ok := sa.Get(id)
		if !ok {
			return
		}
		b, ok := sb.Get(id)
		if !ok {
			return
		}
		c, ok := sc.Get(id)
		if !ok {
			return
		}
		fn(id, a, b, c)
	}

	switch {
	case sa.Len() <= sb.Len() && sa.Len() <= sc.Len():
		for _, id := range sa.ids {
			join(id)
		}
	case sb.Len() <= sc.Len():
		for _, id := range sb.ids {
			join(id)
		}
	default:
		for _, id := range sc.ids {
			join(id)
		}
	}
}

// EachTagged walks the members of q that have component T.
func EachTagged[T any](q *TagQuery, s *Store[T], fn func(*Entity, *T)) {
	for _, e := range q.Entities(nil) {
		if c, ok := s.Get(e.ID()); ok {
			fn(e, c)
		}
	}
}
