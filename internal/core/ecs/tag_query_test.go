package ecs

import (
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func newEntity(id uint32, tags ...string) *Entity {
	return NewEntity(NewEntityID(id, 0), "", tags...)
}

// go test -run ^TestCreateTagQueryID$ ./internal/core/ecs -count 1
func TestCreateTagQueryID(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
	}{
		{"single", []string{"enemy"}, []string{"enemy"}},
		{"pair", []string{"enemy", "boss"}, []string{"boss", "enemy"}},
		{"triple", []string{"c", "a", "b"}, []string{"b", "c", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if CreateTagQueryID(tt.a) != CreateTagQueryID(tt.b) {
				t.Errorf("expected equal ids for %v and %v", tt.a, tt.b)
			}
		})
	}

	if got := CreateTagQueryID([]string{"zeta", "alpha", "mid"}); got != "alpha-mid-zeta" {
		t.Errorf("expected alpha-mid-zeta, got %q", got)
	}
}

func TestCreateTagQueryIDDoesNotMutateInput(t *testing.T) {
	in := []string{"b", "a", "c"}
	CreateTagQueryID(in)
	if !reflect.DeepEqual(in, []string{"b", "a", "c"}) {
		t.Errorf("input was mutated: %v", in)
	}
}

func TestCreateTagQueryIDAllPermutations(t *testing.T) {
	tags := []string{"a", "b", "c", "d"}
	want := CreateTagQueryID(tags)
	var permute func(prefix, rest []string)
	permute = func(prefix, rest []string) {
		if len(rest) == 0 {
			if got := CreateTagQueryID(prefix); got != want {
				t.Errorf("permutation %v: expected %q, got %q", prefix, want, got)
			}
			return
		}
		for i := range rest {
			next := slices.Clone(rest)
			next = slices.Delete(next, i, i+1)
			permute(append(slices.Clone(prefix), rest[i]), next)
		}
	}
	permute(nil, tags)
}

func TestNewTagQueryRequiresTags(t *testing.T) {
	q, err := NewTagQuery()
	if !errors.Is(err, ErrNoTags) {
		t.Fatalf("expected ErrNoTags, got %v", err)
	}
	if q != nil {
		t.Error("expected nil query on error")
	}
}

func TestNewTagQueryCollapsesDuplicates(t *testing.T) {
	tests := []struct {
		in       []string
		distinct int
	}{
		{[]string{"a"}, 1},
		{[]string{"a", "a"}, 1},
		{[]string{"b", "a", "b", "c", "a"}, 3},
	}
	for _, tt := range tests {
		q, err := NewTagQuery(tt.in...)
		if err != nil {
			t.Fatalf("NewTagQuery(%v): %v", tt.in, err)
		}
		if got := len(q.Tags()); got != tt.distinct {
			t.Errorf("NewTagQuery(%v): expected %d tags, got %d", tt.in, tt.distinct, got)
		}
		if !reflect.DeepEqual(q.RequiredTags(), tt.in) {
			t.Errorf("expected required tags %v, got %v", tt.in, q.RequiredTags())
		}
	}
}

func TestTagQueriesWithSameSetShareID(t *testing.T) {
	q1, _ := NewTagQuery("player", "visible")
	q2, _ := NewTagQuery("visible", "player")
	if q1.ID() != q2.ID() {
		t.Errorf("expected equal ids, got %q and %q", q1.ID(), q2.ID())
	}
}

func TestCheckAndAdd(t *testing.T) {
	q, _ := NewTagQuery("a", "b")
	added := 0
	q.EntityAdded.Subscribe(func(*Entity) { added++ })

	e := newEntity(1, "a", "b", "c")
	if !q.CheckAndAdd(e) {
		t.Fatal("expected entity with all tags to be admitted")
	}
	if q.CheckAndAdd(e) {
		t.Error("expected second CheckAndAdd to return false")
	}
	if added != 1 {
		t.Errorf("expected 1 added notification, got %d", added)
	}
	count := 0
	for _, got := range q.Entities(nil) {
		if got == e {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected entity exactly once, got %d", count)
	}
}

func TestCheckAndAddRejectsMissingTag(t *testing.T) {
	q, _ := NewTagQuery("a", "b")
	added := 0
	q.EntityAdded.Subscribe(func(*Entity) { added++ })

	e := newEntity(1, "a")
	if q.CheckAndAdd(e) {
		t.Error("expected entity missing a tag to be rejected")
	}
	if q.Len() != 0 || added != 0 {
		t.Errorf("expected no mutation, got len=%d added=%d", q.Len(), added)
	}
}

func TestRemoveEntity(t *testing.T) {
	q, _ := NewTagQuery("a")
	removed := 0
	q.EntityRemoved.Subscribe(func(*Entity) { removed++ })

	e1, e2, e3 := newEntity(1, "a"), newEntity(2, "a"), newEntity(3, "a")
	q.CheckAndAdd(e1)
	q.CheckAndAdd(e2)
	q.CheckAndAdd(e3)

	q.RemoveEntity(e2)
	if q.Has(e2) {
		t.Error("expected e2 to be evicted")
	}
	if got := q.Entities(nil); !reflect.DeepEqual(got, []*Entity{e1, e3}) {
		t.Errorf("expected remaining order [e1 e3], got %v", got)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed notification, got %d", removed)
	}

	q.RemoveEntity(e2)
	q.RemoveEntity(newEntity(9, "a"))
	if removed != 1 {
		t.Errorf("expected no further notification, got %d", removed)
	}
}

func TestEntitiesIsLiveAndSortsInPlace(t *testing.T) {
	q, _ := NewTagQuery("a")
	b := NewEntity(NewEntityID(1, 0), "b", "a")
	c := NewEntity(NewEntityID(2, 0), "c", "a")
	a := NewEntity(NewEntityID(3, 0), "a", "a")
	q.CheckAndAdd(b)
	q.CheckAndAdd(c)
	q.CheckAndAdd(a)

	byName := func(x, y *Entity) int { return strings.Compare(x.Name(), y.Name()) }
	sorted := q.Entities(byName)
	if got := []string{sorted[0].Name(), sorted[1].Name(), sorted[2].Name()}; !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("expected sorted [a b c], got %v", got)
	}

	// The sort is visible through later unsorted calls.
	if q.Entities(nil)[0] != a {
		t.Error("expected in-place sort to persist")
	}
}

func TestHasTag(t *testing.T) {
	q, _ := NewTagQuery("b", "a")
	if !q.HasTag("a") || !q.HasTag("b") || q.HasTag("c") {
		t.Errorf("unexpected HasTag results for tags %v", q.Tags())
	}
}
