package vizstate

import (
	"slices"
	"testing"
)

func TestTagString(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{TagSelected, "selected"},
		{TagHovered, "hovered"},
		{TagOnActivePath, "on-active-path"},
		{TagSearchMatch, "search-match"},
		{Tag(99), "unknown"},
		{Tag(-1), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.tag.String(); got != tt.want {
			t.Errorf("Tag(%d).String() = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestParseTag(t *testing.T) {
	for _, tag := range Tags() {
		parsed, err := ParseTag(tag.String())
		if err != nil {
			t.Errorf("ParseTag(%q) error = %v", tag.String(), err)
		}
		if parsed != tag {
			t.Errorf("ParseTag(%q) = %v, want %v", tag.String(), parsed, tag)
		}
	}

	if _, err := ParseTag("bogus"); err == nil {
		t.Error("ParseTag(bogus) should fail")
	}
}

func TestSetTagAndQuery(t *testing.T) {
	s := NewStore()

	s.SetTag(3, TagSelected, true)
	s.SetTag(3, TagHovered, true)

	if !s.Has(3, TagSelected) || !s.Has(3, TagHovered) {
		t.Error("node 3 should carry selected and hovered")
	}
	if s.Has(3, TagSearchMatch) {
		t.Error("node 3 should not carry search-match")
	}

	// Query returns tags in fixed enumeration order regardless of set order.
	got := s.Query(3)
	want := []Tag{TagSelected, TagHovered}
	if !slices.Equal(got, want) {
		t.Errorf("Query(3) = %v, want %v", got, want)
	}

	// Unknown index is not an error, just empty.
	if tags := s.Query(404); len(tags) != 0 {
		t.Errorf("Query(404) = %v, want empty", tags)
	}
}

func TestQueryOrderFixed(t *testing.T) {
	s := NewStore()

	// Set in reverse declaration order; query order must not follow.
	s.SetTag(1, TagSearchMatch, true)
	s.SetTag(1, TagOnActivePath, true)
	s.SetTag(1, TagHovered, true)
	s.SetTag(1, TagSelected, true)

	got := s.Query(1)
	want := []Tag{TagSelected, TagHovered, TagOnActivePath, TagSearchMatch}
	if !slices.Equal(got, want) {
		t.Errorf("Query(1) = %v, want %v", got, want)
	}
}

func TestSetTagNotifications(t *testing.T) {
	s := NewStore()
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.SetTag(1, TagSelected, true)
	s.SetTag(1, TagSelected, true) // no-op, already set
	s.SetTag(1, TagSelected, false)
	s.SetTag(1, TagSelected, false) // no-op, already clear

	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2 (no-ops stay silent): %+v", len(changes), changes)
	}

	first := changes[0]
	if first.Op != OpSet || first.Tag != TagSelected || !first.Present {
		t.Errorf("first change = %+v, want set selected present", first)
	}
	if !slices.Equal(first.Indices, []int{1}) {
		t.Errorf("first change indices = %v, want [1]", first.Indices)
	}
	if changes[1].Present {
		t.Errorf("second change = %+v, want removal", changes[1])
	}
}

func TestSetPathBatch(t *testing.T) {
	s := NewStore()
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.SetTag(2, TagOnActivePath, true)

	// Batch including an already tagged node announces only the flipped ones,
	// in input order.
	s.SetPath([]int{5, 2, 9}, TagOnActivePath, true)

	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(changes))
	}
	if !slices.Equal(changes[1].Indices, []int{5, 9}) {
		t.Errorf("batch change indices = %v, want [5 9]", changes[1].Indices)
	}

	for _, index := range []int{2, 5, 9} {
		if !s.Has(index, TagOnActivePath) {
			t.Errorf("node %d should be on the active path", index)
		}
	}

	// Fully redundant batch stays silent.
	s.SetPath([]int{2, 5, 9}, TagOnActivePath, true)
	if len(changes) != 2 {
		t.Errorf("redundant batch should not notify, got %d changes", len(changes))
	}
}

func TestClearTag(t *testing.T) {
	s := NewStore()
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.SetPath([]int{9, 1, 5}, TagSearchMatch, true)
	s.SetTag(5, TagSelected, true)

	s.ClearTag(TagSearchMatch)

	last := changes[len(changes)-1]
	if last.Op != OpClear || last.Tag != TagSearchMatch {
		t.Fatalf("last change = %+v, want clear search-match", last)
	}
	// Cleared indices are reported in ascending order.
	if !slices.Equal(last.Indices, []int{1, 5, 9}) {
		t.Errorf("cleared indices = %v, want [1 5 9]", last.Indices)
	}

	// Other tags on the same nodes survive.
	if !s.Has(5, TagSelected) {
		t.Error("clearing search-match should not touch selection")
	}

	// Clearing an absent tag stays silent.
	before := len(changes)
	s.ClearTag(TagSearchMatch)
	if len(changes) != before {
		t.Error("clearing an empty tag should not notify")
	}
}

func TestNodes(t *testing.T) {
	s := NewStore()
	s.SetPath([]int{7, 0, 3}, TagSearchMatch, true)

	if got, want := s.Nodes(TagSearchMatch), []int{0, 3, 7}; !slices.Equal(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}
	if got := s.Nodes(TagHovered); len(got) != 0 {
		t.Errorf("Nodes(hovered) = %v, want empty", got)
	}
}

func TestReset(t *testing.T) {
	s := NewStore()
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	// Reset of an empty store stays silent.
	s.Reset()
	if len(changes) != 0 {
		t.Fatalf("empty reset should not notify, got %+v", changes)
	}

	s.SetTag(1, TagSelected, true)
	s.SetTag(2, TagHovered, true)
	s.Reset()

	last := changes[len(changes)-1]
	if last.Op != OpReset {
		t.Errorf("last change = %+v, want reset", last)
	}
	if s.Has(1, TagSelected) || s.Has(2, TagHovered) {
		t.Error("reset should clear every tag")
	}
}

func TestInvalidTagIgnored(t *testing.T) {
	s := NewStore()
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.SetTag(1, Tag(99), true)
	s.ClearTag(Tag(-1))

	if len(changes) != 0 {
		t.Errorf("invalid tags should be ignored, got %+v", changes)
	}
	if s.Has(1, Tag(99)) {
		t.Error("Has() should be false for invalid tags")
	}
}
