// Package vizstate tracks per-node interaction state for a visualization
// session.
//
// A [Store] maps node indices to a set of independent boolean tags
// (selection, hover, path highlight, search match). Tags are separate axes:
// any combination may be active on a node at once, and rendering precedence
// is a styling concern outside this package.
//
// Every mutation is atomic: subscribers and readers observe either the fully
// old or the fully new state, never an intermediate. The store is keyed by
// the same index space as the owning layout and is cleared wholesale when a
// snapshot is replaced, so stale indices never linger.
package vizstate

import (
	"fmt"
	"slices"
	"sync"
)

// Tag is a named boolean interaction state attached to a node index.
type Tag int

const (
	// TagSelected marks the single currently selected node.
	TagSelected Tag = iota
	// TagHovered marks the node under the pointer or cursor.
	TagHovered
	// TagOnActivePath marks nodes on the highlighted ancestor/descendant path.
	TagOnActivePath
	// TagSearchMatch marks nodes matching the active search.
	TagSearchMatch

	numTags
)

var tagNames = [numTags]string{"selected", "hovered", "on-active-path", "search-match"}

// String returns the tag's wire name.
func (t Tag) String() string {
	if t < 0 || t >= numTags {
		return "unknown"
	}
	return tagNames[t]
}

// Valid reports whether t is one of the declared tags.
func (t Tag) Valid() bool { return t >= 0 && t < numTags }

// ParseTag resolves a wire name back to its Tag.
func ParseTag(s string) (Tag, error) {
	for i, name := range tagNames {
		if name == s {
			return Tag(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tag %q", s)
}

// Tags returns all tags in their fixed enumeration order.
func Tags() []Tag {
	out := make([]Tag, numTags)
	for i := range out {
		out[i] = Tag(i)
	}
	return out
}

// Op describes the kind of mutation a [Change] reports.
type Op int

const (
	// OpSet reports a tag added to or removed from specific nodes.
	OpSet Op = iota
	// OpClear reports a tag removed from every node that carried it.
	OpClear
	// OpReset reports the whole store cleared.
	OpReset
)

// Change describes one atomic store mutation. Subscribers receive a Change
// only for mutations that had an effect; no-op calls are not announced.
type Change struct {
	Op      Op
	Tag     Tag   // set for OpSet and OpClear
	Indices []int // nodes whose state changed; empty for OpReset
	Present bool  // set for OpSet: whether the tag was added or removed
}

// Listener receives change notifications. Listeners run synchronously after
// the mutation completes, on the mutating goroutine.
type Listener func(Change)

// Store holds the interaction tags for one visualization session.
// All operations are safe for concurrent readers; mutation flows through a
// single controller per session.
type Store struct {
	mu        sync.RWMutex
	tags      map[int]uint8 // node index -> tag bitmask
	listeners []Listener
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{tags: make(map[int]uint8)}
}

// Subscribe registers a listener for subsequent changes.
// Registration order is notification order.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SetTag adds or removes a single tag on one node. Requesting the state the
// node is already in is a no-op and produces no notification.
func (s *Store) SetTag(index int, tag Tag, present bool) {
	s.SetPath([]int{index}, tag, present)
}

// SetPath applies the same tag change to an ordered collection of indices as
// one atomic batch. Observers see either the fully old or fully new state.
// The announced Change lists only the indices whose state actually flipped,
// in input order.
func (s *Store) SetPath(indices []int, tag Tag, present bool) {
	if !tag.Valid() {
		return
	}

	s.mu.Lock()
	var changed []int
	bit := uint8(1) << uint(tag)
	for _, index := range indices {
		mask := s.tags[index]
		has := mask&bit != 0
		if has == present {
			continue
		}
		if present {
			s.tags[index] = mask | bit
		} else {
			mask &^= bit
			if mask == 0 {
				delete(s.tags, index)
			} else {
				s.tags[index] = mask
			}
		}
		changed = append(changed, index)
	}
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if len(changed) == 0 {
		return
	}
	notify(listeners, Change{Op: OpSet, Tag: tag, Indices: changed, Present: present})
}

// ClearTag removes a tag from every node that carries it, e.g. when the
// selection moves or a search is cleared. The announced Change lists the
// affected indices in ascending order.
func (s *Store) ClearTag(tag Tag) {
	if !tag.Valid() {
		return
	}

	s.mu.Lock()
	var cleared []int
	bit := uint8(1) << uint(tag)
	for index, mask := range s.tags {
		if mask&bit == 0 {
			continue
		}
		mask &^= bit
		if mask == 0 {
			delete(s.tags, index)
		} else {
			s.tags[index] = mask
		}
		cleared = append(cleared, index)
	}
	slices.Sort(cleared)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if len(cleared) == 0 {
		return
	}
	notify(listeners, Change{Op: OpClear, Tag: tag, Indices: cleared})
}

// Query returns the active tags for one node in fixed enumeration order.
// Unknown indices simply have no active tags; querying is never an error.
func (s *Store) Query(index int) []Tag {
	s.mu.RLock()
	mask := s.tags[index]
	s.mu.RUnlock()

	var out []Tag
	for t := Tag(0); t < numTags; t++ {
		if mask&(1<<uint(t)) != 0 {
			out = append(out, t)
		}
	}
	return out
}

// Has reports whether the node carries the tag.
func (s *Store) Has(index int, tag Tag) bool {
	if !tag.Valid() {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tags[index]&(1<<uint(tag)) != 0
}

// Nodes returns the indices carrying the tag, in ascending order.
func (s *Store) Nodes(tag Tag) []int {
	if !tag.Valid() {
		return nil
	}
	s.mu.RLock()
	var out []int
	bit := uint8(1) << uint(tag)
	for index, mask := range s.tags {
		if mask&bit != 0 {
			out = append(out, index)
		}
	}
	s.mu.RUnlock()

	slices.Sort(out)
	return out
}

// Reset clears every tag on every node. Invoked when the owning snapshot is
// replaced so no stale index retains state. An already empty store stays
// silent.
func (s *Store) Reset() {
	s.mu.Lock()
	wasEmpty := len(s.tags) == 0
	s.tags = make(map[int]uint8)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if wasEmpty {
		return
	}
	notify(listeners, Change{Op: OpReset})
}

func notify(listeners []Listener, c Change) {
	for _, fn := range listeners {
		fn(c)
	}
}
