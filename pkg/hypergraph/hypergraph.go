package hypergraph

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeIndex is returned when a node descriptor carries a negative
	// index. Indices identify nodes within a snapshot and must be >= 0.
	ErrNegativeIndex = errors.New("node index must be non-negative")

	// ErrInvalidWidth is returned when a node descriptor carries a width < 1.
	// Width 1 marks an atom; width > 1 marks a compound spanning atoms.
	ErrInvalidWidth = errors.New("node width must be positive")

	// ErrDuplicateIndex is returned when two descriptors in a snapshot share
	// the same index. Indices must be unique within a snapshot.
	ErrDuplicateIndex = errors.New("duplicate node index")

	// ErrDanglingReference is returned when a descriptor lists a parent or
	// child index that no descriptor in the snapshot declares.
	ErrDanglingReference = errors.New("dangling node reference")

	// ErrGraphCycle is returned when a node is reachable from itself via
	// child edges. The parent/child relation must be acyclic.
	ErrGraphCycle = errors.New("graph contains a cycle")
)

// Node represents one hypergraph element: an atom (Width == 1) or a compound
// span (Width > 1) composed of child nodes. Parent and child links are
// non-owning index references into the same snapshot; a node may have several
// parents, so the relation forms a DAG rather than a tree.
//
// The zero value is not a valid node - Width must be at least 1.
type Node struct {
	Index    int    // Unique identity within a snapshot, stable across re-layout
	Label    string // Display string, cosmetic only
	Width    int    // Number of atoms spanned; 1 for atoms
	Parents  []int  // Indices of compounds directly containing this node
	Children []int  // Ordered indices composing this node (empty iff atomic)
}

// IsAtom reports whether the node is an atomic unit (Width == 1).
func (n Node) IsAtom() bool { return n.Width == 1 }

// IsCompound reports whether the node spans multiple atoms (Width > 1).
func (n Node) IsCompound() bool { return n.Width > 1 }

// DisplayLabel returns the label if set, otherwise the index formatted as a string.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return fmt.Sprintf("#%d", n.Index)
}

// Validate checks the node's local invariants (index and width ranges).
// Cross-node invariants (uniqueness, reference existence, acyclicity) are
// checked by [github.com/spanview/spanview/pkg/layout.Build] over a whole snapshot.
func (n Node) Validate() error {
	if n.Index < 0 {
		return fmt.Errorf("node %d: %w", n.Index, ErrNegativeIndex)
	}
	if n.Width < 1 {
		return fmt.Errorf("node %d: %w", n.Index, ErrInvalidWidth)
	}
	return nil
}

// Snapshot is one complete set of node descriptors representing the
// hypergraph at a point in time. Snapshots arrive from an external producer
// and supersede each other wholesale - a layout is never patched in place.
type Snapshot []Node

// Indices returns the index of every descriptor in snapshot order.
func (s Snapshot) Indices() []int {
	out := make([]int, len(s))
	for i, n := range s {
		out[i] = n.Index
	}
	return out
}

// Atoms returns the number of atomic nodes in the snapshot.
func (s Snapshot) Atoms() int {
	count := 0
	for _, n := range s {
		if n.IsAtom() {
			count++
		}
	}
	return count
}

// Compounds returns the number of compound nodes in the snapshot.
func (s Snapshot) Compounds() int { return len(s) - s.Atoms() }
