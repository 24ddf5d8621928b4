package layout

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spanview/spanview/pkg/hypergraph"
)

// GraphLayout is a derived, read-only view over one snapshot: an index-keyed
// node lookup plus the maximum width observed, used for severity
// normalization. A GraphLayout is built once per snapshot and never mutated;
// a new snapshot supersedes it wholesale.
type GraphLayout struct {
	nodes    map[int]hypergraph.Node
	maxWidth int
	warnings []string
}

// Build validates a snapshot and constructs its layout.
//
// Validation runs in one pass plus a cycle check:
//   - every index is unique ([hypergraph.ErrDuplicateIndex])
//   - every referenced parent/child index exists ([hypergraph.ErrDanglingReference])
//   - no node is its own ancestor via child edges ([hypergraph.ErrGraphCycle])
//
// On any failure Build returns a nil layout and the error; it never mutates
// caller state, so the previous valid layout (if any) stays intact. Building
// the same descriptors in any input order yields an equivalent layout.
func Build(snapshot hypergraph.Snapshot) (*GraphLayout, error) {
	nodes := make(map[int]hypergraph.Node, len(snapshot))
	maxWidth := 0

	for _, n := range snapshot {
		if err := n.Validate(); err != nil {
			return nil, err
		}
		if _, exists := nodes[n.Index]; exists {
			return nil, fmt.Errorf("node %d: %w", n.Index, hypergraph.ErrDuplicateIndex)
		}
		nodes[n.Index] = n
		if n.Width > maxWidth {
			maxWidth = n.Width
		}
	}

	for _, n := range snapshot {
		for _, p := range n.Parents {
			if _, ok := nodes[p]; !ok {
				return nil, fmt.Errorf("node %d: parent %d: %w", n.Index, p, hypergraph.ErrDanglingReference)
			}
		}
		for _, c := range n.Children {
			if _, ok := nodes[c]; !ok {
				return nil, fmt.Errorf("node %d: child %d: %w", n.Index, c, hypergraph.ErrDanglingReference)
			}
		}
	}

	if err := detectCycles(nodes); err != nil {
		return nil, err
	}

	return &GraphLayout{
		nodes:    nodes,
		maxWidth: maxWidth,
		warnings: widthWarnings(nodes),
	}, nil
}

// detectCycles walks child edges with depth-first search using
// white/gray/black coloring. Runs in O(N+E) time.
func detectCycles(nodes map[int]hypergraph.Node) error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[int]int, len(nodes))
	var cycleAt = -1

	var dfs func(index int)
	dfs = func(index int) {
		color[index] = gray
		for _, child := range nodes[index].Children {
			switch color[child] {
			case white:
				dfs(child)
				if cycleAt >= 0 {
					return
				}
			case gray:
				cycleAt = child
				return
			}
		}
		color[index] = black
	}

	for index := range nodes {
		if color[index] == white {
			dfs(index)
			if cycleAt >= 0 {
				return fmt.Errorf("node %d: %w", cycleAt, hypergraph.ErrGraphCycle)
			}
		}
	}
	return nil
}

// widthWarnings reports compounds whose width disagrees with the sum of
// their children's widths. The exact summation rule is snapshot-producer
// defined, so mismatches are surfaced as warnings rather than rejections.
func widthWarnings(nodes map[int]hypergraph.Node) []string {
	var warnings []string
	for _, index := range slices.Sorted(maps.Keys(nodes)) {
		n := nodes[index]
		if len(n.Children) == 0 {
			continue
		}
		sum := 0
		for _, c := range n.Children {
			sum += nodes[c].Width
		}
		if sum != n.Width {
			warnings = append(warnings,
				fmt.Sprintf("node %d: width %d does not match child width sum %d", n.Index, n.Width, sum))
		}
	}
	return warnings
}

// Node returns the node with the given index and true, or the zero node and
// false if the index is not part of the snapshot. The returned value is a
// copy; its Parents and Children slices are shared and must not be modified.
func (l *GraphLayout) Node(index int) (hypergraph.Node, bool) {
	n, ok := l.nodes[index]
	return n, ok
}

// Contains reports whether the layout holds a node with the given index.
func (l *GraphLayout) Contains(index int) bool {
	_, ok := l.nodes[index]
	return ok
}

// MaxWidth returns the maximum width observed across all nodes, or 0 for an
// empty snapshot. It is fixed at build time and used only for normalization.
func (l *GraphLayout) MaxWidth() int { return l.maxWidth }

// NodeCount returns the number of nodes in the layout.
func (l *GraphLayout) NodeCount() int { return len(l.nodes) }

// Indices returns all node indices in sorted ascending order.
func (l *GraphLayout) Indices() []int {
	return slices.Sorted(maps.Keys(l.nodes))
}

// Roots returns the indices of nodes with no parents, sorted ascending.
func (l *GraphLayout) Roots() []int {
	var roots []int
	for _, index := range l.Indices() {
		if len(l.nodes[index].Parents) == 0 {
			roots = append(roots, index)
		}
	}
	return roots
}

// Tier classifies the node at the given index against the layout's MaxWidth.
// Absent indices classify as [TierInfo], the tier of atoms.
func (l *GraphLayout) Tier(index int) Tier {
	n, ok := l.nodes[index]
	if !ok {
		return TierInfo
	}
	return Severity(n.Width, l.maxWidth)
}

// Warnings returns soft-validation findings recorded at build time, currently
// width-sum mismatches on compounds. Warnings never fail a build.
func (l *GraphLayout) Warnings() []string { return slices.Clone(l.warnings) }
