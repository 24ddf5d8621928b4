// Package hypergraph defines the node model for hypergraph snapshots.
//
// A snapshot is a flat sequence of node descriptors. Each node is either an
// atom (width 1, no children) or a compound (width > 1) composed of an
// ordered sequence of child nodes. Parent and child links are index
// references rather than pointers: ownership of every node lies with the
// snapshot, and the links are lookups into it.
//
// The package holds only data types and local invariants. Whole-snapshot
// validation and derived views live in
// [github.com/spanview/spanview/pkg/layout].
package hypergraph
