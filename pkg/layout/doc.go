// Package layout turns hypergraph snapshots into renderable layouts.
//
// [Build] validates a snapshot (unique indices, no dangling references, no
// cycles) and produces an immutable [GraphLayout]: an index-keyed node map
// plus the maximum observed width. Structural defects reject the whole
// snapshot so callers can keep serving the previous layout.
//
// [Severity] maps a node width to one of four visual tiers
// (info/debug/warn/error) by its position relative to the snapshot maximum.
// Renderers use the tier for visual weighting; the mapping is pure and
// order-independent.
package layout
