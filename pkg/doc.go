// Package pkg provides the core libraries for Spanview hypergraph visualization.
//
// # Overview
//
// Spanview turns hypergraph snapshots into navigable visualizations where
// compound nodes span the atoms they are composed of. The pkg directory is
// organized into five main areas:
//
//  1. [hypergraph] - Node and snapshot model (atoms, compounds, index references)
//  2. [layout] - Snapshot validation, layout construction, severity tiers
//  3. [vizstate] - Per-node interaction state (selection, hover, path, search)
//  4. [nav] - Navigation controller driving focus and snapshot replacement
//  5. [graphio] - Snapshot codecs (JSON, YAML) and renderer exports (DOT, SVG)
//
// # Architecture
//
// The typical data flow through Spanview:
//
//	Snapshot producer (file or HTTP)
//	         ↓
//	    [graphio] package (decode the snapshot document)
//	         ↓
//	    [layout] package (validate + build the layout)
//	         ↓
//	    [nav] + [vizstate] packages (navigation and interaction state)
//	         ↓
//	    Renderer (terminal UI, HTTP viewer, DOT/SVG export)
//
// # Quick Start
//
// Load a snapshot and focus a node:
//
//	import (
//	    "context"
//	    "github.com/spanview/spanview/pkg/graphio"
//	    "github.com/spanview/spanview/pkg/nav"
//	)
//
//	snapshot, _ := graphio.ReadSnapshotFile("trace.json")
//	controller := nav.New(nil)
//	controller.ReplaceSnapshot(context.Background(), snapshot)
//	controller.FocusNode(context.Background(), 42)
//
// # Supporting Packages
//
// [errors] - Structured error codes shared by the CLI and HTTP surfaces.
//
// [observability] - Optional instrumentation hooks for builds, state changes,
// and navigation, registered by main.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// [hypergraph]: https://pkg.go.dev/github.com/spanview/spanview/pkg/hypergraph
// [layout]: https://pkg.go.dev/github.com/spanview/spanview/pkg/layout
// [vizstate]: https://pkg.go.dev/github.com/spanview/spanview/pkg/vizstate
// [nav]: https://pkg.go.dev/github.com/spanview/spanview/pkg/nav
// [graphio]: https://pkg.go.dev/github.com/spanview/spanview/pkg/graphio
// [errors]: https://pkg.go.dev/github.com/spanview/spanview/pkg/errors
// [observability]: https://pkg.go.dev/github.com/spanview/spanview/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/spanview/spanview/pkg/buildinfo
package pkg
