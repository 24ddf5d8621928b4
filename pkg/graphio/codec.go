// Package graphio reads and writes hypergraph snapshots.
//
// Snapshots travel as a flat document of node descriptors. JSON and YAML
// codecs share one wire shape; encoding is index-sorted so that
// import → export → re-import produces identical documents.
//
// The package also exports layouts to Graphviz DOT/SVG for static artifact
// generation, with severity tiers mapped to node colors.
package graphio

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spanview/spanview/pkg/hypergraph"
)

// Codec decodes and encodes snapshot documents in one wire format.
type Codec interface {
	// Decode reads one snapshot document.
	Decode(r io.Reader) (hypergraph.Snapshot, error)

	// Encode writes the snapshot as one document, index-sorted.
	Encode(s hypergraph.Snapshot, w io.Writer) error

	// Format returns the codec's format name ("json", "yaml").
	Format() string
}

// ForPath selects a codec by file extension.
// Supported: .json, .yaml, .yml.
func ForPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONCodec{}, nil
	case ".yaml", ".yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", filepath.Ext(path))
	}
}

// Document is the wire shape shared by all snapshot codecs.
type Document struct {
	Nodes []NodeDescriptor `json:"nodes" yaml:"nodes"`
}

// NodeDescriptor is the wire shape of one node.
type NodeDescriptor struct {
	Index    int    `json:"index" yaml:"index"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Width    int    `json:"width" yaml:"width"`
	Parents  []int  `json:"parents,omitempty" yaml:"parents,omitempty"`
	Children []int  `json:"children,omitempty" yaml:"children,omitempty"`
}

// FromSnapshot converts a snapshot to its document form, sorted by index for
// deterministic output.
func FromSnapshot(s hypergraph.Snapshot) Document {
	nodes := make([]NodeDescriptor, len(s))
	for i, n := range s {
		nodes[i] = NodeDescriptor{
			Index:    n.Index,
			Label:    n.Label,
			Width:    n.Width,
			Parents:  n.Parents,
			Children: n.Children,
		}
	}
	slices.SortFunc(nodes, func(a, b NodeDescriptor) int { return a.Index - b.Index })
	return Document{Nodes: nodes}
}

// ToSnapshot converts a document back to a snapshot.
func (d Document) ToSnapshot() hypergraph.Snapshot {
	s := make(hypergraph.Snapshot, len(d.Nodes))
	for i, n := range d.Nodes {
		s[i] = hypergraph.Node{
			Index:    n.Index,
			Label:    n.Label,
			Width:    n.Width,
			Parents:  n.Parents,
			Children: n.Children,
		}
	}
	return s
}
