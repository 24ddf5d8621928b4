package graphio

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/spanview/spanview/pkg/hypergraph"
)

// YAMLCodec reads and writes snapshot documents as YAML.
type YAMLCodec struct{}

// Format returns "yaml".
func (YAMLCodec) Format() string { return "yaml" }

// Decode reads one YAML snapshot document.
func (YAMLCodec) Decode(r io.Reader) (hypergraph.Snapshot, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.ToSnapshot(), nil
}

// Encode writes the snapshot as index-sorted YAML.
func (YAMLCodec) Encode(s hypergraph.Snapshot, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(FromSnapshot(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
