package graphio

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/spanview/spanview/pkg/hypergraph"
)

// JSONCodec reads and writes snapshot documents as JSON.
type JSONCodec struct{}

// Format returns "json".
func (JSONCodec) Format() string { return "json" }

// Decode reads one JSON snapshot document.
func (JSONCodec) Decode(r io.Reader) (hypergraph.Snapshot, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.ToSnapshot(), nil
}

// Encode writes the snapshot as indented, index-sorted JSON.
func (JSONCodec) Encode(s hypergraph.Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromSnapshot(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalSnapshot converts a snapshot to JSON bytes.
func MarshalSnapshot(s hypergraph.Snapshot) ([]byte, error) {
	doc := FromSnapshot(s)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot deserializes JSON bytes to a snapshot.
func UnmarshalSnapshot(data []byte) (hypergraph.Snapshot, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.ToSnapshot(), nil
}
