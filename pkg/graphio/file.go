package graphio

import (
	"fmt"
	"os"

	"github.com/spanview/spanview/pkg/hypergraph"
)

// ReadSnapshotFile reads a snapshot file, selecting the codec by extension.
func ReadSnapshotFile(path string) (hypergraph.Snapshot, error) {
	codec, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return codec.Decode(f)
}

// WriteSnapshotFile writes a snapshot file, selecting the codec by extension.
// The file is created with 0644 permissions.
func WriteSnapshotFile(s hypergraph.Snapshot, path string) error {
	codec, err := ForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return codec.Encode(s, f)
}
