package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spanview/spanview/pkg/errors"
	"github.com/spanview/spanview/pkg/graphio"
	"github.com/spanview/spanview/pkg/layout"
)

// newExportCmd creates the export command, which converts a snapshot file
// to another format.
func newExportCmd() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export <snapshot>",
		Short: "Convert a snapshot to JSON, YAML, DOT, or SVG",
		Long: `Export loads a hypergraph snapshot, validates it, and writes it in the
requested format. JSON and YAML are lossless snapshot documents; DOT and SVG
are renderer views with nodes colored by severity tier.

The format is inferred from the output file extension when --format is not
given. Without --output, textual formats are written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
			}
			if format == "" {
				return errors.New(errors.ErrCodeInvalidFormat, "no format given and none inferable from output path")
			}
			if format == "yml" {
				format = "yaml"
			}

			snapshot, err := graphio.ReadSnapshotFile(args[0])
			if err != nil {
				return err
			}

			built, err := layout.Build(snapshot)
			if err != nil {
				printError("snapshot rejected: %v", err)
				return err
			}
			logger.Debug("snapshot loaded", "nodes", built.NodeCount(), "format", format)

			var data []byte
			switch format {
			case "json":
				data, err = graphio.MarshalSnapshot(snapshot)
			case "yaml":
				var buf bytes.Buffer
				if err = (graphio.YAMLCodec{}).Encode(snapshot, &buf); err == nil {
					data = buf.Bytes()
				}
			case "dot":
				data = []byte(graphio.ToDOT(built, graphio.DOTOptions{Detailed: detailed}))
			case "svg":
				dot := graphio.ToDOT(built, graphio.DOTOptions{Detailed: detailed})
				data, err = graphio.RenderSVG(dot)
			default:
				return errors.New(errors.ErrCodeUnsupported, "unsupported format %q (want json, yaml, dot, or svg)", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				if format == "svg" {
					return errors.New(errors.ErrCodeInvalidFormat, "svg output requires --output")
				}
				fmt.Print(string(data))
				return nil
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Exported %d nodes as %s", built.NodeCount(), format)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json, yaml, dot, or svg (default: inferred from output path)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include width and tier in DOT/SVG node labels")
	return cmd
}
