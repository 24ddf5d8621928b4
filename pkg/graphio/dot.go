package graphio

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/spanview/spanview/pkg/layout"
)

// DOTOptions configures DOT export.
type DOTOptions struct {
	// Detailed includes width and tier in node labels.
	// When false, only the display label is shown.
	Detailed bool
}

// tierFill maps severity tiers to Graphviz fill colors, calm to loud.
var tierFill = map[layout.Tier]string{
	layout.TierInfo:  "white",
	layout.TierDebug: "lightblue",
	layout.TierWarn:  "orange",
	layout.TierError: "tomato",
}

// ToDOT converts a layout to Graphviz DOT format. Compound nodes point at
// their children in pattern order; fill color encodes the severity tier.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(l *layout.GraphLayout, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, index := range l.Indices() {
		n, _ := l.Node(index)
		tier := l.Tier(index)

		label := n.DisplayLabel()
		if opts.Detailed {
			label = fmt.Sprintf("%s\nwidth: %d\ntier: %s", label, n.Width, tier)
		}

		attrs := []string{
			fmt.Sprintf("label=%q", label),
			fmt.Sprintf("fillcolor=%q", tierFill[tier]),
		}
		if n.IsAtom() {
			attrs = append(attrs, "shape=ellipse")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", index, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, index := range l.Indices() {
		n, _ := l.Node(index)
		for _, child := range n.Children {
			fmt.Fprintf(&buf, "  %d -> %d;\n", index, child)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
