package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/platmap/platmap/pkg/errors"
	"github.com/platmap/platmap/pkg/graph"
)

// Raster output formats for [Image].
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// pxPerInch converts pixel coordinates to Graphviz inches.
const pxPerInch = 96.0

// DOT converts a graph to Graphviz DOT with pinned positions. Every node
// carries a pos="x,y!" attribute so neato keeps the precomputed layout
// instead of running its own. The y axis is flipped because Graphviz grows
// upward while the graph's coordinates grow downward.
func DOT(g *graph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph platmap {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, fontsize=10];\n")
	buf.WriteString("  edge [arrowsize=0.4];\n")
	buf.WriteString("\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for i := range g.Links {
		l := &g.Links[i]
		attrs := []string{
			fmt.Sprintf("penwidth=%.2f", l.Style.Width),
			fmt.Sprintf("color=%q", l.Style.Color),
		}
		if l.Style.Dashed {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.Source, l.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func nodeAttrs(n *graph.Node) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", n.Name),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.X/pxPerInch*72, -n.Y/pxPerInch*72),
		fmt.Sprintf("width=%.3f", n.Style.SymbolSize/pxPerInch),
		fmt.Sprintf("fillcolor=%q", n.Style.Color),
		fmt.Sprintf("color=%q", n.Style.BorderColor),
	}
	if !n.Label.Show {
		attrs[0] = `label=""`
	}
	return attrs
}

// Image renders the graph to a raster or vector image via Graphviz,
// honoring the pinned positions from [DOT].
func Image(ctx context.Context, g *graph.Graph, format string) ([]byte, error) {
	dot, err := DOT(g)
	if err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	parsed, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer parsed.Close()

	var gvFormat graphviz.Format
	switch format {
	case FormatPNG:
		gvFormat = graphviz.PNG
	case FormatSVG:
		gvFormat = graphviz.SVG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid image format: %q", format)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}
