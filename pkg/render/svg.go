// Package render turns a built graph into output artifacts.
//
// Two sinks exist: a hand-built SVG writer whose embedded hover script
// mirrors the highlight engine's dimming and boosting rules, and a
// Graphviz-backed sink that pins every node to its precomputed position
// (neato with fixed coordinates) for PNG and DOT output. Neither sink
// re-runs layout; positions come exclusively from the graph.
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/platmap/platmap/pkg/graph"
)

const nodeInteractionCSS = `
    .node { transition: opacity 0.15s ease, stroke-width 0.15s ease; }
    .node.dim { opacity: 0.3; }
    .node.selected { stroke: #333333; stroke-width: 3; }
    .link { transition: opacity 0.15s ease, stroke-width 0.15s ease; }
    .link.dim { opacity: 0.1; }
    .link.boost { opacity: 0.9; }
    .node-label.dim { opacity: 0.3; }`

// The hover script applies the same rules as the highlight engine: the
// hovered node and its direct neighbors stay at full opacity, everything
// else dims; links touching the hovered node get boosted and widened
// (doubled, capped at 6), all other links dim.
const nodeInteractionJS = `
    function setHighlight(id) {
      const keep = new Set([id]);
      document.querySelectorAll('.link').forEach(l => {
        if (l.dataset.source === id || l.dataset.target === id) {
          keep.add(l.dataset.source); keep.add(l.dataset.target);
        }
      });
      document.querySelectorAll('.node').forEach(n => {
        n.classList.toggle('dim', !keep.has(n.dataset.id));
        n.classList.toggle('selected', n.dataset.id === id);
      });
      document.querySelectorAll('.node-label').forEach(t => t.classList.toggle('dim', !keep.has(t.dataset.id)));
      document.querySelectorAll('.link').forEach(l => {
        const touches = l.dataset.source === id || l.dataset.target === id;
        l.classList.toggle('boost', touches);
        l.classList.toggle('dim', !touches);
        l.setAttribute('stroke-width', touches ? Math.min(6, 2 * l.dataset.width) : l.dataset.width);
      });
    }
    function clearHighlight() {
      document.querySelectorAll('.node, .node-label, .link').forEach(el => el.classList.remove('dim', 'boost', 'selected'));
      document.querySelectorAll('.link').forEach(l => l.setAttribute('stroke-width', l.dataset.width));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => setHighlight(el.dataset.id));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVG renders the graph as a standalone interactive SVG document. Links are
// drawn first so nodes sit on top; labels come last so no circle occludes
// text.
func SVG(g *graph.Graph) ([]byte, error) {
	w, h := g.Width, g.Height
	if w == 0 {
		w = 1200
	}
	if h == 0 {
		h = 800
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)

	byID := make(map[string]*graph.Node, len(g.Nodes))
	for i := range g.Nodes {
		byID[g.Nodes[i].ID] = &g.Nodes[i]
	}

	for i := range g.Links {
		renderLink(&buf, &g.Links[i], byID)
	}
	for i := range g.Nodes {
		renderNode(&buf, &g.Nodes[i])
	}
	for i := range g.Nodes {
		renderLabel(&buf, &g.Nodes[i])
	}

	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", nodeInteractionCSS)
	fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", nodeInteractionJS)
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderLink(buf *bytes.Buffer, l *graph.Link, byID map[string]*graph.Node) {
	src, okS := byID[l.Source]
	dst, okT := byID[l.Target]
	if !okS || !okT {
		// Dangling endpoint: skip the strand rather than fail the render.
		return
	}

	attrs := fmt.Sprintf(`class="link" data-source=%q data-target=%q data-width="%.2f" stroke=%q stroke-width="%.2f" opacity="%.2f" fill="none"`,
		html.EscapeString(l.Source), html.EscapeString(l.Target), l.Style.Width,
		l.Style.Color, l.Style.Width, l.Style.Opacity)
	if l.Style.Dashed {
		attrs += ` stroke-dasharray="6,4"`
	}

	if l.Style.Curveness != 0 {
		// Quadratic curve bowed perpendicular to the chord.
		mx, my := (src.X+dst.X)/2, (src.Y+dst.Y)/2
		dx, dy := dst.X-src.X, dst.Y-src.Y
		cx := mx - dy*l.Style.Curveness
		cy := my + dx*l.Style.Curveness
		fmt.Fprintf(buf, "  <path d=\"M %.2f %.2f Q %.2f %.2f %.2f %.2f\" %s/>\n",
			src.X, src.Y, cx, cy, dst.X, dst.Y, attrs)
		return
	}
	fmt.Fprintf(buf, "  <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" %s/>\n",
		src.X, src.Y, dst.X, dst.Y, attrs)
}

func renderNode(buf *bytes.Buffer, n *graph.Node) {
	fmt.Fprintf(buf, "  <circle class=\"node\" id=\"node-%s\" data-id=%q cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=%q stroke=%q stroke-width=\"%.2f\" opacity=\"%.2f\"/>\n",
		html.EscapeString(n.ID), html.EscapeString(n.ID), n.X, n.Y, n.Style.SymbolSize/2,
		n.Style.Color, n.Style.BorderColor, n.Style.BorderWidth, n.Style.Opacity)
}

func renderLabel(buf *bytes.Buffer, n *graph.Node) {
	if !n.Label.Show {
		return
	}
	fmt.Fprintf(buf, "  <text class=\"node-label\" data-id=%q x=\"%.2f\" y=\"%.2f\" text-anchor=\"middle\" font-size=\"%.0f\" fill=%q font-family=\"sans-serif\">%s</text>\n",
		html.EscapeString(n.ID), n.X, n.Y+n.Style.SymbolSize/2+12,
		n.Label.FontSize, n.Label.Color, html.EscapeString(n.Name))
}
