package style

import "github.com/platmap/platmap/pkg/graph"

// NodeID extracts a plain node ID from whatever representation a rendering
// layer hands back: a raw ID string, a node value or pointer, or a decoded
// JSON object with an "id" field. Returns "" when nothing usable is found.
//
// Rendering libraries are inconsistent about whether event payloads carry
// the node ID or the resolved node object, so every consumer boundary
// normalizes through this function instead of comparing representations
// directly.
func NodeID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case graph.Node:
		return t.ID
	case *graph.Node:
		if t == nil {
			return ""
		}
		return t.ID
	case map[string]any:
		if id, ok := t["id"].(string); ok {
			return id
		}
		return ""
	default:
		return ""
	}
}

// SetHighlight recomputes the per-node/per-link style overlay for the given
// selection and returns a new graph; the input graph is never mutated.
//
// With no selection (or an unknown node, which degrades to the base style
// rather than failing) every node and link is restored to its unhighlighted
// baseline. With a selection, the selected node and its direct neighbors
// keep full opacity while every other node dims; the selected node's border
// is emphasized; links touching the selection are boosted and all others
// dim.
//
// All derived values are recomputed from structural fields (weight,
// adjacency), never from the current overlay, so the function is idempotent:
// applying it twice with the same selection equals applying it once.
func SetHighlight(g *graph.Graph, selection any) *graph.Graph {
	out := g.Clone()
	id := NodeID(selection)
	if id != "" && out.Node(id) == nil {
		// Unknown selection: fall back to baseline rather than raising.
		id = ""
	}

	if id == "" {
		resetBaseline(out)
		return out
	}

	keep := map[string]bool{id: true}
	for _, n := range out.Neighbors(id) {
		keep[n] = true
	}

	for i := range out.Nodes {
		n := &out.Nodes[i]
		n.Style.BorderWidth = baseBorderWidth
		n.Style.BorderColor = baseBorderColor
		if n.ID == id {
			n.Style.BorderWidth = highlightBorderWidth
			n.Style.BorderColor = highlightBorderColor
		}
		if keep[n.ID] {
			n.Style.Opacity = 1.0
		} else {
			n.Style.Opacity = dimmedNodeOpacity
		}
	}

	for i := range out.Links {
		l := &out.Links[i]
		if l.Source == id || l.Target == id {
			l.Style.Width = min(maxBoostedWidth, LinkWidth(l.Weight)*2)
			l.Style.Opacity = boostedLinkOpacity
		} else {
			l.Style.Width = LinkWidth(l.Weight)
			l.Style.Opacity = dimmedLinkOpacity
		}
	}

	return out
}

// resetBaseline restores decoration-time style values on every node and
// link. Structural fields are untouched.
func resetBaseline(g *graph.Graph) {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		n.Style.Opacity = 1.0
		n.Style.BorderWidth = baseBorderWidth
		n.Style.BorderColor = baseBorderColor
	}
	for i := range g.Links {
		l := &g.Links[i]
		l.Style.Width = LinkWidth(l.Weight)
		l.Style.Opacity = LinkOpacity(l.Weight)
	}
}
