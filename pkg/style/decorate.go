package style

import (
	"math"

	"github.com/platmap/platmap/pkg/graph"
)

// Symbol sizing defaults shared by all layout strategies.
const (
	DefaultMinSymbolSize = 10.0
	DefaultMaxSymbolSize = 48.0
	DefaultSymbolLogBase = 10.0
	DefaultSymbolScale   = 12.0

	// PlatformSymbolSize is the fixed oversized constant for platform
	// nodes. Platforms stay visually dominant regardless of weight.
	PlatformSymbolSize = 64.0
)

// Baseline style constants. The highlight engine restores to these values.
const (
	baseBorderWidth      = 1.0
	baseBorderColor      = "#ffffff"
	highlightBorderWidth = 3.0
	highlightBorderColor = "#333333"

	dimmedNodeOpacity = 0.3

	dimmedLinkOpacity  = 0.1
	boostedLinkOpacity = 0.9
	maxBoostedWidth    = 6.0

	bridgeCurveness = 0.2
)

// SymbolOptions configures the shared log-scaled symbol-size rule.
type SymbolOptions struct {
	MinSize float64
	MaxSize float64
	LogBase float64
	Scale   float64
}

// DefaultSymbolOptions returns the shared sizing defaults.
func DefaultSymbolOptions() SymbolOptions {
	return SymbolOptions{
		MinSize: DefaultMinSymbolSize,
		MaxSize: DefaultMaxSymbolSize,
		LogBase: DefaultSymbolLogBase,
		Scale:   DefaultSymbolScale,
	}
}

// SymbolSize computes an entity node's symbol size:
//
//	clamp(min, max, min + log(weight+1)/log(base) * scale)
//
// The result is non-decreasing in weight and always within [min, max].
func SymbolSize(weight int, o SymbolOptions) float64 {
	if weight < 0 {
		weight = 0
	}
	size := o.MinSize + math.Log(float64(weight)+1)/math.Log(o.LogBase)*o.Scale
	return clamp(o.MinSize, o.MaxSize, size)
}

// LinkWidth is the monotonic, clamped width rule: clamp(1, 5, ln(weight+1)).
func LinkWidth(weight int) float64 {
	if weight < 0 {
		weight = 0
	}
	return clamp(1, 5, math.Log(float64(weight)+1))
}

// LinkOpacity is the monotonic, clamped opacity rule:
// clamp(0.2, 0.6, 0.25 + weight/100).
func LinkOpacity(weight int) float64 {
	if weight < 0 {
		weight = 0
	}
	return clamp(0.2, 0.6, 0.25+float64(weight)/100)
}

// Decorate derives every node's and link's base visual attributes in place:
// fill color from the color map, log-scaled symbol size, label style, and
// the link width/opacity rules. Positions and weights are read, never
// written.
func Decorate(g *graph.Graph, colors ColorMap, sym SymbolOptions) {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		n.Style.Color = NodeColor(n, colors)
		n.Style.BorderColor = baseBorderColor
		n.Style.BorderWidth = baseBorderWidth
		n.Style.Opacity = 1.0

		if n.Type == graph.TypePlatform {
			n.Style.SymbolSize = PlatformSymbolSize
			n.Label = graph.LabelStyle{Show: true, FontSize: 14, Color: "#333333"}
		} else {
			n.Style.SymbolSize = SymbolSize(n.Weight, sym)
			n.Label = graph.LabelStyle{Show: n.Style.SymbolSize >= sym.MinSize+sym.Scale, FontSize: 10, Color: "#666666"}
		}
	}

	byID := make(map[string]*graph.Node, len(g.Nodes))
	for i := range g.Nodes {
		byID[g.Nodes[i].ID] = &g.Nodes[i]
	}

	for i := range g.Links {
		l := &g.Links[i]
		l.Style.Width = LinkWidth(l.Weight)
		l.Style.Opacity = LinkOpacity(l.Weight)
		if l.Style.Dashed {
			// Platform-platform bridge: curved and tinted like a platform.
			l.Style.Color = colors.Resolve(KeyDataPlatform)
			l.Style.Curveness = bridgeCurveness
			continue
		}
		l.Style.Color = entityLinkColor(l, byID, colors)
	}
}

// entityLinkColor tints an entity-platform link by its entity endpoint.
// Unknown endpoints fall back to the unknown color instead of failing.
func entityLinkColor(l *graph.Link, byID map[string]*graph.Node, colors ColorMap) string {
	for _, id := range []string{l.Source, l.Target} {
		if n, ok := byID[id]; ok && n.Type != graph.TypePlatform {
			return NodeColor(n, colors)
		}
	}
	return colors.Resolve(KeyUnknown)
}

func clamp(lo, hi, v float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
