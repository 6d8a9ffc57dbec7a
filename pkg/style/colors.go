// Package style derives the visual attributes of a built graph - symbol
// sizes, fill colors, link styling - and recomputes the per-node/per-link
// highlight overlay on every selection change.
//
// Decoration is a pure function of the graph plus an externally supplied
// color map. Highlighting is a pure style overlay: it never touches
// structural fields (id, type, position, weight) and never re-runs layout or
// link synthesis, so it is cheap enough to call on every pointer-hover
// event.
package style

import (
	"strings"

	"github.com/platmap/platmap/pkg/graph"
)

// Role keys understood by the color map alongside platform names and
// category names.
const (
	KeySource       = "source"
	KeyDownstream   = "downstream"
	KeyMixed        = "mixed"
	KeyDataPlatform = "dataplatform"
	KeyUnknown      = "unknown"
)

// ColorMap maps a semantic key - platform name, role key, or platform
// category - to a display color. Keys are matched case-insensitively.
type ColorMap map[string]string

// DefaultColors returns the built-in palette. User-supplied maps are merged
// over these defaults, so a partial override keeps sane colors everywhere
// else.
func DefaultColors() ColorMap {
	return ColorMap{
		KeySource:       "#5470c6",
		KeyDownstream:   "#91cc75",
		KeyMixed:        "#fac858",
		KeyDataPlatform: "#ee6666",
		KeyUnknown:      "#999999",

		string(graph.CategoryWarehouse): "#73c0de",
		string(graph.CategoryLake):      "#3ba272",
		string(graph.CategoryStream):    "#fc8452",
		string(graph.CategoryBigData):   "#9a60b4",
		string(graph.CategoryMesh):      "#ea7ccc",
	}
}

// Merge returns a new map with overrides applied on top of c.
// Override keys are lower-cased so lookups stay case-insensitive.
func (c ColorMap) Merge(overrides ColorMap) ColorMap {
	out := make(ColorMap, len(c)+len(overrides))
	for k, v := range c {
		out[strings.ToLower(k)] = v
	}
	for k, v := range overrides {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Resolve looks up a key case-insensitively. Returns the unknown color when
// the key has no entry, so callers always get a usable color string.
func (c ColorMap) Resolve(key string) string {
	if v, ok := c[strings.ToLower(key)]; ok {
		return v
	}
	if v, ok := c[KeyUnknown]; ok {
		return v
	}
	return DefaultColors()[KeyUnknown]
}

// has reports whether the key has an explicit entry.
func (c ColorMap) has(key string) bool {
	_, ok := c[strings.ToLower(key)]
	return ok
}

// NodeColor resolves a node's fill color.
//
// Platform nodes resolve by platform name first, then by platform category,
// then the dataplatform role color. Entity nodes resolve by role; mixed
// nodes always remap to the mixed entry.
func NodeColor(n *graph.Node, colors ColorMap) string {
	switch n.Type {
	case graph.TypePlatform:
		if colors.has(n.Name) {
			return colors.Resolve(n.Name)
		}
		if colors.has(n.ID) {
			return colors.Resolve(n.ID)
		}
		if cat := graph.CategoryOf(n.Name); colors.has(string(cat)) {
			return colors.Resolve(string(cat))
		}
		return colors.Resolve(KeyDataPlatform)
	case graph.TypeMixed:
		return colors.Resolve(KeyMixed)
	case graph.TypeDownstream:
		return colors.Resolve(KeyDownstream)
	case graph.TypeSource:
		return colors.Resolve(KeySource)
	default:
		return colors.Resolve(KeyUnknown)
	}
}
