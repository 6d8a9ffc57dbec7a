package style

import (
	"testing"

	"github.com/platmap/platmap/pkg/graph"
)

func TestSymbolSize_MonotonicAndBounded(t *testing.T) {
	o := DefaultSymbolOptions()

	prev := 0.0
	for _, w := range []int{0, 1, 5, 10, 100, 1000, 100000} {
		size := SymbolSize(w, o)
		if size < o.MinSize || size > o.MaxSize {
			t.Errorf("size(%d) = %f outside [%f, %f]", w, size, o.MinSize, o.MaxSize)
		}
		if size < prev {
			t.Errorf("size(%d) = %f decreased from %f", w, size, prev)
		}
		prev = size
	}

	if got, want := SymbolSize(0, o), o.MinSize; got != want {
		t.Errorf("size(0) = %f, want min %f", got, want)
	}
	if got := SymbolSize(-3, o); got != o.MinSize {
		t.Errorf("size(-3) = %f, want clamped min %f", got, o.MinSize)
	}
}

func TestLinkRules_Clamped(t *testing.T) {
	if got := LinkWidth(0); got != 1 {
		t.Errorf("width(0) = %f, want 1", got)
	}
	if got := LinkWidth(1_000_000); got != 5 {
		t.Errorf("width(huge) = %f, want clamp 5", got)
	}
	if got := LinkOpacity(0); got != 0.25 {
		t.Errorf("opacity(0) = %f, want 0.25", got)
	}
	if got := LinkOpacity(1_000_000); got != 0.6 {
		t.Errorf("opacity(huge) = %f, want clamp 0.6", got)
	}
}

func TestDecorate(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "enterprise warehouse", Name: "Enterprise Warehouse", Type: graph.TypePlatform, Weight: 2},
			{ID: "crm", Name: "CRM", Type: graph.TypeSource, Platform: "enterprise warehouse", Weight: 50},
			{ID: "svc", Name: "svc", Type: graph.TypeMixed, Platform: "enterprise warehouse", Weight: 5},
		},
		Links: []graph.Link{
			{Source: "crm", Target: "enterprise warehouse", Weight: 50},
			{Source: "enterprise warehouse", Target: "svc", Weight: 5, Style: graph.LinkStyle{Dashed: true}},
		},
	}

	colors := DefaultColors().Merge(nil)
	Decorate(g, colors, DefaultSymbolOptions())

	plat := g.Node("enterprise warehouse")
	if got, want := plat.Style.SymbolSize, PlatformSymbolSize; got != want {
		t.Errorf("platform size = %f, want fixed %f", got, want)
	}
	// No explicit entry for the platform name: falls back to category color.
	if got, want := plat.Style.Color, colors.Resolve(string(graph.CategoryWarehouse)); got != want {
		t.Errorf("platform color = %q, want warehouse category %q", got, want)
	}

	if got, want := g.Node("svc").Style.Color, colors.Resolve(KeyMixed); got != want {
		t.Errorf("mixed color = %q, want %q", got, want)
	}
	if got, want := g.Node("crm").Style.Color, colors.Resolve(KeySource); got != want {
		t.Errorf("source color = %q, want %q", got, want)
	}

	for _, n := range g.Nodes {
		if n.Style.Opacity != 1.0 {
			t.Errorf("node %s baseline opacity = %f, want 1", n.ID, n.Style.Opacity)
		}
	}
	for i, l := range g.Links {
		if l.Style.Width != LinkWidth(l.Weight) {
			t.Errorf("link %d width = %f, want %f", i, l.Style.Width, LinkWidth(l.Weight))
		}
	}
	if g.Links[1].Style.Curveness == 0 {
		t.Error("bridge link should be curved")
	}
}

func TestColorMap_Overrides(t *testing.T) {
	colors := DefaultColors().Merge(ColorMap{"Data Lake": "#112233", "SOURCE": "#445566"})

	if got, want := colors.Resolve("data lake"), "#112233"; got != want {
		t.Errorf("platform override = %q, want %q", got, want)
	}
	if got, want := colors.Resolve("source"), "#445566"; got != want {
		t.Errorf("role override = %q, want %q", got, want)
	}
	if got, want := colors.Resolve("nonexistent"), colors.Resolve(KeyUnknown); got != want {
		t.Errorf("missing key = %q, want unknown fallback %q", got, want)
	}
}

func TestNodeColor_PlatformNameBeatsCategory(t *testing.T) {
	colors := DefaultColors().Merge(ColorMap{"prod warehouse": "#0000ff"})
	n := &graph.Node{ID: "prod warehouse", Name: "Prod Warehouse", Type: graph.TypePlatform}
	if got, want := NodeColor(n, colors), "#0000ff"; got != want {
		t.Errorf("color = %q, want explicit entry %q", got, want)
	}
}
