package layout

import (
	"math"
	"testing"

	"github.com/platmap/platmap/pkg/entity"
	"github.com/platmap/platmap/pkg/graph"
)

func TestAllocateSectors_CategoryOrder(t *testing.T) {
	platforms := []*entity.Platform{
		{Key: "ops mesh", Name: "Ops Mesh", Seq: 0},
		{Key: "events kafka", Name: "Events Kafka", Seq: 1},
		{Key: "misc", Name: "Misc", Seq: 2},
		{Key: "raw lake", Name: "Raw Lake", Seq: 3},
		{Key: "core warehouse", Name: "Core Warehouse", Seq: 4},
	}

	order, sectors := AllocateSectors(platforms, graph.ModeTraditional, 100)

	want := []string{"core warehouse", "raw lake", "events kafka", "ops mesh", "misc"}
	if len(order) != len(want) {
		t.Fatalf("order length = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}

	width := 2 * math.Pi / float64(len(platforms))
	for i, key := range order {
		s := sectors[key]
		if s.Index != i {
			t.Errorf("sector %q index = %d, want %d", key, s.Index, i)
		}
		if math.Abs(s.Width-width) > 1e-9 {
			t.Errorf("sector %q width = %f, want %f", key, s.Width, width)
		}
		if math.Abs(s.Start-(sectorStartAngle+float64(i)*width)) > 1e-9 {
			t.Errorf("sector %q start = %f", key, s.Start)
		}
		if s.Radius != 100 {
			t.Errorf("sector %q radius = %f, want base 100", key, s.Radius)
		}
	}
}

func TestAllocateSectors_SameCategoryTiebreaksByKey(t *testing.T) {
	platforms := []*entity.Platform{
		{Key: "z warehouse", Name: "Z Warehouse"},
		{Key: "a warehouse", Name: "A Warehouse"},
	}

	order, _ := AllocateSectors(platforms, graph.ModeVenn, 100)

	if order[0] != "a warehouse" || order[1] != "z warehouse" {
		t.Errorf("order = %v, want keys ascending within category", order)
	}
}

func TestAllocateSectors_ColumnKeepsDiscoveryOrder(t *testing.T) {
	platforms := []*entity.Platform{
		{Key: "ops mesh", Name: "Ops Mesh"},
		{Key: "core warehouse", Name: "Core Warehouse"},
	}

	order, _ := AllocateSectors(platforms, graph.ModeColumn, 100)

	if order[0] != "ops mesh" || order[1] != "core warehouse" {
		t.Errorf("order = %v, want discovery order preserved", order)
	}
}

func TestAllocateSectors_VennRadiusPerturbed(t *testing.T) {
	platforms := []*entity.Platform{
		{Key: "a warehouse", Name: "A Warehouse", Connections: 10},
		{Key: "b warehouse", Name: "B Warehouse", Connections: 2},
		{Key: "c warehouse", Name: "C Warehouse", Connections: 0},
	}

	_, sectors := AllocateSectors(platforms, graph.ModeVenn, 100)

	lo := 100 * vennRingBase * vennRingEven
	hi := 100 * (vennRingBase + vennRingSpan) * vennRingOdd
	for key, s := range sectors {
		if s.Radius < lo || s.Radius > hi {
			t.Errorf("sector %q radius = %f outside [%f, %f]", key, s.Radius, lo, hi)
		}
	}

	// Busiest platform on an even index outranks an idle one on an even index.
	if sectors["a warehouse"].Radius <= sectors["c warehouse"].Radius {
		t.Error("higher connection count should push the ring outward")
	}

	// Deterministic: same inputs, same radii.
	_, again := AllocateSectors(platforms, graph.ModeVenn, 100)
	for key := range sectors {
		if sectors[key].Radius != again[key].Radius {
			t.Errorf("sector %q radius not deterministic", key)
		}
	}
}

func TestAllocateSectors_Empty(t *testing.T) {
	order, sectors := AllocateSectors(nil, graph.ModeTraditional, 100)
	if len(order) != 0 || len(sectors) != 0 {
		t.Errorf("empty input produced %d sectors", len(sectors))
	}
}
