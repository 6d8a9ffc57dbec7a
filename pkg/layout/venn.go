package layout

import (
	"math"

	"github.com/platmap/platmap/pkg/graph"
)

// Venn layer geometry. Sources fill 8 concentric layers between 0.3x and
// 0.8x of the sector radius; downstreams fill 9 layers between 1.2x and
// 2.2x. Slot capacity grows with the layer so outer layers hold more nodes.
const (
	vennSourceLayers   = 8
	vennSourceSlotBase = 5
	vennSourceSlotStep = 3
	vennSourceInner    = 0.3
	vennSourceOuter    = 0.8

	vennDownstreamLayers   = 9
	vennDownstreamSlotBase = 7
	vennDownstreamSlotStep = 4
	vennDownstreamInner    = 1.2
	vennDownstreamOuter    = 2.2

	// vennAngleJitter bounds the visual anti-overlap offset in radians.
	vennAngleJitter = 0.025

	// vennWeightPull modulates a node's layer radius by its weight: heavy
	// sources drift toward the platform, heavy downstreams drift away.
	vennWeightPull = 0.05
)

// VennConcentric places each platform's sources on concentric layers inside
// the platform ring and its downstreams on layers outside it. Layer and
// slot assignment cycle by entity index within the group; a node's radius
// within its layer is modulated by weight; the angle gets a small seeded
// jitter. Structure (layer, slot, sector) never depends on the jitter
// source, so two seeded runs agree on everything but sub-degree offsets.
type VennConcentric struct{}

func (VennConcentric) Name() string { return graph.ModeVenn }

func (VennConcentric) Layout(ctx *Context) {
	for _, p := range ctx.Platforms {
		s := ctx.Sectors[p.ID]
		p.X = ctx.CenterX + s.Radius*math.Cos(s.Mid())
		p.Y = ctx.CenterY + s.Radius*math.Sin(s.Mid())

		placeLayers(ctx, s, ctx.Sources[p.ID], vennRing{
			layers:   vennSourceLayers,
			slotBase: vennSourceSlotBase,
			slotStep: vennSourceSlotStep,
			inner:    vennSourceInner,
			outer:    vennSourceOuter,
			pull:     -vennWeightPull, // heavy sources move inward
		})
		placeLayers(ctx, s, ctx.Downstreams[p.ID], vennRing{
			layers:   vennDownstreamLayers,
			slotBase: vennDownstreamSlotBase,
			slotStep: vennDownstreamSlotStep,
			inner:    vennDownstreamInner,
			outer:    vennDownstreamOuter,
			pull:     vennWeightPull, // heavy downstreams move outward
		})
	}
}

// vennRing describes one side of the concentric layout.
type vennRing struct {
	layers   int
	slotBase int
	slotStep int
	inner    float64
	outer    float64
	pull     float64
}

func (r vennRing) slots(layer int) int {
	return r.slotBase + r.slotStep*layer
}

// radiusFactor interpolates the layer's base radius fraction and shifts it
// by the node's weight, clamped back into the ring's [inner, outer] range.
func (r vennRing) radiusFactor(layer, weight int) float64 {
	t := 0.0
	if r.layers > 1 {
		t = float64(layer) / float64(r.layers-1)
	}
	f := r.inner + t*(r.outer-r.inner)
	f *= 1 + r.pull*math.Min(1, math.Log(float64(weight)+1)/math.Log(100))
	return clampf(r.inner, r.outer, f)
}

// placeLayers cycles nodes through the ring's layers by index, then through
// each layer's slots, and positions them with weight-modulated radius and
// jittered angle.
func placeLayers(ctx *Context, s Sector, nodes []*graph.Node, ring vennRing) {
	for i, n := range nodes {
		layer := i % ring.layers
		slots := ring.slots(layer)
		slot := (i / ring.layers) % slots

		angle := s.Start + (float64(slot)+0.5)/float64(slots)*s.Width
		angle += (ctx.Rand.Float64()*2 - 1) * vennAngleJitter

		r := ring.radiusFactor(layer, n.Weight) * s.Radius
		n.X = ctx.CenterX + r*math.Cos(angle)
		n.Y = ctx.CenterY + r*math.Sin(angle)
	}
}

func clampf(lo, hi, v float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
