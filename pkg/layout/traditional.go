package layout

import (
	"math"

	"github.com/platmap/platmap/pkg/graph"
)

// Discrete radius bands as fractions of the sector radius. Sources stay
// inside the platform ring, downstreams extend past it.
var (
	traditionalSourceBands     = []float64{0.3, 0.5, 0.7}
	traditionalDownstreamBands = []float64{0.3, 0.5, 0.7, 0.9, 1.1}
)

// TraditionalSector places platforms on a ring and their entities in
// discrete concentric bands inside each platform's sector. Band membership
// cycles by entity index within the platform group, and entities sharing a
// band spread evenly across the sector's angular width. No jitter: the
// positions are fully determined by the grouping.
type TraditionalSector struct{}

func (TraditionalSector) Name() string { return graph.ModeTraditional }

func (TraditionalSector) Layout(ctx *Context) {
	for _, p := range ctx.Platforms {
		s := ctx.Sectors[p.ID]
		p.X = ctx.CenterX + s.Radius*math.Cos(s.Mid())
		p.Y = ctx.CenterY + s.Radius*math.Sin(s.Mid())

		placeBands(ctx, s, ctx.Sources[p.ID], traditionalSourceBands)
		placeBands(ctx, s, ctx.Downstreams[p.ID], traditionalDownstreamBands)
	}
}

// placeBands cycles nodes through the band fractions by index and spreads
// each band's occupants evenly across the sector's angular width.
func placeBands(ctx *Context, s Sector, nodes []*graph.Node, bands []float64) {
	counts := make([]int, len(bands))
	for i := range nodes {
		counts[i%len(bands)]++
	}
	for i, n := range nodes {
		band := i % len(bands)
		pos := i / len(bands)
		angle := s.Start + (float64(pos)+0.5)/float64(counts[band])*s.Width
		r := bands[band] * s.Radius
		n.X = ctx.CenterX + r*math.Cos(angle)
		n.Y = ctx.CenterY + r*math.Sin(angle)
	}
}
