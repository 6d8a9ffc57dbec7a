package layout

import "github.com/platmap/platmap/pkg/graph"

// Horizontal band centers as fractions of the frame width. Mixed entities
// get their own band between the sources and the platforms.
const (
	columnSourceBand     = 0.15
	columnMixedBand      = 0.325
	columnPlatformBand   = 0.5
	columnDownstreamBand = 0.85

	// columnSpread is the horizontal distance between sub-columns as a
	// fraction of the frame width.
	columnSpread = 0.04

	// columnYJitter bounds the vertical anti-overlap offset as a fraction
	// of the frame height.
	columnYJitter = 0.01
)

// LayeredColumn arranges nodes in vertical bands by type: sources on the
// left, mixed entities next, platforms in the center, downstreams on the
// right. Entity bands split into sub-columns with a zig-zag vertical
// stagger so long columns do not collapse into a single dense line.
// Platform order and in-band order follow discovery order.
type LayeredColumn struct{}

func (LayeredColumn) Name() string { return graph.ModeColumn }

func (LayeredColumn) Layout(ctx *Context) {
	// Platforms: one centered column, evenly spaced.
	for i, p := range ctx.Platforms {
		p.X = columnPlatformBand * ctx.Width
		p.Y = ctx.Height * float64(i+1) / float64(len(ctx.Platforms)+1)
	}

	var sources, mixed, downstreams []*graph.Node
	for _, n := range ctx.Entities {
		switch n.Type {
		case graph.TypeMixed:
			mixed = append(mixed, n)
		case graph.TypeDownstream:
			downstreams = append(downstreams, n)
		default:
			sources = append(sources, n)
		}
	}

	placeColumn(ctx, sources, columnSourceBand)
	placeColumn(ctx, mixed, columnMixedBand)
	placeColumn(ctx, downstreams, columnDownstreamBand)
}

// placeColumn distributes nodes across the band's sub-columns row by row.
// Odd sub-columns shift down half a row step, producing the zig-zag
// stagger; a small seeded jitter breaks residual vertical alignment.
func placeColumn(ctx *Context, nodes []*graph.Node, band float64) {
	if len(nodes) == 0 {
		return
	}
	cols := ctx.SubColumns
	rows := (len(nodes) + cols - 1) / cols
	step := ctx.Height / float64(rows+1)

	for i, n := range nodes {
		col := i % cols
		row := i / cols

		x := band*ctx.Width + (float64(col)-float64(cols-1)/2)*columnSpread*ctx.Width
		y := step * float64(row+1)
		if col%2 == 1 {
			y += step / 2
		}
		y += (ctx.Rand.Float64()*2 - 1) * columnYJitter * ctx.Height

		n.X = x
		n.Y = y
	}
}
