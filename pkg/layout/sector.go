package layout

import (
	"math"
	"sort"

	"github.com/platmap/platmap/pkg/entity"
	"github.com/platmap/platmap/pkg/graph"
)

// sectorStartAngle puts the first platform at the top of the frame.
const sectorStartAngle = -math.Pi / 2

// Venn ring perturbation bounds. The platform ring is deliberately broken
// up in venn mode so adjacent platform markers do not sit on one perfect
// circle.
const (
	vennRingBase = 0.9
	vennRingSpan = 0.3
	vennRingEven = 0.95
	vennRingOdd  = 1.05
)

// Sector is one platform's exclusive angular wedge on the layout ring.
// Angles are radians; the wedge covers [Start, Start+Width).
type Sector struct {
	Platform string  // platform key
	Index    int     // position in the allocation order
	Start    float64 // leading edge
	Width    float64 // angular extent, 2*pi / platform count
	Radius   float64 // ring radius for this platform's marker
}

// Mid returns the sector's bisecting angle, where the platform marker sits.
func (s Sector) Mid() float64 {
	return s.Start + s.Width/2
}

// AllocateSectors divides the full circle evenly among the platforms and
// returns the allocation order plus the per-platform sectors.
//
// Radial modes (traditional, venn) order platforms by category rank
// (warehouse, lake, stream, big data, mesh, other) with the platform key
// as tiebreak, so related platform kinds cluster into adjacent wedges.
// Column mode keeps discovery order; it has no angular semantics but the
// allocation still fixes a stable platform ordering for the strategy.
//
// In venn mode each sector's radius is perturbed: platforms with more
// record connections push further out, and alternating sectors contract
// and expand slightly so the ring reads as organic rather than geometric.
// The perturbation is a pure function of the inputs.
func AllocateSectors(platforms []*entity.Platform, mode string, baseRadius float64) ([]string, map[string]Sector) {
	ordered := make([]*entity.Platform, len(platforms))
	copy(ordered, platforms)
	if mode != graph.ModeColumn {
		sort.SliceStable(ordered, func(i, j int) bool {
			ri := graph.CategoryOf(ordered[i].Name).Rank()
			rj := graph.CategoryOf(ordered[j].Name).Rank()
			if ri != rj {
				return ri < rj
			}
			return ordered[i].Key < ordered[j].Key
		})
	}

	maxConns := 0
	for _, p := range ordered {
		if p.Connections > maxConns {
			maxConns = p.Connections
		}
	}

	order := make([]string, 0, len(ordered))
	sectors := make(map[string]Sector, len(ordered))
	if len(ordered) == 0 {
		return order, sectors
	}

	width := 2 * math.Pi / float64(len(ordered))
	for i, p := range ordered {
		radius := baseRadius
		if mode == graph.ModeVenn {
			radius *= vennRadiusFactor(i, p.Connections, maxConns)
		}
		order = append(order, p.Key)
		sectors[p.Key] = Sector{
			Platform: p.Key,
			Index:    i,
			Start:    sectorStartAngle + float64(i)*width,
			Width:    width,
			Radius:   radius,
		}
	}
	return order, sectors
}

// vennRadiusFactor scales a sector's ring radius by connection count and
// sector parity: busier platforms sit further out, and neighbors alternate
// between a contracted and an expanded ring.
func vennRadiusFactor(index, conns, maxConns int) float64 {
	f := vennRingBase
	if maxConns > 0 {
		f += vennRingSpan * math.Min(1, float64(conns)/float64(maxConns))
	}
	if index%2 == 0 {
		return f * vennRingEven
	}
	return f * vennRingOdd
}
