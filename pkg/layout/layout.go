// Package layout positions the nodes of a platmap graph.
//
// Three interchangeable strategies share one contract: given entity nodes
// grouped by platform, platform nodes, and per-platform angular sectors,
// assign every node a coordinate. The strategies differ only in geometry:
//
//   - traditional: platforms on a ring, entities in discrete concentric
//     radius bands inside each platform's sector
//   - venn: sources inside the platform ring, downstreams outside, across
//     capacity-growing concentric layers
//   - column: fixed vertical bands per node type, for synthetic data that
//     lacks platform-sector semantics
//
// Every structural decision (band, layer, slot, sector membership) is a
// deterministic function of the input. The only non-determinism is a small
// visual anti-overlap jitter drawn from an injectable rand source; seeded
// builds replay exactly.
package layout

import (
	"math/rand/v2"

	"github.com/platmap/platmap/pkg/errors"
	"github.com/platmap/platmap/pkg/graph"
)

// Layout defaults.
const (
	DefaultWidth      = 1200.0
	DefaultHeight     = 800.0
	DefaultSubColumns = 2
	DefaultSeed       = uint64(42)

	// baseRadiusFactor fixes the platform ring radius relative to the
	// shorter frame side.
	baseRadiusFactor = 0.35
)

// Options configures a layout run.
type Options struct {
	Width      float64
	Height     float64
	BaseRadius float64 // 0 means derive from frame size
	SubColumns int     // column mode only
	Seed       uint64
}

// Defaults fills zero values in place.
func (o *Options) Defaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.BaseRadius == 0 {
		o.BaseRadius = baseRadiusFactor * min(o.Width, o.Height)
	}
	if o.SubColumns <= 0 {
		o.SubColumns = DefaultSubColumns
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

// Context carries everything a strategy needs for one layout pass. Node
// slices hold pointers into the build's graph, so strategies position nodes
// in place.
type Context struct {
	Width, Height    float64
	CenterX, CenterY float64
	BaseRadius       float64
	SubColumns       int

	Order   []string          // platform order as assigned by the allocator
	Sectors map[string]Sector // platform key -> sector

	Platforms   []*graph.Node            // in Order
	Sources     map[string][]*graph.Node // by owning platform; includes mixed nodes
	Downstreams map[string][]*graph.Node // by owning platform

	Entities []*graph.Node // all entity nodes in build order (column mode)

	// Rand is the isolated jitter source. Strategies may only use it for
	// bounded pixel-level offsets, never for structural assignment.
	Rand *rand.Rand
}

// NewContext partitions a graph's nodes for the strategies and seeds the
// jitter source. Mixed nodes group with sources in the radial strategies:
// they feed the platform, so they live on the source side of the ring.
func NewContext(g *graph.Graph, order []string, sectors map[string]Sector, opts Options) *Context {
	opts.Defaults()
	ctx := &Context{
		Width:       opts.Width,
		Height:      opts.Height,
		CenterX:     opts.Width / 2,
		CenterY:     opts.Height / 2,
		BaseRadius:  opts.BaseRadius,
		SubColumns:  opts.SubColumns,
		Order:       order,
		Sectors:     sectors,
		Sources:     make(map[string][]*graph.Node),
		Downstreams: make(map[string][]*graph.Node),
		Rand:        rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef)),
	}

	byKey := make(map[string]*graph.Node, len(order))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		switch n.Type {
		case graph.TypePlatform:
			byKey[n.ID] = n
		case graph.TypeDownstream:
			ctx.Downstreams[n.Platform] = append(ctx.Downstreams[n.Platform], n)
			ctx.Entities = append(ctx.Entities, n)
		default: // source and mixed
			ctx.Sources[n.Platform] = append(ctx.Sources[n.Platform], n)
			ctx.Entities = append(ctx.Entities, n)
		}
	}
	for _, key := range order {
		if p, ok := byKey[key]; ok {
			ctx.Platforms = append(ctx.Platforms, p)
		}
	}
	return ctx
}

// Strategy is the shared layout contract.
type Strategy interface {
	// Name returns the mode identifier the strategy implements.
	Name() string
	// Layout assigns a position to every platform and entity node.
	Layout(ctx *Context)
}

// ForMode returns the strategy implementing the given layout mode.
func ForMode(mode string) (Strategy, error) {
	switch mode {
	case graph.ModeTraditional, "":
		return TraditionalSector{}, nil
	case graph.ModeVenn:
		return VennConcentric{}, nil
	case graph.ModeColumn:
		return LayeredColumn{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidMode,
			"unknown layout mode: %q (must be one of: traditional, venn, column)", mode)
	}
}
