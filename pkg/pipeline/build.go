package pipeline

import (
	"github.com/platmap/platmap/pkg/entity"
	"github.com/platmap/platmap/pkg/graph"
	"github.com/platmap/platmap/pkg/layout"
	"github.com/platmap/platmap/pkg/links"
	"github.com/platmap/platmap/pkg/style"
)

// Build runs the full build stage: normalize and register the records,
// allocate platform sectors, position every node with the selected layout
// strategy, synthesize the link set, and decorate visual attributes.
//
// The build is a pure function of (records, options): each run allocates a
// fresh registry and graph, so concurrent builds never share state. Empty
// input degrades to an empty graph, not an error.
func Build(recs entity.Records, opts Options) (*graph.Graph, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	g := &graph.Graph{
		Mode:   opts.Mode,
		Width:  opts.Width,
		Height: opts.Height,
		Nodes:  []graph.Node{},
		Links:  []graph.Link{},
	}
	if recs.Empty() {
		return g, nil
	}

	reg := entity.NewRegistry()
	reg.Ingest(recs)

	// An application can share its canonical name with a platform. Node
	// identity is the canonical name and a platform node's ID must stay the
	// platform name, so such an entity collapses into the platform node:
	// its weight is absorbed here and its record links become self-links,
	// dropped after synthesis.
	absorbed := make(map[string]int)
	for _, e := range reg.All() {
		if _, ok := reg.Platform(e.Key); ok {
			absorbed[e.Key] = e.Weight
		}
	}

	for _, p := range reg.Platforms() {
		g.Nodes = append(g.Nodes, graph.Node{
			ID:     p.Key,
			Name:   p.Name,
			Type:   graph.TypePlatform,
			Weight: p.Connections + absorbed[p.Key],
		})
	}
	for _, e := range reg.All() {
		if _, ok := absorbed[e.Key]; ok {
			continue
		}
		g.Nodes = append(g.Nodes, graph.Node{
			ID:       e.Key,
			Name:     e.Name,
			Type:     nodeType(e),
			Platform: e.PlatformKey,
			Weight:   e.Weight,
		})
	}

	lopts := layout.Options{
		Width:      opts.Width,
		Height:     opts.Height,
		SubColumns: opts.SubColumns,
		Seed:       opts.Seed,
	}
	lopts.Defaults()

	order, sectors := layout.AllocateSectors(reg.Platforms(), opts.Mode, lopts.BaseRadius)
	strategy, err := layout.ForMode(opts.Mode)
	if err != nil {
		return nil, err
	}
	strategy.Layout(layout.NewContext(g, order, sectors, lopts))

	for _, l := range links.Synthesize(recs, opts.BridgeThreshold) {
		if l.Source == l.Target {
			continue
		}
		g.Links = append(g.Links, l)
	}

	style.Decorate(g, style.DefaultColors().Merge(opts.Colors), style.DefaultSymbolOptions())
	return g, nil
}

// nodeType maps a registered entity to its graph node type. Mixed wins over
// the entity's first-seen role.
func nodeType(e *entity.Entity) graph.NodeType {
	if e.Mixed {
		return graph.TypeMixed
	}
	if e.Role == entity.RoleDownstream {
		return graph.TypeDownstream
	}
	return graph.TypeSource
}
