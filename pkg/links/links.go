// Package links synthesizes the edge set of a platmap graph from the raw
// relationship records.
//
// Two kinds of links exist. Entity-platform links are emitted one per
// contributing record, each carrying that record's own table count, so an
// entity fed by many records shows many strands rather than one thick one.
// Platform-platform bridges are aggregated: every (source record,
// downstream record) pair sharing an entity name across two different
// platforms increments a symmetric counter, and only platform pairs whose
// count clears a materiality threshold surface as dashed bridge links.
package links

import (
	"github.com/platmap/platmap/pkg/entity"
	"github.com/platmap/platmap/pkg/graph"
)

// DefaultBridgeThreshold is the minimum aggregated bridging count a
// platform pair must exceed before its bridge link is drawn. Pairs at or
// below the threshold stay invisible to avoid quadratic clutter.
const DefaultBridgeThreshold = 3

// Synthesize produces the full link set for one build. Source records link
// entity to platform, downstream records link platform to entity, then the
// qualifying platform bridges are appended. Link order is deterministic:
// source links in record order, downstream links in record order, bridges
// in first-bridged order.
func Synthesize(recs entity.Records, bridgeThreshold int) []graph.Link {
	out := make([]graph.Link, 0, len(recs.Sources)+len(recs.Downstreams))

	for _, r := range recs.Sources {
		n := r.Normalize()
		out = append(out, graph.Link{
			Source: n.Key,
			Target: n.PlatformKey,
			Weight: n.Weight,
		})
	}
	for _, r := range recs.Downstreams {
		n := r.Normalize()
		out = append(out, graph.Link{
			Source: n.PlatformKey,
			Target: n.Key,
			Weight: n.Weight,
		})
	}

	return append(out, bridges(recs, bridgeThreshold)...)
}

// bridgeKey identifies a platform pair independent of direction.
type bridgeKey struct {
	a, b string // sorted, a < b
}

func newBridgeKey(p1, p2 string) bridgeKey {
	if p1 > p2 {
		p1, p2 = p2, p1
	}
	return bridgeKey{a: p1, b: p2}
}

// bridges aggregates cross-platform record pairs and emits a dashed link
// for every platform pair whose count exceeds the threshold.
//
// The count is over record pairs, not entities: an entity with two source
// records on one platform and three downstream records on another
// contributes six to that pair. That matches the intent of the threshold,
// which measures traffic volume rather than distinct bridging entities.
func bridges(recs entity.Records, threshold int) []graph.Link {
	// Downstream platforms per entity key, in record order.
	downs := make(map[string][]string)
	for _, r := range recs.Downstreams {
		n := r.Normalize()
		downs[n.Key] = append(downs[n.Key], n.PlatformKey)
	}

	counts := make(map[bridgeKey]int)
	var order []bridgeKey
	for _, r := range recs.Sources {
		n := r.Normalize()
		for _, dp := range downs[n.Key] {
			if dp == n.PlatformKey {
				continue
			}
			k := newBridgeKey(n.PlatformKey, dp)
			if counts[k] == 0 {
				order = append(order, k)
			}
			counts[k]++
		}
	}

	var out []graph.Link
	for _, k := range order {
		if counts[k] <= threshold {
			continue
		}
		out = append(out, graph.Link{
			Source: k.a,
			Target: k.b,
			Weight: counts[k],
			Style:  graph.LinkStyle{Dashed: true},
		})
	}
	return out
}
