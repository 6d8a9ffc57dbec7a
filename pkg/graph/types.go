// Package graph defines the render-ready graph produced by one platmap
// build: positioned, styled nodes and links consumable by any rendering
// surface that accepts coordinates and styled edges.
//
// A Graph is built fresh for every (records, mode) combination and is
// immutable once built, except for the highlight engine's non-structural
// style overlay (see pkg/style). The JSON form is the canonical wire and
// file format used by the CLI, the cache, and the render sinks.
package graph

import (
	"encoding/json"
	"fmt"
	"slices"
)

// NodeType classifies a node's role in the relationship graph.
type NodeType string

// Node types.
const (
	TypePlatform   NodeType = "platform"
	TypeSource     NodeType = "source"
	TypeDownstream NodeType = "downstream"
	TypeMixed      NodeType = "mixed"
)

// Layout mode identifiers, shared by pipeline options, cache keys, and CLI
// flags.
const (
	ModeTraditional = "traditional"
	ModeVenn        = "venn"
	ModeColumn      = "column"
)

// ValidModes is the set of supported layout modes.
var ValidModes = map[string]bool{
	ModeTraditional: true,
	ModeVenn:        true,
	ModeColumn:      true,
}

// Node is a positioned, styled graph vertex.
//
// Invariants: exactly one node per canonical ID; a platform node's ID is the
// lower-cased platform name itself; a node is mixed iff it was observed as
// both a source and a downstream contributor during the build.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     NodeType `json:"type"`
	Platform string   `json:"platform,omitempty"` // owning platform key; empty for platform nodes
	Weight   int      `json:"weight"`             // sum of contributing records' table counts

	X float64 `json:"x"`
	Y float64 `json:"y"`

	Style NodeStyle  `json:"style"`
	Label LabelStyle `json:"label"`
}

// NodeStyle holds the derived visual attributes of a node. These fields are
// the only part of a node the highlight engine may overlay.
type NodeStyle struct {
	SymbolSize  float64 `json:"symbol_size"`
	Color       string  `json:"color"`
	BorderColor string  `json:"border_color,omitempty"`
	BorderWidth float64 `json:"border_width,omitempty"`
	Opacity     float64 `json:"opacity"`
}

// LabelStyle controls node label rendering.
type LabelStyle struct {
	Show     bool    `json:"show"`
	FontSize float64 `json:"font_size,omitempty"`
	Color    string  `json:"color,omitempty"`
}

// Link is a directed, styled edge between two nodes, referenced by ID.
//
// Entity-platform links are 1:1 with contributing records; platform-platform
// links are synthesized aggregates counting distinct record pairs bridging
// two platforms.
type Link struct {
	Source string    `json:"source"`
	Target string    `json:"target"`
	Weight int       `json:"weight"`
	Style  LinkStyle `json:"style"`
}

// LinkStyle holds the derived visual attributes of a link.
type LinkStyle struct {
	Width     float64 `json:"width"`
	Color     string  `json:"color,omitempty"`
	Opacity   float64 `json:"opacity"`
	Curveness float64 `json:"curveness,omitempty"`
	Dashed    bool    `json:"dashed,omitempty"`
}

// Graph is the node set plus link set produced by one full build.
type Graph struct {
	Mode   string  `json:"mode,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Nodes  []Node  `json:"nodes"`
	Links  []Link  `json:"links"`
}

// Node returns a pointer to the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Neighbors returns the IDs of nodes directly linked to id, in link order.
// Each neighbor appears once.
func (g *Graph) Neighbors(id string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(n string) {
		if n != id && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, l := range g.Links {
		switch id {
		case l.Source:
			add(l.Target)
		case l.Target:
			add(l.Source)
		}
	}
	return out
}

// Clone returns a deep copy of the graph. Node and link structs contain no
// reference types, so copying the slices is sufficient.
func (g *Graph) Clone() *Graph {
	out := *g
	out.Nodes = slices.Clone(g.Nodes)
	out.Links = slices.Clone(g.Links)
	return &out
}

// Validate checks structural integrity: unique node IDs and link endpoints
// that reference existing nodes.
func (g *Graph) Validate() error {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if ids[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		ids[n.ID] = true
	}
	for _, l := range g.Links {
		if !ids[l.Source] {
			return fmt.Errorf("link source %q not in node set", l.Source)
		}
		if !ids[l.Target] {
			return fmt.Errorf("link target %q not in node set", l.Target)
		}
	}
	return nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("unmarshal graph: %w", err)
	}
	return &g, nil
}
