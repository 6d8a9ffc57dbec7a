package graph

import (
	"bytes"
	"testing"
)

func testGraph() *Graph {
	return &Graph{
		Mode: ModeVenn,
		Nodes: []Node{
			{ID: "data lake", Name: "Data Lake", Type: TypePlatform, X: 400, Y: 300},
			{ID: "crm", Name: "CRM", Type: TypeSource, Platform: "data lake", Weight: 15, X: 380, Y: 290},
			{ID: "bi", Name: "BI", Type: TypeDownstream, Platform: "data lake", Weight: 4, X: 450, Y: 320},
		},
		Links: []Link{
			{Source: "crm", Target: "data lake", Weight: 10},
			{Source: "data lake", Target: "bi", Weight: 4},
		},
	}
}

func TestGraph_Validate(t *testing.T) {
	if err := testGraph().Validate(); err != nil {
		t.Errorf("valid graph rejected: %v", err)
	}

	dup := testGraph()
	dup.Nodes = append(dup.Nodes, Node{ID: "crm"})
	if err := dup.Validate(); err == nil {
		t.Error("duplicate node id accepted")
	}

	dangling := testGraph()
	dangling.Links = append(dangling.Links, Link{Source: "crm", Target: "ghost"})
	if err := dangling.Validate(); err == nil {
		t.Error("dangling link endpoint accepted")
	}
}

func TestGraph_Neighbors(t *testing.T) {
	g := testGraph()

	got := g.Neighbors("data lake")
	want := []string{"crm", "bi"}
	if len(got) != len(want) {
		t.Fatalf("neighbors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("neighbors[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if n := g.Neighbors("nope"); len(n) != 0 {
		t.Errorf("neighbors of unknown node = %v, want none", n)
	}
}

func TestGraph_RoundTrip(t *testing.T) {
	g := testGraph()

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got, want := len(back.Nodes), len(g.Nodes); got != want {
		t.Errorf("node count = %d, want %d", got, want)
	}
	if got, want := len(back.Links), len(g.Links); got != want {
		t.Errorf("link count = %d, want %d", got, want)
	}
	if got, want := back.Mode, ModeVenn; got != want {
		t.Errorf("mode = %q, want %q", got, want)
	}
	if n := back.Node("crm"); n == nil || n.Weight != 15 {
		t.Errorf("crm node lost in round trip: %+v", n)
	}
}

func TestReadGraph_RejectsInvalid(t *testing.T) {
	bad := []byte(`{"nodes":[{"id":"a"},{"id":"a"}],"links":[]}`)
	if _, err := ReadGraph(bytes.NewReader(bad)); err == nil {
		t.Error("expected validation error for duplicate ids")
	}
}

func TestGraph_CloneIsIndependent(t *testing.T) {
	g := testGraph()
	c := g.Clone()
	c.Nodes[0].Style.Opacity = 0.1
	if g.Nodes[0].Style.Opacity == 0.1 {
		t.Error("clone shares node storage with original")
	}
}
