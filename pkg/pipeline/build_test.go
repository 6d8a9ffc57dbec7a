package pipeline

import (
	"testing"

	"github.com/platmap/platmap/pkg/entity"
	"github.com/platmap/platmap/pkg/graph"
)

func testRecords() entity.Records {
	return entity.Records{
		Sources: []entity.SourceRecord{
			{Application: "CRM", Platform: "Data Lake", TableCount: 10},
			{Application: "CRM", Platform: "Data Lake", TableCount: 5},
			{Application: "ERP", Platform: "Core Warehouse", TableCount: 7},
		},
		Downstreams: []entity.DownstreamRecord{
			{Application: "BI", Platform: "Core Warehouse", TableCount: 4},
			{Application: "ERP", Platform: "Core Warehouse", TableCount: 2},
		},
	}
}

func TestBuild_MergesRecordsIntoNodes(t *testing.T) {
	g, err := Build(testRecords(), Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	crm := g.Node("crm")
	if crm == nil {
		t.Fatal("crm node missing")
	}
	if crm.Weight != 15 {
		t.Errorf("crm weight = %d, want accumulated 15", crm.Weight)
	}
	if crm.Type != graph.TypeSource {
		t.Errorf("crm type = %s, want source", crm.Type)
	}

	erp := g.Node("erp")
	if erp == nil {
		t.Fatal("erp node missing")
	}
	if erp.Type != graph.TypeMixed {
		t.Errorf("erp type = %s, want mixed (source and downstream)", erp.Type)
	}

	// One entity-platform link per record: 3 source + 2 downstream.
	entityLinks := 0
	for _, l := range g.Links {
		if !l.Style.Dashed {
			entityLinks++
		}
	}
	if entityLinks != 5 {
		t.Errorf("entity links = %d, want one per record (5)", entityLinks)
	}
}

func TestBuild_EveryNodePositionedAndStyled(t *testing.T) {
	for mode := range graph.ValidModes {
		g, err := Build(testRecords(), Options{Mode: mode})
		if err != nil {
			t.Fatalf("Build(%s): %v", mode, err)
		}
		if err := g.Validate(); err != nil {
			t.Errorf("Build(%s) produced invalid graph: %v", mode, err)
		}
		for _, n := range g.Nodes {
			if n.X == 0 && n.Y == 0 {
				t.Errorf("mode %s: node %s left at origin", mode, n.ID)
			}
			if n.Style.SymbolSize == 0 || n.Style.Color == "" {
				t.Errorf("mode %s: node %s not decorated", mode, n.ID)
			}
		}
		for i, l := range g.Links {
			if l.Style.Width == 0 || l.Style.Opacity == 0 {
				t.Errorf("mode %s: link %d not decorated", mode, i)
			}
		}
	}
}

func TestBuild_EntityNamedAfterPlatformCollapsesIntoIt(t *testing.T) {
	recs := entity.Records{
		Sources: []entity.SourceRecord{
			// Application shares its canonical name with its own platform.
			{Application: "Data Lake", Platform: "data lake", TableCount: 6},
			{Application: "CRM", Platform: "Data Lake", TableCount: 10},
		},
		Downstreams: []entity.DownstreamRecord{
			{Application: "Data Lake", Platform: "Core Warehouse", TableCount: 3},
		},
	}

	g, err := Build(recs, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("collision produced invalid graph: %v", err)
	}

	seen := 0
	for _, n := range g.Nodes {
		if n.ID == "data lake" {
			seen++
			if n.Type != graph.TypePlatform {
				t.Errorf("data lake type = %s, want platform", n.Type)
			}
			// 2 records touch the platform, plus the absorbed entity's 9.
			if n.Weight != 11 {
				t.Errorf("data lake weight = %d, want connections plus absorbed 11", n.Weight)
			}
		}
	}
	if seen != 1 {
		t.Fatalf("found %d nodes with id %q, want exactly 1", seen, "data lake")
	}

	for _, l := range g.Links {
		if l.Source == l.Target {
			t.Errorf("self-link on %q survived the merge", l.Source)
		}
	}
}

func TestBuild_EmptyInputYieldsEmptyGraph(t *testing.T) {
	g, err := Build(entity.Records{}, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Nodes) != 0 || len(g.Links) != 0 {
		t.Errorf("empty input produced %d nodes, %d links", len(g.Nodes), len(g.Links))
	}
	if g.Nodes == nil || g.Links == nil {
		t.Error("empty graph should carry empty slices, not nil")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	opts := Options{Mode: graph.ModeVenn, Seed: 7}
	a, err := Build(testRecords(), opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build(testRecords(), Options{Mode: graph.ModeVenn, Seed: 7})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i := range a.Nodes {
		if a.Nodes[i] != b.Nodes[i] {
			t.Errorf("node %s differs across identical builds", a.Nodes[i].ID)
		}
	}
}

func TestBuild_InvalidMode(t *testing.T) {
	if _, err := Build(testRecords(), Options{Mode: "spiral"}); err == nil {
		t.Error("invalid mode should fail validation")
	}
}

func TestOptions_ValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if o.Mode != DefaultMode {
		t.Errorf("mode = %q, want %q", o.Mode, DefaultMode)
	}
	if o.Width != DefaultWidth || o.Height != DefaultHeight {
		t.Errorf("frame = %gx%g, want defaults", o.Width, o.Height)
	}
	if o.Seed != DefaultSeed {
		t.Errorf("seed = %d, want %d", o.Seed, DefaultSeed)
	}
	if o.BridgeThreshold != DefaultBridgeThreshold {
		t.Errorf("threshold = %d, want %d", o.BridgeThreshold, DefaultBridgeThreshold)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("formats = %v, want [svg]", o.Formats)
	}

	// Idempotent.
	before := o
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if o.Mode != before.Mode || o.Seed != before.Seed {
		t.Error("second validation changed options")
	}
}

func TestOptions_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative threshold", Options{BridgeThreshold: -1}},
		{"negative width", Options{Width: -10}},
		{"bad mode", Options{Mode: "spiral"}},
		{"bad format", Options{Formats: []string{"gif"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
