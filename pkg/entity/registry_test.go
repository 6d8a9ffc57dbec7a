package entity

import "testing"

func src(app, plat string, tables int) Normalized {
	return SourceRecord{Application: app, Platform: plat, TableCount: tables}.Normalize()
}

func TestRegistry_WeightAccumulates(t *testing.T) {
	r := NewRegistry()
	r.UpsertSource(src("CRM", "data lake", 10))
	r.UpsertSource(src("CRM", "data lake", 5))

	e, ok := r.Get("crm")
	if !ok {
		t.Fatal("missing entity crm")
	}
	if got, want := e.Weight, 15; got != want {
		t.Errorf("weight = %d, want %d", got, want)
	}
	if e.Mixed {
		t.Error("same-role repeat must not promote to mixed")
	}
	if got, want := len(r.All()), 1; got != want {
		t.Errorf("entity count = %d, want %d", got, want)
	}
}

func TestRegistry_MixedPromotion(t *testing.T) {
	r := NewRegistry()
	r.UpsertSource(src("svc", "p1", 2))
	r.UpsertDownstream(DownstreamRecord{Application: "svc", Platform: "p2", TableCount: 3}.Normalize())

	e, _ := r.Get("svc")
	if !e.Mixed {
		t.Error("opposite-role upsert must promote to mixed")
	}
	if got, want := e.Weight, 5; got != want {
		t.Errorf("weight = %d, want %d", got, want)
	}
	// First write wins for platform ownership.
	if got, want := e.PlatformKey, "p1"; got != want {
		t.Errorf("platform = %q, want %q (first write wins)", got, want)
	}
	// Promotion is permanent: further source upserts don't demote.
	r.UpsertSource(src("svc", "p3", 1))
	if e, _ := r.Get("svc"); !e.Mixed {
		t.Error("mixed promotion must be permanent")
	}
}

func TestRegistry_MergeCommutative(t *testing.T) {
	a := NewRegistry()
	a.UpsertSource(src("svc", "p1", 2))
	a.UpsertDownstream(DownstreamRecord{Application: "svc", Platform: "p2", TableCount: 3}.Normalize())

	b := NewRegistry()
	b.UpsertDownstream(DownstreamRecord{Application: "svc", Platform: "p2", TableCount: 3}.Normalize())
	b.UpsertSource(src("svc", "p1", 2))

	ea, _ := a.Get("svc")
	eb, _ := b.Get("svc")
	if ea.Mixed != eb.Mixed || ea.Weight != eb.Weight {
		t.Errorf("merge not commutative: (%v,%d) vs (%v,%d)", ea.Mixed, ea.Weight, eb.Mixed, eb.Weight)
	}
}

func TestRegistry_CaseInsensitiveMerge(t *testing.T) {
	r := NewRegistry()
	r.UpsertSource(src("Billing", "p1", 1))
	r.UpsertSource(src("BILLING", "p1", 2))

	if got, want := len(r.All()), 1; got != want {
		t.Fatalf("entity count = %d, want %d", got, want)
	}
	e, _ := r.Get("billing")
	if got, want := e.Weight, 3; got != want {
		t.Errorf("weight = %d, want %d", got, want)
	}
}

func TestRegistry_PlatformDiscoveryOrder(t *testing.T) {
	r := NewRegistry()
	r.Ingest(Records{
		Sources: []SourceRecord{
			{Application: "a", Platform: "warehouse", TableCount: 1},
			{Application: "b", Platform: "lake", TableCount: 1},
			{Application: "c", Platform: "warehouse", TableCount: 1},
		},
		Downstreams: []DownstreamRecord{
			{Application: "d", Platform: "stream", TableCount: 1},
		},
	})

	plats := r.Platforms()
	want := []string{"warehouse", "lake", "stream"}
	if len(plats) != len(want) {
		t.Fatalf("platform count = %d, want %d", len(plats), len(want))
	}
	for i, p := range plats {
		if p.Key != want[i] {
			t.Errorf("platform[%d] = %q, want %q", i, p.Key, want[i])
		}
	}
	wh, _ := r.Platform("warehouse")
	if got, want := wh.Connections, 2; got != want {
		t.Errorf("warehouse connections = %d, want %d", got, want)
	}
}

func TestRegistry_EntityInsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.UpsertSource(src("z", "p", 1))
	r.UpsertSource(src("a", "p", 1))
	r.UpsertSource(src("z", "p", 1)) // repeat keeps original slot

	all := r.All()
	if got := []string{all[0].Key, all[1].Key}; got[0] != "z" || got[1] != "a" {
		t.Errorf("order = %v, want [z a]", got)
	}
	if all[0].Seq != 0 || all[1].Seq != 1 {
		t.Errorf("seq = (%d,%d), want (0,1)", all[0].Seq, all[1].Seq)
	}
}
