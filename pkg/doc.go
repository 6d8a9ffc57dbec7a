// Package pkg provides the core libraries for platmap graph visualization.
//
// # Overview
//
// Platmap turns flat lists of source and downstream relationship records
// into a positioned, styled graph: business entities cluster around the
// data platforms they feed and consume. The pkg directory is organized
// into five main areas:
//
//  1. [entity] - Record normalization and the node registry
//  2. [layout] - Platform sector allocation and the three layout strategies
//  3. [links] - Link synthesis and cross-platform bridge aggregation
//  4. [style] - Visual attribute derivation and the highlight engine
//  5. [pipeline] - Orchestration (build → render) with caching
//
// Supporting packages: [graph] (the serialized node/link model), [render]
// (SVG and Graphviz sinks), [cache] (content-addressed byte store),
// [sched] (deferred rebuild scheduling), [errors] (coded errors), and
// [buildinfo] (ldflags version data).
//
// # Architecture
//
// The typical data flow through platmap:
//
//	Source/Downstream records
//	         ↓
//	    [entity] package (normalize + merge into nodes)
//	         ↓
//	    [layout] package (sectors + positions)
//	         ↓
//	    [links] package (entity-platform links + bridges)
//	         ↓
//	    [style] package (sizes, colors, opacity, highlight)
//	         ↓
//	    SVG/PNG/DOT/JSON output
//
// # Quick Start
//
// Build and render a graph:
//
//	import (
//	    "context"
//	    "github.com/platmap/platmap/pkg/entity"
//	    "github.com/platmap/platmap/pkg/pipeline"
//	)
//
//	// 1. Load records
//	recs, _ := entity.ReadRecordsFile("records.json")
//
//	// 2. Build and render through the pipeline
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), recs, pipeline.Options{
//	    Mode:    "venn",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
//	// 3. Apply a hover highlight (cheap, no layout re-run)
//	highlighted := runner.Highlight(result.Graph, "crm")
//
// # Determinism
//
// A build is a pure function of its records and options. The only
// randomness is a small positional jitter drawn from a seeded source, so
// identical inputs reproduce identical graphs, which is what makes the
// content-hash caching in [pipeline] sound.
package pkg
