package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/platmap/platmap/pkg/cache"
	"github.com/platmap/platmap/pkg/entity"
	"github.com/platmap/platmap/pkg/errors"
	"github.com/platmap/platmap/pkg/graph"
	"github.com/platmap/platmap/pkg/render"
	"github.com/platmap/platmap/pkg/style"
)

// Runner encapsulates pipeline execution with caching. Both the CLI and
// the interactive viewer use it so caching logic lives in one place.
//
// The Runner is stateless except for the cache and logger; it stores no
// pipeline results, so multiple goroutines can share one Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer falls back to the default keyer; a nil cache disables
// caching via the null cache.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, recs entity.Records, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}

	result := &Result{
		BuildID:   uuid.New(),
		Artifacts: make(map[string][]byte),
	}
	if data, err := entity.MarshalRecords(recs); err == nil {
		result.RecordsHash = cache.Hash(data)
	}

	buildStart := time.Now()
	g, buildHit, err := r.BuildWithCacheInfo(ctx, recs, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.LinkCount = len(g.Links)
	result.Stats.BridgeCount = countBridges(g)
	result.CacheInfo.BuildHit = buildHit

	if data, err := graph.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	r.Logger.Info("built graph",
		"mode", opts.Mode,
		"nodes", result.Stats.NodeCount,
		"links", result.Stats.LinkCount,
		"bridges", result.Stats.BridgeCount,
		"cached", buildHit,
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo builds the graph with caching and reports whether the
// result came from cache.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, recs entity.Records, opts Options) (*graph.Graph, bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}

	recordsData, err := entity.MarshalRecords(recs)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize records for cache key")
	}
	cacheKey := r.Keyer.GraphKey(cache.Hash(recordsData), cache.GraphKeyOpts{
		Mode:            opts.Mode,
		Width:           opts.Width,
		Height:          opts.Height,
		Seed:            opts.Seed,
		BridgeThreshold: opts.BridgeThreshold,
		SubColumns:      opts.SubColumns,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graph.ReadGraph(bytes.NewReader(data)); err == nil {
				return g, true, nil
			}
			// Unreadable cached graph: fall through and rebuild.
		}
	}

	g, err := Build(recs, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := graph.MarshalGraph(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
	}
	return g, false, nil
}

// Build is a convenience wrapper that discards the cache hit info.
func (r *Runner) Build(ctx context.Context, recs entity.Records, opts Options) (*graph.Graph, error) {
	g, _, err := r.BuildWithCacheInfo(ctx, recs, opts)
	return g, err
}

// RenderWithCacheInfo renders all requested formats with per-artifact
// caching and reports whether every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize graph for cache key")
	}
	graphHash := cache.Hash(graphData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(graphHash, cache.ArtifactKeyOpts{Format: format})
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(ctx, g, format)
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		rendered[format] = data
		key := r.Keyer.ArtifactKey(graphHash, cache.ArtifactKeyOpts{Format: format})
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// Highlight applies a selection overlay to a built graph. It never
// re-enters the pipeline; hover churn stays cheap.
func (r *Runner) Highlight(g *graph.Graph, selection any) *graph.Graph {
	return style.SetHighlight(g, selection)
}

func (r *Runner) renderFormat(ctx context.Context, g *graph.Graph, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalGraph(g)
	case FormatSVG:
		return render.SVG(g)
	case FormatDOT:
		return render.DOT(g)
	case FormatPNG:
		return render.Image(ctx, g, render.FormatPNG)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

// countBridges counts the synthesized platform-platform links.
func countBridges(g *graph.Graph) int {
	n := 0
	for _, l := range g.Links {
		if l.Style.Dashed {
			n++
		}
	}
	return n
}
