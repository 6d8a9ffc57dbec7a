package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platmap/platmap/pkg/cache"
	"github.com/platmap/platmap/pkg/graph"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestRunner_Execute(t *testing.T) {
	r := testRunner(t)
	opts := Options{Formats: []string{FormatJSON, FormatSVG, FormatDOT}}

	result, err := r.Execute(context.Background(), testRecords(), opts)
	require.NoError(t, err)

	assert.NotEqual(t, "", result.BuildID.String())
	assert.NotEmpty(t, result.RecordsHash)
	assert.NotEmpty(t, result.GraphHash)
	assert.Equal(t, len(result.Graph.Nodes), result.Stats.NodeCount)
	assert.Equal(t, len(result.Graph.Links), result.Stats.LinkCount)
	assert.False(t, result.CacheInfo.BuildHit, "first run must not hit the cache")

	for _, format := range opts.Formats {
		assert.NotEmpty(t, result.Artifacts[format], "missing %s artifact", format)
	}
}

func TestRunner_BuildCacheHit(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()
	opts := Options{Mode: graph.ModeVenn}

	first, hit, err := r.BuildWithCacheInfo(ctx, testRecords(), opts)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := r.BuildWithCacheInfo(ctx, testRecords(), Options{Mode: graph.ModeVenn})
	require.NoError(t, err)
	assert.True(t, hit, "identical inputs should hit the cache")
	assert.Equal(t, first, second)
}

func TestRunner_RefreshBypassesCache(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()

	_, _, err := r.BuildWithCacheInfo(ctx, testRecords(), Options{})
	require.NoError(t, err)

	_, hit, err := r.BuildWithCacheInfo(ctx, testRecords(), Options{Refresh: true})
	require.NoError(t, err)
	assert.False(t, hit, "refresh must rebuild")
}

func TestRunner_DifferentModesMissCache(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()

	_, _, err := r.BuildWithCacheInfo(ctx, testRecords(), Options{Mode: graph.ModeTraditional})
	require.NoError(t, err)

	_, hit, err := r.BuildWithCacheInfo(ctx, testRecords(), Options{Mode: graph.ModeColumn})
	require.NoError(t, err)
	assert.False(t, hit, "a different mode is a different build")
}

func TestRunner_RenderCacheHit(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()

	g, err := Build(testRecords(), Options{})
	require.NoError(t, err)

	opts := Options{Formats: []string{FormatSVG}}
	first, hit, err := r.RenderWithCacheInfo(ctx, g, opts)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := r.RenderWithCacheInfo(ctx, g, opts)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
}

func TestRunner_NilCollaboratorsDefault(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	assert.NotNil(t, r.Cache)
	assert.NotNil(t, r.Keyer)
	assert.NotNil(t, r.Logger)
}

func TestRunner_HighlightDoesNotRebuild(t *testing.T) {
	r := testRunner(t)
	g, err := Build(testRecords(), Options{})
	require.NoError(t, err)

	out := r.Highlight(g, "crm")
	require.NotNil(t, out)
	assert.Equal(t, 1.0, out.Node("crm").Style.Opacity)
	assert.Len(t, out.Nodes, len(g.Nodes), "highlight must not change structure")
}
