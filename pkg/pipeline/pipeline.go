// Package pipeline provides the core graph-building pipeline for platmap.
//
// This package implements the complete ingest → layout → render pipeline
// shared by the CLI and the interactive viewer. Centralizing it here keeps
// every entry point on the same defaults, caching, and validation.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: normalize records, resolve nodes, allocate platform sectors,
//     run the layout strategy, synthesize links, and decorate styles
//  2. Render: generate output artifacts (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Highlight changes never re-enter the pipeline; they are a pure style
// overlay applied to an already-built graph.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Mode:    graph.ModeVenn,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, records, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Build only
//	g, err := runner.Build(ctx, records, opts)
//
//	// Render an existing graph
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/platmap/platmap/pkg/errors"
	"github.com/platmap/platmap/pkg/graph"
	"github.com/platmap/platmap/pkg/links"
	"github.com/platmap/platmap/pkg/style"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Viewer
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 1200.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 800.0

	// DefaultSeed is the default jitter seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultSubColumns is the default sub-column count for column mode.
	DefaultSubColumns = 2
)

// DefaultBridgeThreshold mirrors the link synthesizer's materiality cutoff.
const DefaultBridgeThreshold = links.DefaultBridgeThreshold

// DefaultMode is the default layout strategy.
const DefaultMode = graph.ModeTraditional

// Format constants for output artifacts.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run. The struct
// serializes to JSON so a run can be recorded alongside its artifacts.
type Options struct {
	// Build options
	Mode            string  `json:"mode,omitempty"`
	Width           float64 `json:"width,omitempty"`
	Height          float64 `json:"height,omitempty"`
	Seed            uint64  `json:"seed,omitempty"`
	BridgeThreshold int     `json:"bridge_threshold,omitempty"` // 0 means default
	SubColumns      int     `json:"sub_columns,omitempty"`
	Refresh         bool    `json:"refresh,omitempty"`

	// Render options
	Formats []string       `json:"formats,omitempty"`
	Colors  style.ColorMap `json:"colors,omitempty"` // overrides merged onto the defaults

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// BuildID uniquely identifies this run.
	BuildID uuid.UUID

	// Graph is the built, decorated graph.
	Graph *graph.Graph

	// RecordsHash is the content hash of the input records.
	RecordsHash string

	// GraphHash is the content hash of the built graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	LinkCount   int
	BridgeCount int
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the built graph came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks all fields and applies defaults for the
// full pipeline. Idempotent: repeated calls are no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild validates and sets defaults for the build stage.
func (o *Options) ValidateForBuild() error {
	o.SetBuildDefaults()
	if !graph.ValidModes[o.Mode] {
		return errors.New(errors.ErrCodeInvalidMode,
			"invalid mode: %q (must be one of: traditional, venn, column)", o.Mode)
	}
	if o.BridgeThreshold < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"bridge threshold must not be negative, got %d", o.BridgeThreshold)
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"frame dimensions must not be negative, got %gx%g", o.Width, o.Height)
	}
	return nil
}

// SetBuildDefaults sets default values for the build stage.
func (o *Options) SetBuildDefaults() {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.BridgeThreshold == 0 {
		o.BridgeThreshold = DefaultBridgeThreshold
	}
	if o.SubColumns == 0 {
		o.SubColumns = DefaultSubColumns
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for the render stage.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for the render stage.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}
