package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/platmap/platmap/pkg/entity"
	"github.com/platmap/platmap/pkg/graph"
	"github.com/platmap/platmap/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		configPath string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [graph.json|records.json]",
		Short: "Render a graph to SVG, PNG, DOT, or JSON",
		Long: `Render a graph to SVG, PNG, DOT, or JSON.

The input is either a graph.json produced by 'build' (rendered as-is, no
layout re-run) or a raw records file (built first, then rendered). The two
are distinguished by shape: a graph file carries a "nodes" list.

The SVG output embeds the hover interaction: pointing at a node dims
everything unrelated and boosts the links that touch it, exactly like the
interactive viewer. PNG and DOT are produced via Graphviz with every node
pinned to its precomputed position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.Apply(&opts)
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/platmap/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "layout mode when building from records")

	return cmd
}

// runRender loads or builds the graph, renders the requested formats, and
// writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner := c.newRunner(noCache)
	defer runner.Cache.Close()
	opts.Logger = c.Logger

	g, err := c.loadOrBuild(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	return writeArtifacts(artifacts, opts.Formats, input, output, cacheHit)
}

// loadOrBuild reads a built graph, or builds one when the input turns out
// to be a records file.
func (c *CLI) loadOrBuild(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (*graph.Graph, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}

	if isGraphFile(data) {
		g, err := graph.UnmarshalGraph(data)
		if err != nil {
			return nil, fmt.Errorf("load graph %s: %w", input, err)
		}
		return g, nil
	}

	recs, err := entity.ReadRecords(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load records %s: %w", input, err)
	}
	return runner.Build(ctx, recs, opts)
}

// isGraphFile reports whether the JSON document has a graph shape (a
// top-level "nodes" key) rather than a records shape.
func isGraphFile(data []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	_, ok := probe["nodes"]
	return ok
}

// writeArtifacts writes each rendered format next to the input (or to the
// explicit output path) and prints the result.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string, cacheHit bool) error {
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	status := iconFresh
	if cacheHit {
		status = iconCached
	}
	printSuccess("Rendered %s (%s)", strings.Join(formats, ", "), status)
	return nil
}
