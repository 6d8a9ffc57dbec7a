package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platmap/platmap/pkg/entity"
	"github.com/platmap/platmap/pkg/graph"
	"github.com/platmap/platmap/pkg/pipeline"
)

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "build [records.json]",
		Short: "Build a positioned, styled graph from a records file",
		Long: `Build a positioned, styled graph from a records file.

The records file holds two lists: sources (applications feeding tables into
a data platform) and downstreams (applications consuming tables from one).
The build normalizes and merges the records into nodes, positions them with
the chosen layout strategy, synthesizes entity-platform links and
cross-platform bridges, and derives all visual attributes.

The output graph.json is self-contained: render and view consume it without
re-reading the records. Results are cached locally under a content hash of
the records plus the layout options.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.Apply(&opts)
			return c.runBuild(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "graph.json", "output graph file")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/platmap/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "rebuild even on a cache hit")

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "layout mode: traditional (default), venn, column")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width in pixels")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height in pixels")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "jitter seed for reproducible layouts")
	cmd.Flags().IntVar(&opts.BridgeThreshold, "bridge-threshold", 0, "minimum bridging count for cross-platform links")
	cmd.Flags().IntVar(&opts.SubColumns, "sub-columns", 0, "sub-columns per band (column mode)")

	return cmd
}

// runBuild loads the records, builds the graph, and writes it out.
func (c *CLI) runBuild(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	recs, err := entity.ReadRecordsFile(input)
	if err != nil {
		return fmt.Errorf("load records %s: %w", input, err)
	}

	runner := c.newRunner(noCache)
	defer runner.Cache.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Building graph...")
	spinner.Start()

	prog := newProgress(c.Logger)
	g, cacheHit, err := runner.BuildWithCacheInfo(ctx, recs, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Built %d nodes", len(g.Nodes)))

	if err := graph.WriteGraphFile(g, output); err != nil {
		return fmt.Errorf("write graph %s: %w", output, err)
	}

	printSuccess("Built %s graph", opts.Mode)
	printStats(len(g.Nodes), len(g.Links), countBridges(g), cacheHit)
	printFile(output)
	printNextStep("Render it", fmt.Sprintf("%s render %s -f svg", appName, output))
	return nil
}

// countBridges counts dashed platform-platform links.
func countBridges(g *graph.Graph) int {
	n := 0
	for _, l := range g.Links {
		if l.Style.Dashed {
			n++
		}
	}
	return n
}
