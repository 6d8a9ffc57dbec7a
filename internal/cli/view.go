package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/platmap/platmap/pkg/entity"
	"github.com/platmap/platmap/pkg/graph"
	"github.com/platmap/platmap/pkg/pipeline"
	"github.com/platmap/platmap/pkg/sched"
	"github.com/platmap/platmap/pkg/style"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		configPath string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "view [records.json]",
		Short: "Explore a graph interactively in the terminal",
		Long: `Explore a graph interactively in the terminal.

Moving the cursor over a node applies the same highlight rules as the SVG
hover: the node and its direct neighbors stay bright, everything else dims,
and touching links are boosted. Highlighting is a pure style overlay and
never re-runs layout.

Switching the layout mode (t/v/c) rebuilds the graph. Rebuilds are deferred
and coalesced, so hammering the mode keys schedules one rebuild, not one
per key press.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.Apply(&opts)
			return c.runView(cmd.Context(), args[0], opts, noCache)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/platmap/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "initial layout mode")

	return cmd
}

// runView builds the initial graph and starts the viewer.
func (c *CLI) runView(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
	recs, err := entity.ReadRecordsFile(input)
	if err != nil {
		return fmt.Errorf("load records %s: %w", input, err)
	}

	runner := c.newRunner(noCache)
	defer runner.Cache.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Building graph...")
	spinner.Start()
	g, err := runner.Build(ctx, recs, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	model := newViewModel(ctx, runner, recs, opts, g)
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// builtMsg delivers a finished rebuild to the model.
type builtMsg struct {
	graph *graph.Graph
	err   error
}

// viewModel is the bubbletea model for the interactive viewer.
type viewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	recs   entity.Records
	opts   pipeline.Options

	base   *graph.Graph // latest built graph, baseline styles
	cursor int          // index into base.Nodes; -1 means no selection
	offset int
	height int

	building bool
	sched    *sched.Scheduler
	builds   chan builtMsg
	err      error
}

func newViewModel(ctx context.Context, runner *pipeline.Runner, recs entity.Records, opts pipeline.Options, g *graph.Graph) viewModel {
	return viewModel{
		ctx:    ctx,
		runner: runner,
		recs:   recs,
		opts:   opts,
		base:   g,
		cursor: -1,
		height: 15,
		sched:  sched.New(0),
		builds: make(chan builtMsg, 1),
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.sched.Stop()
			return m, tea.Quit
		case "esc":
			m.cursor = -1
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.cursor < 0 && len(m.base.Nodes) > 0 {
				m.cursor = 0
			}
			m.clampScroll()
		case "down", "j":
			if m.cursor < len(m.base.Nodes)-1 {
				m.cursor++
			}
			m.clampScroll()
		case "t":
			return m.switchMode(graph.ModeTraditional)
		case "v":
			return m.switchMode(graph.ModeVenn)
		case "c":
			return m.switchMode(graph.ModeColumn)
		case "r":
			m.opts.Refresh = true
			model, cmd := m.scheduleRebuild()
			model.opts.Refresh = false
			return model, cmd
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 7
		if m.height < 5 {
			m.height = 5
		}
		m.clampScroll()
	case builtMsg:
		m.building = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.base = msg.graph
		if m.cursor >= len(m.base.Nodes) {
			m.cursor = len(m.base.Nodes) - 1
		}
		m.clampScroll()
	}
	return m, nil
}

// switchMode schedules a rebuild in the new layout mode. Re-pressing the
// current mode's key is a no-op.
func (m viewModel) switchMode(mode string) (viewModel, tea.Cmd) {
	if m.opts.Mode == mode {
		return m, nil
	}
	m.opts.Mode = mode
	return m.scheduleRebuild()
}

// scheduleRebuild defers a full pipeline build. Bursts coalesce in the
// scheduler; only the latest requested options build.
func (m viewModel) scheduleRebuild() (viewModel, tea.Cmd) {
	m.building = true
	opts := m.opts
	m.sched.Defer(func() {
		g, err := m.runner.Build(m.ctx, m.recs, opts)
		m.builds <- builtMsg{graph: g, err: err}
	})
	return m, m.waitForBuild()
}

// waitForBuild blocks (on bubbletea's command goroutine) until the next
// rebuild lands.
func (m viewModel) waitForBuild() tea.Cmd {
	return func() tea.Msg {
		return <-m.builds
	}
}

func (m *viewModel) clampScroll() {
	if m.cursor >= 0 && m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// selectedID returns the ID of the node under the cursor, or "".
func (m viewModel) selectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.base.Nodes) {
		return ""
	}
	return m.base.Nodes[m.cursor].ID
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("platmap"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s · %d nodes · %d links",
		m.base.Mode, len(m.base.Nodes), len(m.base.Links))))
	if m.building {
		b.WriteString("  " + StyleWarning.Render("rebuilding..."))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ highlight  t/v/c layout  r refresh  esc clear  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("rebuild failed: %v", m.err)))
		b.WriteString("\n")
	}

	// The highlight overlay is recomputed per frame; it is a cheap pure
	// function of the selection and never re-runs layout.
	hl := style.SetHighlight(m.base, m.selectedID())

	end := m.offset + m.height
	if end > len(hl.Nodes) {
		end = len(hl.Nodes)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(hl, i))
		b.WriteString("\n")
	}

	return b.String()
}

func (m viewModel) renderRow(hl *graph.Graph, i int) string {
	n := hl.Nodes[i]

	cursor := "  "
	if i == m.cursor {
		cursor = "▸ "
	}

	where := n.Platform
	if n.Type == graph.TypePlatform {
		where = "—"
	}
	row := fmt.Sprintf("%s%-28s %-10s %-24s %5d", cursor, truncate(n.Name, 28), n.Type, truncate(where, 24), n.Weight)

	switch {
	case i == m.cursor:
		return listSelectedStyle.Render(row)
	case n.Style.Opacity < 1.0:
		return listDimStyle.Render(row)
	default:
		return listNormalStyle.Render(row)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
