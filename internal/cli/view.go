package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fruitnuke/maze/pkg/errors"
	"github.com/fruitnuke/maze/pkg/maze"
	"github.com/fruitnuke/maze/pkg/pipeline"
)

const (
	// cellColumns and cellRows are the terminal footprint of one cell.
	cellColumns = 4
	cellRows    = 2

	// footerLines is the height of the stats table and key help.
	footerLines = 7
)

var (
	viewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	viewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// viewCommand creates the interactive maze viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		f   generateFlags
		fit bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse mazes interactively in the terminal",
		Long: `Browse mazes interactively in the terminal.

Keys:
  r, space   new maze with a fresh seed
  a, tab     switch algorithm
  ←/→ ↑/↓    shrink or grow width and height
  f          fit the maze to the window
  s          show or hide statistics
  q, esc     quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.bindFlags(cmd.Flags(), flagBindings); err != nil {
				return err
			}
			opts, err := c.generateOptions(f)
			if err != nil {
				cmd.PrintErrln(cmd.UsageString())
				return usageError{err}
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			m := newViewModel(cmd.Context(), runner, opts, fit)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	addGenerateFlags(cmd, &f)
	cmd.Flags().BoolVar(&fit, "fit", false, "size the maze to the terminal window")

	return cmd
}

// =============================================================================
// viewModel - Interactive maze viewer
// =============================================================================

// generatedMsg carries the outcome of one pipeline run.
type generatedMsg struct {
	result *pipeline.Result
	err    error
}

// viewModel is the bubbletea model of the maze viewer.
type viewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   pipeline.Options
	seed   uint64

	result    *pipeline.Result
	err       error
	fit       bool
	showStats bool
	termW     int
	termH     int
}

func newViewModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, fit bool) viewModel {
	opts.SetGenerateDefaults()
	opts.Formats = []string{pipeline.FormatText}
	opts.Refresh = true
	// Log lines would tear the alternate screen.
	opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	return viewModel{
		ctx:       ctx,
		runner:    runner,
		opts:      opts,
		seed:      pipeline.ResolveSeed(opts.Seed),
		fit:       fit,
		showStats: true,
	}
}

func (m viewModel) Init() tea.Cmd {
	if m.fit {
		// Wait for the first WindowSizeMsg.
		return nil
	}
	return m.generate()
}

// generate runs the pipeline for the current options off the UI loop.
func (m viewModel) generate() tea.Cmd {
	opts := m.opts
	seed := m.seed
	opts.Seed = &seed
	return func() tea.Msg {
		result, err := m.runner.Execute(m.ctx, opts)
		return generatedMsg{result: result, err: err}
	}
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.result, m.err = msg.result, msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		if m.fit {
			m.opts.Width, m.opts.Height = fitSize(m.termW, m.termH)
			return m, m.generate()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r", " ":
			m.seed = pipeline.ResolveSeed(nil)
		case "a", "tab":
			m.opts.Algorithm = string(nextAlgorithm(maze.Algorithm(m.opts.Algorithm)))
		case "left", "h":
			m.opts.Width = max(1, m.opts.Width-1)
			m.fit = false
		case "right", "l":
			m.opts.Width++
			m.fit = false
		case "up", "k":
			m.opts.Height = max(1, m.opts.Height-1)
			m.fit = false
		case "down", "j":
			m.opts.Height++
			m.fit = false
		case "f":
			if m.termW == 0 {
				return m, nil
			}
			m.fit = true
			m.opts.Width, m.opts.Height = fitSize(m.termW, m.termH)
		case "s":
			m.showStats = !m.showStats
			return m, nil
		default:
			return m, nil
		}
		return m, m.generate()
	}
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	switch {
	case m.err != nil:
		b.WriteString(viewErrorStyle.Render(iconError + " " + errors.UserMessage(m.err)))
		b.WriteString("\n")
	case m.result == nil:
		b.WriteString(StyleDim.Render("Generating..."))
		b.WriteString("\n")
	default:
		b.Write(m.result.Artifacts[pipeline.FormatText])
		if m.showStats {
			b.WriteString(statsTable(m.result.Algorithm, m.result.Grid.Width, m.result.Grid.Height,
				m.result.Seed, m.result.Stats.Stats))
			b.WriteString("\n")
		}
	}

	b.WriteString(viewHelpStyle.Render("r new · a algorithm · ←→↑↓ size · f fit · s stats · q quit"))
	return b.String()
}

// nextAlgorithm cycles through the registered generators.
func nextAlgorithm(alg maze.Algorithm) maze.Algorithm {
	for i, a := range maze.Algorithms {
		if a == alg {
			return maze.Algorithms[(i+1)%len(maze.Algorithms)]
		}
	}
	return maze.DefaultAlgorithm
}

// fitSize returns the largest maze that renders inside a terminal of the
// given size, leaving room for the footer.
func fitSize(termW, termH int) (width, height int) {
	width = max(1, termW/cellColumns)
	height = max(1, (termH-footerLines)/cellRows)
	return width, height
}
