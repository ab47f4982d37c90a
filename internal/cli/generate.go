package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fruitnuke/maze/pkg/errors"
	"github.com/fruitnuke/maze/pkg/maze"
	"github.com/fruitnuke/maze/pkg/pipeline"
)

// spinnerThreshold is the maze area above which generation shows a spinner.
const spinnerThreshold = 1 << 20

// generateFlags holds the command-line flags shared by the root (generate)
// and view commands.
type generateFlags struct {
	width     int
	height    int
	floodfill bool
	kruskal   bool
	algorithm string
	seed      uint64
	wall      string
	open      string
	color     string
}

// outputFlags holds the flags only the generate command has.
type outputFlags struct {
	formats string
	output  string
	labels  bool
	noCache bool
	refresh bool
	stats   bool
}

// flagBindings maps config keys to flag names.
var flagBindings = map[string]string{
	keyWidth:     "width",
	keyHeight:    "height",
	keyAlgorithm: "algorithm",
	keySeed:      "seed",
	keyFormat:    "format",
	keyWall:      "wall",
	keyOpen:      "open",
	keyColor:     "color",
}

// addGenerateFlags registers the maze shape flags. -h is height, so help is
// registered long-only here; cobra skips its own -h/--help once a flag named
// help exists.
func addGenerateFlags(cmd *cobra.Command, f *generateFlags) {
	cmd.Flags().Bool("help", false, "help for this command")
	cmd.Flags().IntVarP(&f.width, "width", "w", pipeline.DefaultWidth, "maze width in cells")
	cmd.Flags().IntVarP(&f.height, "height", "h", pipeline.DefaultHeight, "maze height in cells")
	cmd.Flags().BoolVar(&f.floodfill, "floodfill", false, "generate with randomized flood fill (default)")
	cmd.Flags().BoolVar(&f.kruskal, "kruskal", false, "generate with randomized Kruskal's algorithm")
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", pipeline.DefaultAlgorithm,
		"generator: "+strings.Join(algorithmNames(), ", "))
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (default: random, logged for reuse)")
	cmd.Flags().StringVar(&f.wall, "wall", "", "wall glyph for text output (default \"█\")")
	cmd.Flags().StringVar(&f.open, "open", "", "open glyph for text output (default \" \")")
	cmd.Flags().StringVar(&f.color, "color", "", "wall color: ANSI index (\"212\") or hex (\"#ff8800\")")
	cmd.MarkFlagsMutuallyExclusive("floodfill", "kruskal", "algorithm")

	_ = cmd.RegisterFlagCompletionFunc("algorithm", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return algorithmNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

func algorithmNames() []string {
	names := make([]string, len(maze.Algorithms))
	for i, a := range maze.Algorithms {
		names[i] = string(a)
	}
	return names
}

// generateCommand creates the command that generates a maze. It is mounted
// as the root command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		f   generateFlags
		out outputFlags
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a maze",
		Example: `  maze                          10x10 flood-fill maze on stdout
  maze -w 40 -h 20 --kruskal    40x20 Kruskal maze
  maze --seed 7 -f svg -o m.svg reproducible maze as SVG
  maze -f txt,png -o out/maze   writes out/maze.txt and out/maze.png`,
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
			opts.Formats = pipeline.ParseFormats(c.config.GetString(keyFormat))
			opts.Labels = out.labels
			opts.Refresh = out.refresh
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), opts, out)
		},
	}

	addGenerateFlags(cmd, &f)
	cmd.Flags().StringVarP(&out.formats, "format", "f", pipeline.DefaultFormat,
		"output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated)")
	cmd.Flags().StringVarP(&out.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&out.labels, "labels", false, "label cells with their index (dot, svg, png)")
	cmd.Flags().BoolVar(&out.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&out.refresh, "refresh", false, "re-render even if a cached artifact exists")
	cmd.Flags().BoolVar(&out.stats, "stats", false, "print maze statistics to stderr")

	return cmd
}

// generateOptions resolves the maze flags against the config into pipeline
// options. Dimensions are checked here because the pipeline reads zero as
// "use the default".
func (c *CLI) generateOptions(f generateFlags) (pipeline.Options, error) {
	opts := pipeline.Options{
		Algorithm: c.config.GetString(keyAlgorithm),
		Width:     c.config.GetInt(keyWidth),
		Height:    c.config.GetInt(keyHeight),
		Wall:      c.config.GetString(keyWall),
		Open:      c.config.GetString(keyOpen),
		Color:     c.config.GetString(keyColor),
		Logger:    c.Logger,
	}
	switch {
	case f.floodfill:
		opts.Algorithm = string(maze.AlgorithmFloodFill)
	case f.kruskal:
		opts.Algorithm = string(maze.AlgorithmKruskal)
	}
	if c.config.IsSet(keySeed) {
		seed := c.config.GetUint64(keySeed)
		opts.Seed = &seed
	}

	if err := errors.ValidateDimension("width", opts.Width, maze.MaxDimension); err != nil {
		return opts, err
	}
	if err := errors.ValidateDimension("height", opts.Height, maze.MaxDimension); err != nil {
		return opts, err
	}
	if err := opts.ValidateForGenerate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// runGenerate runs the pipeline and writes the artifacts.
func (c *CLI) runGenerate(ctx context.Context, stdout io.Writer, opts pipeline.Options, out outputFlags) error {
	if len(opts.Formats) > 1 && out.output == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "%d formats requested: use --output to name a base path", len(opts.Formats))
	}
	if out.output != "" {
		if err := errors.ValidateOutputPath(out.output); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(out.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var spinner *Spinner
	if opts.Width*opts.Height >= spinnerThreshold {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Generating %dx%d maze...", opts.Width, opts.Height))
		spinner.Start()
	}

	result, err := runner.Execute(ctx, opts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Generation failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	if out.output == "" {
		if _, err := stdout.Write(result.Artifacts[opts.Formats[0]]); err != nil {
			return err
		}
	} else {
		paths, err := writeArtifacts(result.Artifacts, opts.Formats, out.output)
		if err != nil {
			return err
		}
		printSuccess("Generated %s maze %s", result.Algorithm, StyleNumber.Render(fmt.Sprintf("%dx%d", opts.Width, opts.Height)))
		for _, p := range paths {
			printFile(p)
		}
	}

	if out.stats || out.output != "" {
		printStats(result.Stats.Stats, result.Seed, result.CacheInfo.RenderHit)
	}
	return nil
}

// writeArtifacts writes each format to its file and returns the paths.
// A single format goes to output as given; several formats share output as
// a base path with the format as extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	if len(formats) == 1 {
		if err := writeFile(output, artifacts[formats[0]]); err != nil {
			return nil, err
		}
		return []string{output}, nil
	}

	base := basePath(output)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := writeFile(path, artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath strips a known format extension from output.
func basePath(output string) string {
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
