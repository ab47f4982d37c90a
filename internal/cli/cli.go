package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fruitnuke/maze/pkg/buildinfo"
	"github.com/fruitnuke/maze/pkg/cache"
	"github.com/fruitnuke/maze/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "maze"

	// envPrefix is the prefix of environment overrides (MAZE_WIDTH, ...).
	envPrefix = "MAZE"

	// apiKeyPrefix scopes server cache entries away from CLI entries in a
	// shared Redis.
	apiKeyPrefix = "maze:api:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// config layers flags, MAZE_* environment variables and the config file.
	config  *viper.Viper
	cfgFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: newConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		registerLogHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself generates a maze, so `maze -w 20 -h 10` works
// without naming a subcommand.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.generateCommand()
	root.Use = appName
	root.Short = "Maze generates perfect mazes"
	root.Long = `Maze generates perfect mazes on a rectangular grid using a randomized
flood fill (depth-first search) or randomized Kruskal's algorithm, and
draws them as block text, Graphviz DOT, SVG or PNG.

Every pair of cells is joined by exactly one path. Pass --seed to
reproduce a maze; without it a random seed is chosen and logged.`
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(flagError)

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/maze/config.toml)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(withLogger(ctx, c.Logger))
		return c.loadConfig()
	}

	// Register all subcommands
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// flagError prints the usage of the failing command before the error, so
// a missing or malformed flag value shows how the command is invoked.
func flagError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(cmd.UsageString())
	return usageError{err}
}

// usageError marks errors whose usage text has already been printed.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache || c.config.GetBool(keyCacheDisabled))
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newServerRunner creates a runner backed by Redis when a URL is
// configured, falling back to the local file cache.
func (c *CLI) newServerRunner(ctx context.Context) (*pipeline.Runner, error) {
	url := c.config.GetString(keyCacheURL)
	if url == "" || c.config.GetBool(keyCacheDisabled) {
		return c.newRunner(false)
	}
	rc, err := cache.NewRedisCache(ctx, url)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), apiKeyPrefix)
	return pipeline.NewRunner(rc, keyer, c.Logger), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/maze/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/maze/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
