package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fruitnuke/maze/internal/server"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var accessLog bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve mazes over HTTP",
		Long: `Serve mazes over HTTP.

  GET /v1/maze?width=20&height=10&algorithm=kruskal&seed=7&format=svg
  GET /v1/maze/stats?width=20&height=10
  GET /version
  GET /healthz

Rendered mazes with an explicit seed are cached in Redis when cache.url
(or MAZE_CACHE_URL) is set, otherwise in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.bindFlags(cmd.Flags(), map[string]string{
				keyServerAddr:   "addr",
				keyServerMaxDim: "max-dimension",
				keyCacheURL:     "cache-url",
			}); err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newServerRunner(ctx)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			cfg := server.NewConfig(
				server.WithAddress(c.config.GetString(keyServerAddr)),
				server.WithMaxDimension(c.config.GetInt(keyServerMaxDim)),
				server.WithAccessLog(accessLog))

			printSuccess("Serving mazes")
			printKeyValue("Address", cfg.Address)
			printKeyValue("Max size", strconv.Itoa(cfg.MaxDimension)+"x"+strconv.Itoa(cfg.MaxDimension))
			printKeyValue("Cache", cacheDescription(c.config.GetString(keyCacheURL), c.config.GetBool(keyCacheDisabled)))

			return server.New(cfg, runner, loggerFromContext(ctx)).Run(ctx)
		},
	}

	cmd.Flags().String("addr", defaultServerAddr, "address to listen on")
	cmd.Flags().Int("max-dimension", defaultServerMaxDim, "largest width or height a request may ask for")
	cmd.Flags().String("cache-url", "", "Redis URL for the artifact cache (redis://host:6379/0)")
	cmd.Flags().BoolVar(&accessLog, "access-log", true, "log every request as JSON")

	return cmd
}

func cacheDescription(url string, disabled bool) string {
	switch {
	case disabled:
		return "disabled"
	case url != "":
		return "redis"
	default:
		return "local"
	}
}
