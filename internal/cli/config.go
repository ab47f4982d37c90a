package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fruitnuke/maze/pkg/pipeline"
	"github.com/fruitnuke/maze/pkg/render/text"
)

// Config keys. Nested keys map to TOML tables and to MAZE_CACHE_URL style
// environment variables.
const (
	keyWidth         = "width"
	keyHeight        = "height"
	keyAlgorithm     = "algorithm"
	keySeed          = "seed"
	keyFormat        = "format"
	keyWall          = "wall"
	keyOpen          = "open"
	keyColor         = "color"
	keyCacheURL      = "cache.url"
	keyCacheDisabled = "cache.disabled"
	keyServerAddr    = "server.addr"
	keyServerMaxDim  = "server.max-dimension"
)

const (
	configName = "config"
	configType = "toml"

	defaultServerAddr   = ":8080"
	defaultServerMaxDim = 1000
)

// fileConfig is the on-disk shape of config.toml.
type fileConfig struct {
	Width     int          `toml:"width"`
	Height    int          `toml:"height"`
	Algorithm string       `toml:"algorithm"`
	Seed      *uint64      `toml:"seed,omitempty"`
	Format    string       `toml:"format"`
	Wall      string       `toml:"wall"`
	Open      string       `toml:"open"`
	Color     string       `toml:"color,omitempty"`
	Cache     cacheConfig  `toml:"cache"`
	Server    serverConfig `toml:"server"`
}

type cacheConfig struct {
	URL      string `toml:"url,omitempty"`
	Disabled bool   `toml:"disabled"`
}

type serverConfig struct {
	Addr         string `toml:"addr"`
	MaxDimension int    `toml:"max-dimension"`
}

// newConfig returns a viper instance with defaults and environment lookup.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyWidth, pipeline.DefaultWidth)
	v.SetDefault(keyHeight, pipeline.DefaultHeight)
	v.SetDefault(keyAlgorithm, pipeline.DefaultAlgorithm)
	v.SetDefault(keyFormat, pipeline.DefaultFormat)
	v.SetDefault(keyWall, text.DefaultGlyphs.Wall)
	v.SetDefault(keyOpen, text.DefaultGlyphs.Open)
	v.SetDefault(keyCacheDisabled, false)
	v.SetDefault(keyServerAddr, defaultServerAddr)
	v.SetDefault(keyServerMaxDim, defaultServerMaxDim)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the config file named by --config, or config.toml from
// the config directory if one exists.
func (c *CLI) loadConfig() error {
	if c.cfgFile != "" {
		c.config.SetConfigFile(c.cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		c.config.AddConfigPath(dir)
		c.config.SetConfigName(configName)
		c.config.SetConfigType(configType)
	}

	if err := c.config.ReadInConfig(); err != nil {
		// it's ok if we don't have a config file, we can fall back to defaults
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			c.Logger.Debug("no config file", "err", err)
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	c.Logger.Debug("loaded config", "file", c.config.ConfigFileUsed())
	return nil
}

// bindFlags binds each named flag of cmd to the config key of the same
// name, so precedence is flag > environment > file > default.
func (c *CLI) bindFlags(flags *pflag.FlagSet, bindings map[string]string) error {
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := c.config.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// configPath returns the file config init writes to.
func (c *CLI) configPath() (string, error) {
	if c.cfgFile != "" {
		return c.cfgFile, nil
	}
	if used := c.config.ConfigFileUsed(); used != "" {
		return used, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+"."+configType), nil
}

// effectiveConfig snapshots the merged configuration.
func (c *CLI) effectiveConfig() fileConfig {
	cfg := fileConfig{
		Width:     c.config.GetInt(keyWidth),
		Height:    c.config.GetInt(keyHeight),
		Algorithm: c.config.GetString(keyAlgorithm),
		Format:    c.config.GetString(keyFormat),
		Wall:      c.config.GetString(keyWall),
		Open:      c.config.GetString(keyOpen),
		Color:     c.config.GetString(keyColor),
		Cache: cacheConfig{
			URL:      c.config.GetString(keyCacheURL),
			Disabled: c.config.GetBool(keyCacheDisabled),
		},
		Server: serverConfig{
			Addr:         c.config.GetString(keyServerAddr),
			MaxDimension: c.config.GetInt(keyServerMaxDim),
		},
	}
	if c.config.IsSet(keySeed) {
		seed := c.config.GetUint64(keySeed)
		cfg.Seed = &seed
	}
	return cfg
}

// defaultConfig is the config file written by `maze config init`.
func defaultConfig() fileConfig {
	return fileConfig{
		Width:     pipeline.DefaultWidth,
		Height:    pipeline.DefaultHeight,
		Algorithm: pipeline.DefaultAlgorithm,
		Format:    pipeline.DefaultFormat,
		Wall:      text.DefaultGlyphs.Wall,
		Open:      text.DefaultGlyphs.Open,
		Server: serverConfig{
			Addr:         defaultServerAddr,
			MaxDimension: defaultServerMaxDim,
		},
	}
}

func encodeConfig(cfg fileConfig) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Commands
// =============================================================================

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long: `Manage the configuration file.

Settings are read from config.toml in $XDG_CONFIG_HOME/maze (or the file
given by --config), then from MAZE_* environment variables such as
MAZE_WIDTH or MAZE_CACHE_URL, and finally from command-line flags.`,
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}

			data, err := encodeConfig(defaultConfig())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			printSuccess("Wrote default config")
			printFile(path)
			printNextStep("Show effective settings", appName+" config show")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := encodeConfig(c.effectiveConfig())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
