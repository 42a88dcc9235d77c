package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fretcards/internal/config"
	"github.com/matzehuels/fretcards/pkg/buildinfo"
	"github.com/matzehuels/fretcards/pkg/cache"
	"github.com/matzehuels/fretcards/pkg/deck"
	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/media"
	"github.com/matzehuels/fretcards/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "fretcards"

	// redisPrefix namespaces render artifacts in a shared redis.
	redisPrefix = appName + ":"
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

	// Config is loaded before any subcommand runs.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Fretcards turns fretboard diagrams into flashcards",
		Long: `Fretcards generates spaced-repetition flashcards from YAML plans,
illustrating questions with rendered guitar fretboard diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			installHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/fretcards/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.deckCommand())
	root.AddCommand(c.mediaCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config when given, otherwise the default location.
func (c *CLI) loadConfig() error {
	if c.configPath == "" {
		cfg, path, err := config.LoadDefault()
		if err != nil {
			return err
		}
		c.Config, c.configPath = cfg, path
		return nil
	}
	if _, err := os.Stat(c.configPath); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file")
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(ctx, noCache), c.Logger)
}

// newCache builds the configured cache. Backends that cannot be reached
// degrade to no caching; rendering never depends on the cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache()
	}
	if cfg.Backend == config.CacheRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   redisPrefix,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, rendering without cache", "addr", cfg.RedisAddr, "err", err)
			return cache.NewNullCache()
		}
		return rc
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir is the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return expandHome(c.Config.Cache.Dir)
	}
	return cacheDir()
}

// deckFlags are the flags shared by commands that write to a deck.
type deckFlags struct {
	name       string
	user       string
	collection string
	media      string
}

func (f *deckFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "deck", "", "deck name (default from config)")
	cmd.Flags().StringVar(&f.user, "user", "", "profile whose collection is used")
	cmd.Flags().StringVar(&f.collection, "collection", "", "collection file path")
	cmd.Flags().StringVar(&f.media, "media", "", "media directory (overrides the configured backend)")
}

// newDeck resolves a deck from flags, then name, then config.
func (c *CLI) newDeck(ctx context.Context, f deckFlags, name string) (*deck.Deck, error) {
	opts := deck.Options{
		Name:           firstNonEmpty(f.name, name, c.Config.Deck.Name),
		User:           firstNonEmpty(f.user, c.Config.Deck.User),
		CollectionPath: firstNonEmpty(f.collection, c.Config.Deck.Collection),
		Logger:         c.Logger,
	}
	if opts.CollectionPath != "" {
		p, err := expandHome(opts.CollectionPath)
		if err != nil {
			return nil, err
		}
		opts.CollectionPath = p
	}
	store, err := c.newMediaStore(ctx, f.media)
	if err != nil {
		return nil, err
	}
	opts.Media = store
	return deck.New(opts)
}

// newMediaStore returns the store named by dirOverride or the config. A nil
// store lets the deck pick its default directory.
func (c *CLI) newMediaStore(ctx context.Context, dirOverride string) (media.Store, error) {
	cfg := c.Config.Media
	switch {
	case dirOverride != "":
		return newDirStore(dirOverride)
	case cfg.Backend == config.MediaS3:
		return media.NewS3(ctx, cfg.S3)
	case cfg.Dir != "":
		return newDirStore(cfg.Dir)
	}
	return nil, nil
}

func newDirStore(dir string) (media.Store, error) {
	dir, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	return media.NewDir(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/fretcards/).
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

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
