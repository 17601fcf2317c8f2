// Package cli implements the dreamhouse command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dreamhouse/internal/config"
	"github.com/matzehuels/dreamhouse/pkg/artifact"
	"github.com/matzehuels/dreamhouse/pkg/buildinfo"
	"github.com/matzehuels/dreamhouse/pkg/cache"
	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/pipeline"
	"github.com/matzehuels/dreamhouse/pkg/prompt"
	"github.com/matzehuels/dreamhouse/pkg/store"
	"github.com/matzehuels/dreamhouse/pkg/store/memstore"
	"github.com/matzehuels/dreamhouse/pkg/store/mongostore"
	"github.com/matzehuels/dreamhouse/pkg/store/sqlstore"
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

	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "dreamhouse",
		Short:        "Dreamhouse turns house descriptions into floor plans",
		Long:         `Dreamhouse builds house layouts from prompts or room counts, places them as a 2D grid and a 3D massing model, and exports SVG, PDF, DXF, XLSX and scene files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/dreamhouse/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.countsCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.designsCommand())
	root.AddCommand(c.studioCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads the configuration once per process.
func (c *CLI) config() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	c.cfg = &cfg
	return cfg, nil
}

// =============================================================================
// Factories
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, cfg.Cache.Keyer(), c.Logger), nil
}

func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	var (
		c   cache.Cache
		err error
	)
	switch cfg.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheMemory:
		c, err = cache.NewMemoryCache(cfg.Size)
	case config.CacheRedis:
		c, err = cache.NewRedisCache(ctx, cfg.RedisURL)
	default:
		c, err = cache.NewFileCache(cacheDir(cfg))
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// cacheDir returns the file cache directory.
func cacheDir(cfg config.CacheConfig) string {
	if cfg.Dir != "" {
		return cfg.Dir
	}
	return config.CacheDir()
}

// newParser returns the configured prompt parser, caching LLM answers in cc.
func (c *CLI) newParser(ctx context.Context, cfg config.Config, name string, cc cache.Cache) (prompt.Parser, error) {
	if name == "" {
		name = cfg.Prompt.Parser
	}
	var opts []prompt.CachedOption
	if k := cfg.Cache.Keyer(); k != nil {
		opts = append(opts, prompt.WithKeyer(k))
	}
	return prompt.New(ctx, name, cfg.Prompt.APIKey, cfg.Prompt.Model, cc, c.Logger, opts...)
}

// openStore opens the configured design store.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	var (
		s   store.Store
		err error
	)
	switch cfg.Backend {
	case store.BackendMemory:
		s = memstore.New()
	case store.BackendSQLite, store.BackendPostgres:
		dsn := cfg.DSN
		if cfg.Backend == store.BackendSQLite {
			dsn = cfg.Path
		}
		var sq *sqlstore.Store
		sq, err = sqlstore.Open(ctx, cfg.Backend, dsn)
		s = sq
	case store.BackendMongo:
		var mg *mongostore.Store
		mg, err = mongostore.Open(ctx, cfg.DSN, cfg.Database)
		s = mg
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store.Instrumented(s, cfg.Backend), nil
}

// openArtifacts opens the configured artifact store.
func openArtifacts(cfg config.ArtifactsConfig) (artifact.Store, error) {
	if cfg.Backend == config.ArtifactsS3 {
		s3, err := artifact.NewS3Store(cfg.S3)
		if err != nil {
			return nil, err
		}
		return s3, nil
	}
	disk, err := artifact.NewDiskStore(cfg.Dir, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	return disk, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// Empty means svg.
func parseFormats(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return []string{pipeline.FormatSVG}, nil
	}
	return pipeline.ParseFormats(s)
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
