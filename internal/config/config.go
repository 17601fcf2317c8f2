// Package config loads dreamhouse settings.
//
// Settings are resolved in three layers, later layers winning:
//
//  1. config.toml (default $XDG_CONFIG_HOME/dreamhouse/config.toml)
//  2. a .env file in the working directory, if present
//  3. DREAMHOUSE_* environment variables
//
// A missing config file is not an error; defaults apply.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/dreamhouse/pkg/artifact"
	"github.com/matzehuels/dreamhouse/pkg/cache"
	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/pipeline"
	"github.com/matzehuels/dreamhouse/pkg/prompt"
	"github.com/matzehuels/dreamhouse/pkg/render/styles"
	"github.com/matzehuels/dreamhouse/pkg/store"
)

const appName = "dreamhouse"

// Cache backends.
const (
	CacheFile   = "file"
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Artifact backends.
const (
	ArtifactsDisk = "disk"
	ArtifactsS3   = "s3"
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Store     StoreConfig     `toml:"store"`
	Cache     CacheConfig     `toml:"cache"`
	Prompt    PromptConfig    `toml:"prompt"`
	Artifacts ArtifactsConfig `toml:"artifacts"`
	Render    RenderConfig    `toml:"render"`

	// Path is the config file that was read, empty when none existed.
	Path string `toml:"-"`
}

// ServerConfig configures `dreamhouse serve`.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	// AllowedOrigins lists websocket origins; empty allows same-host only.
	AllowedOrigins []string `toml:"allowed_origins"`
}

// StoreConfig selects the design store.
type StoreConfig struct {
	Backend  string `toml:"backend"`  // sqlite, postgres, mongo, memory
	Path     string `toml:"path"`     // sqlite file
	DSN      string `toml:"dsn"`      // postgres dsn or mongo uri
	Database string `toml:"database"` // mongo database
}

// CacheConfig selects the artifact and prompt cache.
type CacheConfig struct {
	Backend  string `toml:"backend"` // file, memory, redis, none
	Dir      string `toml:"dir"`
	Size     int    `toml:"size"` // memory entries
	RedisURL string `toml:"redis_url"`
	// Prefix namespaces every key, so deployments can share one redis.
	Prefix string `toml:"prefix"`
}

// Keyer returns the cache keyer for c, or nil for the default.
func (c CacheConfig) Keyer() cache.Keyer {
	if c.Prefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Prefix)
}

// PromptConfig selects the prompt parser.
type PromptConfig struct {
	Parser string `toml:"parser"` // regex, gemini
	Model  string `toml:"model"`
	APIKey string `toml:"api_key"`
}

// ArtifactsConfig selects where published exports go.
type ArtifactsConfig struct {
	Backend string            `toml:"backend"` // disk, s3
	Dir     string            `toml:"dir"`
	BaseURL string            `toml:"base_url"`
	S3      artifact.S3Config `toml:"s3"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Style   string   `toml:"style"`
	Color   string   `toml:"color"`
	Width   float64  `toml:"width"`
	Height  float64  `toml:"height"`
	Formats []string `toml:"formats"`
}

// Default returns the built-in configuration.
func Default() Config {
	data := dataDir()
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Backend: store.BackendSQLite,
			Path:    filepath.Join(data, "designs.db"),
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			Dir:     CacheDir(),
			Size:    1024,
		},
		Prompt: PromptConfig{
			Parser: prompt.ParserRegex,
			Model:  prompt.DefaultGeminiModel,
		},
		Artifacts: ArtifactsConfig{
			Backend: ArtifactsDisk,
			Dir:     filepath.Join(data, "artifacts"),
		},
		Render: RenderConfig{
			Style:   styles.Modern,
			Color:   pipeline.DefaultColor,
			Formats: []string{pipeline.FormatSVG},
		},
	}
}

// Load reads path (or the default location when empty), then .env, then
// the environment. An explicit path that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		}
		cfg.Path = path
	} else if explicit {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}

	// A missing .env is the common case.
	_ = godotenv.Load()
	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from DREAMHOUSE_* variables. GEMINI_API_KEY is
// accepted as a fallback for the prompt key.
func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv("DREAMHOUSE_" + key)); v != "" {
			*dst = v
		}
	}
	set(&c.Server.Addr, "ADDR")
	set(&c.Store.Backend, "STORE")
	set(&c.Store.Path, "STORE_PATH")
	set(&c.Store.DSN, "STORE_DSN")
	set(&c.Store.Database, "STORE_DATABASE")
	set(&c.Cache.Backend, "CACHE")
	set(&c.Cache.Dir, "CACHE_DIR")
	set(&c.Cache.RedisURL, "REDIS_URL")
	set(&c.Cache.Prefix, "CACHE_PREFIX")
	set(&c.Prompt.Parser, "PARSER")
	set(&c.Prompt.Model, "GEMINI_MODEL")
	set(&c.Prompt.APIKey, "GEMINI_API_KEY")
	set(&c.Artifacts.Backend, "ARTIFACTS")
	set(&c.Artifacts.Dir, "ARTIFACTS_DIR")
	set(&c.Artifacts.BaseURL, "ARTIFACTS_BASE_URL")
	set(&c.Artifacts.S3.Endpoint, "S3_ENDPOINT")
	set(&c.Artifacts.S3.Region, "S3_REGION")
	set(&c.Artifacts.S3.AccessKey, "S3_ACCESS_KEY")
	set(&c.Artifacts.S3.SecretKey, "S3_SECRET_KEY")
	set(&c.Artifacts.S3.Bucket, "S3_BUCKET")
	set(&c.Render.Style, "STYLE")
	set(&c.Render.Color, "COLOR")

	if v := strings.TrimSpace(getenv("DREAMHOUSE_S3_USE_SSL")); v != "" {
		c.Artifacts.S3.UseSSL = v == "1" || strings.EqualFold(v, "true")
	}
	if c.Prompt.APIKey == "" {
		c.Prompt.APIKey = strings.TrimSpace(getenv("GEMINI_API_KEY"))
	}
}

// Validate checks enumerations and required fields.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case store.BackendSQLite:
		if c.Store.Path == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.path is required for sqlite")
		}
	case store.BackendPostgres, store.BackendMongo:
		if c.Store.DSN == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.dsn is required for %s", c.Store.Backend)
		}
	case store.BackendMemory:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case CacheFile, CacheMemory, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for redis")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}

	switch c.Prompt.Parser {
	case prompt.ParserRegex, prompt.ParserGemini:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown prompt parser %q", c.Prompt.Parser)
	}

	switch c.Artifacts.Backend {
	case ArtifactsDisk, ArtifactsS3:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown artifacts backend %q", c.Artifacts.Backend)
	}

	if err := styles.Validate(c.Render.Style); err != nil {
		return err
	}
	if err := pipeline.ValidateColor(c.Render.Color); err != nil {
		return err
	}
	return pipeline.ValidateFormats(c.Render.Formats)
}

// RenderOptions returns pipeline options seeded from the render section.
func (c Config) RenderOptions() pipeline.Options {
	return pipeline.Options{
		Width:   c.Render.Width,
		Height:  c.Render.Height,
		Style:   c.Render.Style,
		Color:   c.Render.Color,
		Formats: append([]string(nil), c.Render.Formats...),
	}
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns $XDG_CONFIG_HOME/dreamhouse/config.toml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.toml")
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// CacheDir returns the cache directory using the XDG standard
// (~/.cache/dreamhouse/).
func CacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}
