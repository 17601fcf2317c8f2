package prompt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dreamhouse/pkg/cache"
	"github.com/matzehuels/dreamhouse/pkg/observability"
	"github.com/matzehuels/dreamhouse/pkg/plan"
)

const cacheKeyType = "prompt"

// CachedParser memoizes another parser's counts. Cache failures are logged
// and never fail a parse.
type CachedParser struct {
	inner  Parser
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

// CachedOption configures a [CachedParser].
type CachedOption func(*CachedParser)

// WithTTL overrides [cache.PromptTTL].
func WithTTL(ttl time.Duration) CachedOption { return func(p *CachedParser) { p.ttl = ttl } }

// WithKeyer overrides the default keyer.
func WithKeyer(k cache.Keyer) CachedOption { return func(p *CachedParser) { p.keyer = k } }

// WithLogger sets the logger for cache failures.
func WithLogger(l *log.Logger) CachedOption { return func(p *CachedParser) { p.logger = l } }

// NewCachedParser wraps inner with c.
func NewCachedParser(inner Parser, c cache.Cache, opts ...CachedOption) *CachedParser {
	p := &CachedParser{
		inner:  inner,
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
		ttl:    cache.PromptTTL,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name reports the wrapped parser's name.
func (p *CachedParser) Name() string { return p.inner.Name() }

// Parse implements [Parser].
func (p *CachedParser) Parse(ctx context.Context, prompt string) (plan.Counts, error) {
	key := p.keyer.PromptKey(p.inner.Name(), prompt)
	hooks := observability.Cache()

	data, hit, err := p.cache.Get(ctx, key)
	if err != nil {
		p.logger.Warn("prompt cache read failed", "err", err)
	}
	if hit {
		var c plan.Counts
		if err := json.Unmarshal(data, &c); err == nil {
			hooks.OnCacheHit(ctx, cacheKeyType)
			return c, nil
		}
		p.logger.Debug("dropping corrupt prompt cache entry", "key", key)
		_ = p.cache.Delete(ctx, key)
	}
	hooks.OnCacheMiss(ctx, cacheKeyType)

	c, err := p.inner.Parse(ctx, prompt)
	if err != nil {
		return plan.Counts{}, err
	}

	if data, err := json.Marshal(c); err == nil {
		if err := p.cache.Set(ctx, key, data, p.ttl); err != nil {
			p.logger.Warn("prompt cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}
	return c, nil
}

// New returns the parser named name, wrapped in c unless c is nil.
// Gemini needs apiKey and model; regex ignores them. opts apply to the
// cache wrapper.
func New(ctx context.Context, name, apiKey, model string, c cache.Cache, logger *log.Logger, opts ...CachedOption) (Parser, error) {
	var p Parser
	switch name {
	case "", ParserRegex:
		// The regex parser is cheaper than a cache lookup.
		return NewRegexParser(), nil
	case ParserGemini:
		g, err := NewGeminiParser(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		p = g
	default:
		return nil, errUnknownParser(name)
	}
	if c == nil {
		return p, nil
	}
	if logger == nil {
		logger = log.Default()
	}
	return NewCachedParser(p, c, append([]CachedOption{WithLogger(logger)}, opts...)...), nil
}
