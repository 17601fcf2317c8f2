package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/dreamhouse/pkg/prompt"
)

// =============================================================================
// Prompt Stage
// =============================================================================

// Generate turns a free-text prompt into a layout using p. The parser
// decides caching; regex parsing is never cached.
func (r *Runner) Generate(ctx context.Context, p prompt.Parser, text, name string) (prompt.Result, error) {
	start := time.Now()
	res, err := prompt.Generate(ctx, p, text, name)
	if err != nil {
		r.Logger.Warn("prompt parsing failed", "parser", p.Name(), "error", err)
		return prompt.Result{}, err
	}
	r.Logger.Info("parsed prompt",
		"parser", p.Name(),
		"rooms", len(res.Layout.Rooms),
		"extras", len(res.Layout.Extras),
		"duration", time.Since(start))
	return res, nil
}
