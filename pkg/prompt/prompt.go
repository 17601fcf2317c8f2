// Package prompt turns free-text house descriptions into layouts.
//
// A [Parser] extracts room counts, extras and a style from a prompt. Two
// parsers exist: [RegexParser], a keyword matcher that needs no network, and
// [GeminiParser], which asks a Gemini model for the same JSON shape. Either
// can be wrapped in a [CachedParser].
//
// [BuildLayout] converts parsed counts into a layout the way the prompt path
// always has: at least one bedroom, kitchen and hall, with explicit size
// hints on every room.
package prompt

import (
	"context"
	"time"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/observability"
	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// Parser names.
const (
	ParserRegex  = "regex"
	ParserGemini = "gemini"
)

// MaxRoomsPerType caps each parsed count so a prompt like "9999 bhk" cannot
// produce an unbounded layout.
const MaxRoomsPerType = plan.MaxRoomsPerType

// Parser extracts form counts from a prompt.
type Parser interface {
	Name() string
	Parse(ctx context.Context, prompt string) (plan.Counts, error)
}

func errUnknownParser(name string) error {
	return errors.New(errors.ErrCodeInvalidConfig, "unknown prompt parser %q (valid: %s, %s)", name, ParserRegex, ParserGemini)
}

// Result is a generated layout together with the counts it came from.
type Result struct {
	Layout plan.Layout `json:"layout"`
	Parsed plan.Counts `json:"parsed"`
}

// Generate parses prompt with p and builds the layout named name.
func Generate(ctx context.Context, p Parser, prompt, name string) (Result, error) {
	if err := errors.ValidatePrompt(prompt); err != nil {
		return Result{}, err
	}

	hooks := observability.Prompt()
	hooks.OnParseStart(ctx, p.Name())
	start := time.Now()
	counts, err := p.Parse(ctx, prompt)
	if err != nil {
		hooks.OnParseComplete(ctx, p.Name(), 0, time.Since(start), err)
		return Result{}, err
	}
	counts = Clamp(counts)

	l := BuildLayout(name, counts)
	hooks.OnParseComplete(ctx, p.Name(), len(l.Rooms), time.Since(start), nil)
	return Result{Layout: l, Parsed: counts}, nil
}

// Clamp sanitizes counts and caps each at [MaxRoomsPerType].
func Clamp(c plan.Counts) plan.Counts { return c.Sanitized() }
