// Package studio owns the "current design" of an interactive editor.
//
// A [Controller] turns a previous [State] plus a new layout (or counts, or a
// prompt) into the next State. A failed rebuild returns the previous State
// untouched together with the error, so callers can always keep showing
// the last good design:
//
//	next, err := ctrl.Apply(ctx, prev, layout)
//	if err != nil {
//	    // next == prev
//	}
//
// States are values. Nothing is shared between two States except the
// immutable rendered artifacts.
package studio

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dreamhouse/pkg/pipeline"
	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/prompt"
	"github.com/matzehuels/dreamhouse/pkg/render/sink"
)

// State is one rebuilt design.
type State struct {
	// Revision counts successful rebuilds. The zero State has revision 0.
	Revision int `json:"revision"`

	Layout plan.Layout `json:"layout"`
	Counts plan.Counts `json:"counts"`
	Color  string      `json:"color"`

	// Prompt is the text the layout was generated from, if any.
	Prompt string `json:"prompt,omitempty"`

	Result *pipeline.Result `json:"-"`
	Scene  sink.Scene       `json:"-"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Empty reports whether s has never been built.
func (s State) Empty() bool { return s.Revision == 0 }

// Controller rebuilds states.
type Controller struct {
	runner *pipeline.Runner
	parser prompt.Parser
	opts   pipeline.Options
	logger *log.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithParser sets the prompt parser. Defaults to the regex parser.
func WithParser(p prompt.Parser) Option { return func(c *Controller) { c.parser = p } }

// WithOptions sets the placement options used for every rebuild.
func WithOptions(o pipeline.Options) Option { return func(c *Controller) { c.opts = o } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// NewController returns a controller that places layouts with runner.
func NewController(runner *pipeline.Runner, opts ...Option) *Controller {
	c := &Controller{runner: runner}
	for _, opt := range opts {
		opt(c)
	}
	if c.runner == nil {
		c.runner = pipeline.NewRunner(nil, nil, c.logger)
	}
	if c.logger == nil {
		c.logger = c.runner.Logger
	}
	if c.parser == nil {
		c.parser = prompt.NewRegexParser()
	}
	return c
}

// Parser returns the prompt parser in use.
func (c *Controller) Parser() prompt.Parser { return c.parser }

// Apply rebuilds prev with layout l. The color of prev is kept.
func (c *Controller) Apply(ctx context.Context, prev State, l plan.Layout) (State, error) {
	return c.rebuild(ctx, prev, l, prev.Color, "")
}

// ApplyCounts rebuilds prev from form counts and a primary color. Counts are
// clamped to [0, plan.MaxRoomsPerType]. An empty color keeps the previous
// one. The layout name of prev is kept.
func (c *Controller) ApplyCounts(ctx context.Context, prev State, counts plan.Counts, color string) (State, error) {
	counts = counts.Sanitized()
	if color == "" {
		color = prev.Color
	}
	if err := pipeline.ValidateColor(color); err != nil {
		return prev, err
	}
	if counts.Style == "" {
		counts.Style = prev.Layout.Style
	}
	return c.rebuild(ctx, prev, plan.FromCounts(prev.Layout.Name, counts), color, "")
}

// ApplyPrompt rebuilds prev from a free-text description. When the parser
// fails, prev is returned unchanged.
func (c *Controller) ApplyPrompt(ctx context.Context, prev State, text, name string) (State, error) {
	if name == "" {
		name = prev.Layout.Name
	}
	res, err := c.runner.Generate(ctx, c.parser, text, name)
	if err != nil {
		return prev, err
	}
	return c.rebuild(ctx, prev, res.Layout, prev.Color, text)
}

func (c *Controller) rebuild(ctx context.Context, prev State, l plan.Layout, color, text string) (State, error) {
	if color == "" {
		color = pipeline.DefaultColor
	}
	opts := c.opts
	opts.Color = color
	res, err := c.runner.Place(ctx, l, opts)
	if err != nil {
		c.logger.Debug("rebuild rejected", "revision", prev.Revision, "error", err)
		return prev, err
	}
	if err := opts.ValidateForRender(); err != nil {
		return prev, err
	}

	next := State{
		Revision:  prev.Revision + 1,
		Layout:    res.Layout,
		Counts:    plan.CountsOf(res.Layout),
		Color:     color,
		Prompt:    text,
		Result:    res,
		Scene:     sink.BuildScene(res.Plan3D, res.Camera, sink.WithScenePalette(opts.Palette(res.Layout))),
		UpdatedAt: time.Now(),
	}
	c.logger.Debug("rebuilt design", "revision", next.Revision, "rooms", len(next.Layout.Rooms))
	return next, nil
}
