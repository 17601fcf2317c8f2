// Package pipeline runs the place → render flow shared by the CLI, the HTTP
// API and the live preview.
//
// The pipeline has two stages:
//
//  1. Place: compute the 2D grid, the 3D volumes and the camera pose
//  2. Render: turn the placement into output formats (SVG, PDF, DXF, XLSX,
//     scene JSON)
//
// Placement is pure and always recomputed. Rendered artifacts may be cached.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, layout, pipeline.Options{
//	    Formats: []string{"svg", "pdf"},
//	    Color:   "#8fbf8f",
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dreamhouse/pkg/cache"
	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/placement/camera"
	"github.com/matzehuels/dreamhouse/pkg/placement/grid"
	"github.com/matzehuels/dreamhouse/pkg/placement/volume"
	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Preview
// =============================================================================

// DefaultColor is the room fill used by the form path.
const DefaultColor = "#8fbf8f"

// MaxCanvas bounds the 2D canvas width and height.
const MaxCanvas = 100000.0

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPDF   = "pdf"
	FormatDXF   = "dxf"
	FormatXLSX  = "xlsx"
	FormatScene = "scene"
)

// Formats lists every output format in display order.
var Formats = []string{FormatSVG, FormatPDF, FormatDXF, FormatXLSX, FormatScene}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPDF:   true,
	FormatDXF:   true,
	FormatXLSX:  true,
	FormatScene: true,
}

var contentTypes = map[string]string{
	FormatSVG:   "image/svg+xml",
	FormatPDF:   "application/pdf",
	FormatDXF:   "image/vnd.dxf",
	FormatXLSX:  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatScene: "application/json",
}

var extensions = map[string]string{
	FormatSVG:   ".svg",
	FormatPDF:   ".pdf",
	FormatDXF:   ".dxf",
	FormatXLSX:  ".xlsx",
	FormatScene: ".scene.json",
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension, with dot, for format.
func Extension(format string) string {
	if ext, ok := extensions[format]; ok {
		return ext
	}
	return "." + format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures placement and rendering. It supports JSON for API
// requests. Zero values take defaults.
type Options struct {
	// Placement options
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Padding float64 `json:"padding,omitempty"`
	FOV     float64 `json:"fov,omitempty"`
	Offset  float64 `json:"offset,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"` // overrides the layout's style
	Color   string   `json:"color,omitempty"` // room fill, #rgb or #rrggbb
	Title   string   `json:"title,omitempty"` // defaults to the layout name
	Link    string   `json:"link,omitempty"`  // share link stamped on PDFs

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Layout     plan.Layout   `json:"layout"`
	LayoutHash string        `json:"layout_hash"`
	Plan2D     grid.Result   `json:"plan2d"`
	Plan3D     volume.Result `json:"plan3d"`
	Camera     camera.Pose   `json:"camera"`

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte `json:"-"`

	Stats     Stats     `json:"-"`
	CacheInfo CacheInfo `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rooms      int
	Extras     int
	PlaceTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateColor checks that color is empty or a #rgb / #rrggbb value.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if _, _, _, ok := styles.ParseHex(color); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid color: %q (want #rgb or #rrggbb)", color)
	}
	return nil
}

// ParseFormats splits a comma-separated list, dropping blanks and
// duplicates, and validates every entry.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, ValidateFormats(out)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForPlace(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetPlaceDefaults fills zero placement fields.
func (o *Options) SetPlaceDefaults() {
	if o.Width == 0 {
		o.Width = grid.DefaultCanvasWidth
	}
	if o.Height == 0 {
		o.Height = grid.DefaultCanvasHeight
	}
	if o.Padding == 0 {
		o.Padding = grid.DefaultPadding
	}
	if o.FOV == 0 {
		o.FOV = camera.DefaultFOV
	}
	if o.Offset == 0 {
		o.Offset = camera.DefaultOffset
	}
}

// ValidateForPlace applies placement defaults and rejects unusable values.
func (o *Options) ValidateForPlace() error {
	o.SetPlaceDefaults()
	for _, v := range []float64{o.Width, o.Height, o.Padding, o.FOV, o.Offset} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "placement values must be finite, got %g", v)
		}
	}
	if o.Width <= 0 || o.Height <= 0 || o.Width > MaxCanvas || o.Height > MaxCanvas {
		return errors.New(errors.ErrCodeInvalidInput, "canvas size must be in (0, %g], got %gx%g", MaxCanvas, o.Width, o.Height)
	}
	if o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding must not be negative")
	}
	if o.FOV <= 0 || o.FOV >= 180 {
		return errors.New(errors.ErrCodeInvalidInput, "fov must be between 0 and 180 degrees, got %g", o.FOV)
	}
	if o.Offset <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "camera offset must be positive")
	}
	return nil
}

// SetRenderDefaults fills zero render fields.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
}

// ValidateForRender applies render defaults and validates formats, style
// and color.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := styles.Validate(o.Style); err != nil {
		return err
	}
	return ValidateColor(o.Color)
}

// GridOptions returns the canvas options for the 2D placement.
func (o *Options) GridOptions() grid.Options {
	return grid.Options{
		CanvasWidth:  o.Width,
		CanvasHeight: o.Height,
		Padding:      o.Padding,
		Columns:      grid.DefaultColumns,
	}
}

// Palette returns the palette for l, honoring the style and color
// overrides.
func (o *Options) Palette(l plan.Layout) styles.Palette {
	style := l.Style
	if o.Style != "" {
		style = o.Style
	}
	color := o.Color
	if color == "" {
		color = DefaultColor
	}
	return styles.For(style).WithPrimary(color)
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(l plan.Layout, format string) cache.ArtifactKeyOpts {
	p := o.Palette(l)
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  p.Name,
		Color:  p.Primary,
		Width:  int(o.Width),
		Height: int(o.Height),
		Title:  o.title(l),
		Link:   o.Link,
	}
}

func (o *Options) title(l plan.Layout) string {
	if o.Title != "" {
		return o.Title
	}
	if l.Name != "" {
		return l.Name
	}
	return plan.DefaultName
}
