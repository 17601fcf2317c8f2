package sink

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/dreamhouse/pkg/placement/grid"
	"github.com/matzehuels/dreamhouse/pkg/render/styles"
)

// Fixed decoration of the flat plan, in canvas units.
const (
	cellRadius   = 8
	innerInset   = 8
	innerRadius  = 6
	iconSize     = 32
	iconOffsetX  = 12
	iconOffsetY  = 8
	labelOffsetX = 12
	labelOffsetY = 24
	idOffsetY    = 44
	extraRadius  = 6
	extraTextY   = 36
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette    styles.Palette
	title      string
	background bool
}

// WithPalette sets the colors. Defaults to the modern palette.
func WithPalette(p styles.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithBackground fills the canvas with the palette backdrop.
func WithBackground() SVGOption { return func(r *svgRenderer) { r.background = true } }

// RenderSVG draws a placed plan. Cells are drawn in placement order, then
// the extras strip.
func RenderSVG(res grid.Result, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	p := r.palette

	w, h := px(res.Width), px(res.Height)
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))
	if r.title != "" {
		canvas.Title(r.title)
	}
	if r.background {
		canvas.Rect(0, 0, w, h, "fill:"+p.Backdrop)
	}

	canvas.Gid("rooms")
	for _, room := range res.Rooms {
		x, y := px(room.Rect.X), px(room.Rect.Y)
		cw, ch := px(room.Rect.Width), px(room.Rect.Height)
		canvas.Roundrect(x, y, max(0, cw), max(0, ch), cellRadius, cellRadius,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", p.Cell, p.Wall))
		inner := room.Rect.Inset(innerInset)
		canvas.Roundrect(px(inner.X), px(inner.Y),
			max(0, px(inner.Width)), max(0, px(inner.Height)), innerRadius, innerRadius,
			fmt.Sprintf("fill:%s;opacity:0.95", p.Primary))
		canvas.Text(x+cw/2-iconOffsetX, y+ch/2+iconOffsetY, room.Icon,
			fmt.Sprintf("font-size:%dpx", iconSize))
		canvas.Text(x+labelOffsetX, y+labelOffsetY, room.Label,
			fmt.Sprintf("font-size:14px;font-family:sans-serif;fill:%s", p.Text), `class="room-label"`)
		canvas.Text(x+labelOffsetX, y+idOffsetY, room.IDText,
			fmt.Sprintf("font-size:12px;font-family:sans-serif;fill:%s", p.Muted), `class="room-id"`)
	}
	canvas.Gend()

	canvas.Gid("extras")
	for _, ex := range res.Extras {
		x, y := px(ex.Rect.X), px(ex.Rect.Y)
		canvas.Roundrect(x, y, px(ex.Rect.Width), px(ex.Rect.Height), extraRadius, extraRadius,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", p.ExtraFill(ex.Extra.Type), p.Wall))
		canvas.Text(x+labelOffsetX, y+extraTextY, ex.Icon+" "+ex.Label,
			fmt.Sprintf("font-size:14px;font-family:sans-serif;fill:%s", p.Text), `class="extra-label"`)
	}
	canvas.Gend()

	canvas.End()
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: styles.For(styles.Modern)}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// px rounds a canvas coordinate to whole units. Negative sizes come from
// tiny canvases and draw as zero.
func px(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
