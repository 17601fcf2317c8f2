// Package grid computes the flat schematic placement of a layout.
//
// Rooms fill a fixed number of columns column-major: the first column is
// filled top to bottom before the second column starts. Every cell has the
// same size, derived from the canvas, the padding and the number of rows.
// Extras are laid out in a strip along the bottom edge of the canvas.
package grid

import (
	"math"

	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// Canvas defaults and fixed spacing, in canvas units.
const (
	DefaultCanvasWidth  = 1000.0
	DefaultCanvasHeight = 600.0
	DefaultPadding      = 20.0
	DefaultColumns      = 3

	// Gutter separates neighbouring cells horizontally and vertically.
	Gutter = 20.0

	// Extras strip geometry. The strip top sits ExtraStripOffset above the
	// canvas bottom edge.
	ExtraStripOffset = 100.0
	ExtraBoxWidth    = 120.0
	ExtraBoxHeight   = 60.0
	ExtraPitch       = 140.0
)

// Options configures the canvas a layout is placed on.
type Options struct {
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
	Padding      float64 `json:"padding"`
	Columns      int     `json:"columns"`
}

// DefaultOptions returns the 1000×600 canvas with 20 padding and 3 columns.
func DefaultOptions() Options {
	return Options{
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		Padding:      DefaultPadding,
		Columns:      DefaultColumns,
	}
}

// WithDefaults fills a zero canvas size and non-positive Columns from
// [DefaultOptions]. Padding is left as given, so zero padding stays zero;
// [DefaultOptions] carries the default padding of 20. Negative values are
// kept; callers must supply a positive canvas.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.CanvasWidth == 0 {
		o.CanvasWidth = d.CanvasWidth
	}
	if o.CanvasHeight == 0 {
		o.CanvasHeight = d.CanvasHeight
	}
	if o.Columns <= 0 {
		o.Columns = d.Columns
	}
	return o
}

// PlacedRoom is a room with its cell on the canvas.
type PlacedRoom struct {
	Room   plan.Room `json:"room"`
	Column int       `json:"column"`
	Row    int       `json:"row"`
	Rect   plan.Rect `json:"rect"`
	Icon   string    `json:"icon"`
	Label  string    `json:"label"`
	IDText string    `json:"id_text"`
}

// PlacedExtra is an extra with its box in the bottom strip.
type PlacedExtra struct {
	Extra plan.Extra `json:"extra"`
	Slot  int        `json:"slot"`
	Rect  plan.Rect  `json:"rect"`
	Icon  string     `json:"icon"`
	Label string     `json:"label"`
}

// Result is the complete 2D placement of a layout.
type Result struct {
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Columns  int           `json:"columns"`
	Rows     int           `json:"rows"`
	CellSize plan.Rect     `json:"cell"`
	Rooms    []PlacedRoom  `json:"rooms"`
	Extras   []PlacedExtra `json:"extras"`
}

// Rows returns the number of rows per column for n rooms: ceil(n/columns),
// never less than one.
func Rows(n, columns int) int {
	if columns <= 0 {
		columns = DefaultColumns
	}
	return max(1, int(math.Ceil(float64(n)/float64(columns))))
}

// CellSize returns the width and height of every cell for n rooms.
func CellSize(n int, opts Options) (w, h float64) {
	opts = opts.WithDefaults()
	rows := Rows(n, opts.Columns)
	w = math.Floor((opts.CanvasWidth-2*opts.Padding)/float64(opts.Columns)) - Gutter
	h = math.Floor((opts.CanvasHeight-2*opts.Padding)/float64(rows)) - Gutter
	return w, h
}

// Place assigns each room a cell, column-major, in input order. It returns
// exactly len(rooms) entries; an empty input yields an empty slice.
func Place(rooms []plan.Room, opts Options) []PlacedRoom {
	opts = opts.WithDefaults()
	rows := Rows(len(rooms), opts.Columns)
	cellW, cellH := CellSize(len(rooms), opts)

	placed := make([]PlacedRoom, 0, len(rooms))
	i := 0
	for c := 0; c < opts.Columns && i < len(rooms); c++ {
		for r := 0; r < rows && i < len(rooms); r++ {
			room := rooms[i]
			placed = append(placed, PlacedRoom{
				Room:   room,
				Column: c,
				Row:    r,
				Rect: plan.Rect{
					X:      opts.Padding + float64(c)*(cellW+Gutter),
					Y:      opts.Padding + float64(r)*(cellH+Gutter),
					Width:  cellW,
					Height: cellH,
				},
				Icon:   room.Type.Icon(),
				Label:  string(room.Type),
				IDText: room.ID,
			})
			i++
		}
	}
	return placed
}

// PlaceExtras lays extras left to right along the bottom strip. Each input
// position owns one slot of [ExtraPitch]; unknown extras are dropped but
// their slot stays empty.
func PlaceExtras(extras []plan.Extra, opts Options) []PlacedExtra {
	opts = opts.WithDefaults()
	y := opts.CanvasHeight - ExtraStripOffset

	placed := make([]PlacedExtra, 0, len(extras))
	for i, ex := range extras {
		if !ex.Type.Known() {
			continue
		}
		placed = append(placed, PlacedExtra{
			Extra: ex,
			Slot:  i,
			Rect: plan.Rect{
				X:      opts.Padding + float64(i)*ExtraPitch,
				Y:      y,
				Width:  ExtraBoxWidth,
				Height: ExtraBoxHeight,
			},
			Icon:  ex.Type.Icon(),
			Label: string(ex.Type),
		})
	}
	return placed
}

// Compute places a whole layout on the canvas.
func Compute(l plan.Layout, opts Options) Result {
	opts = opts.WithDefaults()
	cellW, cellH := CellSize(len(l.Rooms), opts)
	return Result{
		Width:    opts.CanvasWidth,
		Height:   opts.CanvasHeight,
		Columns:  opts.Columns,
		Rows:     Rows(len(l.Rooms), opts.Columns),
		CellSize: plan.Rect{Width: cellW, Height: cellH},
		Rooms:    Place(l.Rooms, opts),
		Extras:   PlaceExtras(l.Extras, opts),
	}
}
