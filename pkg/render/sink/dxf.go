package sink

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/placement/grid"
	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// DXF layer names. Rooms go on one layer per room type.
const (
	LayerExtras = "EXTRAS"
	LayerLabels = "LABELS"
	LayerFrame  = "FRAME"

	dxfLabelHeight = 10.0
	dxfIDHeight    = 8.0
)

var dxfRoomColors = map[plan.RoomType]color.ColorNumber{
	plan.Bedroom:  color.Blue,
	plan.Bathroom: color.Cyan,
	plan.Kitchen:  color.Red,
	plan.Hall:     color.Magenta,
}

// RoomLayer returns the DXF layer name holding rooms of type t.
func RoomLayer(t plan.RoomType) string {
	if t == "" {
		return "ROOM_UNKNOWN"
	}
	return "ROOM_" + strings.ToUpper(string(t))
}

// RenderDXF exports the plan as a DXF drawing in canvas units. The y axis is
// flipped so the plan reads the same way up as the SVG.
func RenderDXF(res grid.Result) ([]byte, error) {
	d := dxf.NewDrawing()
	flip := func(y float64) float64 { return res.Height - y }

	layers := []struct {
		name string
		cl   color.ColorNumber
	}{
		{LayerFrame, dxf.DefaultColor},
		{LayerExtras, color.Green},
		{LayerLabels, color.Yellow},
	}
	seen := map[string]bool{}
	addRoomLayer := func(t plan.RoomType) {
		name := RoomLayer(t)
		if seen[name] {
			return
		}
		seen[name] = true
		cl, ok := dxfRoomColors[t]
		if !ok {
			cl = dxf.DefaultColor
		}
		layers = append(layers, struct {
			name string
			cl   color.ColorNumber
		}{name, cl})
	}
	for _, t := range plan.RoomTypes {
		addRoomLayer(t)
	}
	for _, room := range res.Rooms {
		addRoomLayer(room.Room.Type)
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.cl, dxf.DefaultLineType, false); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "add dxf layer %s", l.name)
		}
	}

	if err := d.ChangeLayer(LayerFrame); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "select dxf layer")
	}
	if err := dxfRect(d, plan.Rect{Width: res.Width, Height: res.Height}, flip); err != nil {
		return nil, err
	}

	for _, room := range res.Rooms {
		layer := RoomLayer(room.Room.Type)
		if err := d.ChangeLayer(layer); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "select dxf layer %s", layer)
		}
		if err := dxfRect(d, room.Rect, flip); err != nil {
			return nil, err
		}
	}

	if err := d.ChangeLayer(LayerExtras); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "select dxf layer")
	}
	for _, ex := range res.Extras {
		if err := dxfRect(d, ex.Rect, flip); err != nil {
			return nil, err
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "select dxf layer")
	}
	for _, room := range res.Rooms {
		x := room.Rect.X + labelOffsetX
		if _, err := d.Text(room.Label, x, flip(room.Rect.Y+labelOffsetY), 0, dxfLabelHeight); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "add dxf text")
		}
		if _, err := d.Text(room.IDText, x, flip(room.Rect.Y+idOffsetY), 0, dxfIDHeight); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "add dxf text")
		}
	}
	for _, ex := range res.Extras {
		if _, err := d.Text(ex.Label, ex.Rect.X+labelOffsetX, flip(ex.Rect.Y+extraTextY), 0, dxfLabelHeight); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "add dxf text")
		}
	}

	// The drawing only saves to a path.
	dir, err := os.MkdirTemp("", "dreamhouse-dxf-")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create temp dir")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "plan.dxf")
	if err := d.SaveAs(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "save dxf")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read dxf")
	}
	return data, nil
}

func dxfRect(d *drawing.Drawing, r plan.Rect, flip func(float64) float64) error {
	x0, x1 := r.X, r.X+max(0, r.Width)
	y0, y1 := flip(r.Y), flip(r.Y+max(0, r.Height))
	edges := [4][4]float64{
		{x0, y0, x1, y0},
		{x1, y0, x1, y1},
		{x1, y1, x0, y1},
		{x0, y1, x0, y0},
	}
	for _, e := range edges {
		if _, err := d.Line(e[0], e[1], 0, e[2], e[3], 0); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "add dxf line")
		}
	}
	return nil
}
