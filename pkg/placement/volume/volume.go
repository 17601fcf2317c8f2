// Package volume computes the extruded 3D arrangement of a layout.
//
// Rooms become boxes on the ground plane, filled column-major with the same
// column count as the 2D grid. Each room is spaced by its own footprint, so
// columns and rows of mixed room sizes have uneven gaps. Extras become flat
// ground patches to the side of the rooms. A pyramid roof covers the bounding
// box of the room boxes, and the whole arrangement is shifted so the room
// centroid sits at the origin of the ground plane.
package volume

import (
	"math"

	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// Scene constants, in scene length units unless noted.
const (
	// Unit converts plan units to scene length.
	Unit = 1.6

	// WallHeight is the height of every room box.
	WallHeight = 2.6

	// Gap and Margin separate neighbouring rooms.
	Gap    = 0.4
	Margin = 0.2

	// Columns matches the 2D grid so both views agree.
	Columns = 3

	// LabelLift is the distance of a room label above the box top.
	LabelLift = 0.2

	// PatchLift keeps ground patches just above the ground plane.
	PatchLift = 0.01

	// Extras start ExtraStart plan units left of the origin and step
	// ExtraStep plan units further left per extra.
	ExtraStart = 1.5
	ExtraStep  = 4.0

	// Roof sizing.
	MinRoofBase   = 1.5
	MinRoofHeight = 1.2
	RoofPitch     = 0.35
)

// Label is a text anchor floating above a room.
type Label struct {
	Text   string    `json:"text"`
	Anchor plan.Vec3 `json:"anchor"`
}

// Box is a placed room volume. Position is the box center.
type Box struct {
	Room     plan.Room `json:"room"`
	Column   int       `json:"column"`
	Row      int       `json:"row"`
	Position plan.Vec3 `json:"position"`
	Size     plan.Vec3 `json:"size"`
	Label    Label     `json:"label"`
}

// Bounds returns the box's axis-aligned extent.
func (b Box) Bounds() plan.Box3 { return plan.BoxAround(b.Position, b.Size) }

// Patch is a flat ground rectangle for an extra. Size.Y is always zero.
type Patch struct {
	Extra    plan.Extra `json:"extra"`
	Position plan.Vec3  `json:"position"`
	Size     plan.Vec3  `json:"size"`
}

// Bounds returns the patch's extent.
func (p Patch) Bounds() plan.Box3 { return plan.BoxAround(p.Position, p.Size) }

// Roof is a four-sided pyramid. Position is the center of its base.
type Roof struct {
	Position  plan.Vec3 `json:"position"`
	BaseWidth float64   `json:"base_width"`
	BaseDepth float64   `json:"base_depth"`
	Height    float64   `json:"height"`
	// RotationY turns a four-segment cone primitive so its base edges line
	// up with the axis-aligned room boxes.
	RotationY float64 `json:"rotation_y"`
}

// Radius returns the circumradius of a four-segment cone whose rotated
// square base spans the larger base side.
func (r Roof) Radius() float64 {
	return math.Max(r.BaseWidth, r.BaseDepth) / math.Sqrt2
}

// Apex returns the tip of the roof.
func (r Roof) Apex() plan.Vec3 { return r.Position.Add(plan.Vec3{Y: r.Height}) }

// Bounds returns the roof's extent.
func (r Roof) Bounds() plan.Box3 {
	return plan.Box3{
		Min: plan.Vec3{X: r.Position.X - r.BaseWidth/2, Y: r.Position.Y, Z: r.Position.Z - r.BaseDepth/2},
		Max: plan.Vec3{X: r.Position.X + r.BaseWidth/2, Y: r.Position.Y + r.Height, Z: r.Position.Z + r.BaseDepth/2},
	}
}

// Result is the complete 3D placement of a layout, already re-centered.
type Result struct {
	Boxes   []Box   `json:"boxes"`
	Patches []Patch `json:"patches"`
	Roof    Roof    `json:"roof"`

	// Translation is the offset applied to every element to move the room
	// centroid to the origin. Y is always zero.
	Translation plan.Vec3 `json:"translation"`

	// RoomBounds encloses all room boxes after re-centering. With no rooms
	// it is the degenerate box at the origin.
	RoomBounds plan.Box3 `json:"room_bounds"`
}

// Bounds returns the extent of everything in the scene: rooms, patches and
// the roof.
func (r Result) Bounds() plan.Box3 {
	b := plan.EmptyBox().Union(r.RoomBounds).Union(r.Roof.Bounds())
	for _, p := range r.Patches {
		b = b.Union(p.Bounds())
	}
	return b
}

// Place computes boxes, patches and the roof for rooms and extras.
func Place(rooms []plan.Room, extras []plan.Extra) Result {
	boxes := placeRooms(rooms)
	patches := placeExtras(extras)

	bounds := plan.Box3{}
	if len(boxes) > 0 {
		bounds = plan.EmptyBox()
		for _, b := range boxes {
			bounds = bounds.Union(b.Bounds())
		}
	}
	roof := deriveRoof(bounds)

	shift := centroid(boxes).Scale(-1)
	shift.Y = 0
	for i := range boxes {
		boxes[i].Position = boxes[i].Position.Add(shift)
		boxes[i].Label.Anchor = boxes[i].Label.Anchor.Add(shift)
	}
	for i := range patches {
		patches[i].Position = patches[i].Position.Add(shift)
	}
	roof.Position = roof.Position.Add(shift)

	return Result{
		Boxes:       boxes,
		Patches:     patches,
		Roof:        roof,
		Translation: shift,
		RoomBounds:  bounds.Translate(shift),
	}
}

// Compute places a whole layout.
func Compute(l plan.Layout) Result {
	return Place(l.Rooms, l.Extras)
}

func placeRooms(rooms []plan.Room) []Box {
	rows := max(1, int(math.Ceil(float64(len(rooms))/Columns)))
	boxes := make([]Box, 0, len(rooms))

	i := 0
	for c := 0; c < Columns && i < len(rooms); c++ {
		for r := 0; r < rows && i < len(rooms); r++ {
			room := rooms[i]
			fp := room.Footprint()
			w, d := fp.Width*Unit, fp.Depth*Unit
			x := float64(c) * (w + Gap + Margin)
			z := float64(r) * (d + Gap + Margin)
			boxes = append(boxes, Box{
				Room:     room,
				Column:   c,
				Row:      r,
				Position: plan.Vec3{X: x, Y: WallHeight / 2, Z: z},
				Size:     plan.Vec3{X: w, Y: WallHeight, Z: d},
				Label: Label{
					Text:   string(room.Type),
					Anchor: plan.Vec3{X: x, Y: WallHeight + LabelLift, Z: z},
				},
			})
			i++
		}
	}
	return boxes
}

// laneZ returns the z offset of an extra's patch. The second value is false
// for extras that are not drawn.
func laneZ(t plan.ExtraType) (float64, bool) {
	switch t {
	case plan.Garden:
		return -2, true
	case plan.Parking:
		return 2, true
	case plan.Balcony:
		return 0, true
	default:
		return 0, false
	}
}

func placeExtras(extras []plan.Extra) []Patch {
	patches := make([]Patch, 0, len(extras))
	x := -ExtraStart * Unit
	for _, ex := range extras {
		fp, ok := ex.Type.Footprint()
		z, drawn := laneZ(ex.Type)
		if ok && drawn {
			patches = append(patches, Patch{
				Extra:    ex,
				Position: plan.Vec3{X: x, Y: PatchLift, Z: z},
				Size:     plan.Vec3{X: fp.Width * Unit, Z: fp.Depth * Unit},
			})
		}
		x -= ExtraStep * Unit
	}
	return patches
}

// deriveRoof sizes the roof from the room bounding box and seats its base on
// the box top.
func deriveRoof(bounds plan.Box3) Roof {
	size := bounds.Size()
	center := bounds.Center()
	w := math.Max(size.X, MinRoofBase)
	d := math.Max(size.Z, MinRoofBase)
	return Roof{
		Position:  plan.Vec3{X: center.X, Y: bounds.Max.Y, Z: center.Z},
		BaseWidth: w,
		BaseDepth: d,
		Height:    math.Max(MinRoofHeight, math.Min(w, d)*RoofPitch),
		RotationY: math.Pi / 4,
	}
}

// centroid returns the mean of the box centers, or the origin for none.
func centroid(boxes []Box) plan.Vec3 {
	if len(boxes) == 0 {
		return plan.Vec3{}
	}
	var sum plan.Vec3
	for _, b := range boxes {
		sum = sum.Add(b.Position)
	}
	return sum.Scale(1 / float64(len(boxes)))
}
