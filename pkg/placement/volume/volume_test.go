package volume

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/dreamhouse/pkg/plan"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestRoofMinimumFootprint(t *testing.T) {
	for n := 0; n <= 12; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			l := plan.FromCounts("x", plan.Counts{Bathrooms: n})
			res := Compute(l)
			if res.Roof.BaseWidth < MinRoofBase || res.Roof.BaseDepth < MinRoofBase {
				t.Errorf("roof base %vx%v below minimum", res.Roof.BaseWidth, res.Roof.BaseDepth)
			}
			if res.Roof.Height < MinRoofHeight {
				t.Errorf("roof height %v below minimum", res.Roof.Height)
			}
		})
	}
}

func TestZeroRooms(t *testing.T) {
	res := Place(nil, nil)
	if len(res.Boxes) != 0 || len(res.Patches) != 0 {
		t.Fatalf("expected empty scene, got %+v", res)
	}
	if res.Roof.BaseWidth != 1.5 || res.Roof.BaseDepth != 1.5 || res.Roof.Height != 1.2 {
		t.Errorf("roof = %+v, want 1.5x1.5x1.2", res.Roof)
	}
	if res.Roof.Position != (plan.Vec3{}) || res.Translation != (plan.Vec3{}) {
		t.Errorf("degenerate scene should sit at the origin: %+v", res)
	}
}

func TestRecenterInvariant(t *testing.T) {
	cases := []plan.Counts{
		{Bedrooms: 1},
		{Bedrooms: 2, Halls: 1},
		{Bedrooms: 3, Bathrooms: 2, Kitchens: 1, Halls: 1, Garden: true},
		{Bedrooms: 5, Kitchens: 2},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d rooms", c.Total()), func(t *testing.T) {
			res := Compute(plan.FromCounts("x", c))
			var sum plan.Vec3
			for _, b := range res.Boxes {
				sum = sum.Add(b.Position.Sub(res.Translation))
			}
			// pre-shift centroid moved by the applied translation
			sum = sum.Add(res.Translation.Scale(float64(len(res.Boxes))))
			mean := sum.Scale(1 / float64(len(res.Boxes)))
			if !near(mean.X, 0) || !near(mean.Z, 0) {
				t.Errorf("room centroid = (%v, %v), want origin", mean.X, mean.Z)
			}
			if res.Translation.Y != 0 {
				t.Errorf("translation moved vertically: %+v", res.Translation)
			}
		})
	}
}

func TestRoomPositions(t *testing.T) {
	rooms := []plan.Room{
		{Type: plan.Hall, ID: "Hall1"},
		{Type: plan.Bathroom, ID: "Bath1"},
		{Type: plan.Kitchen, ID: "Kit1"},
		{Type: plan.Bedroom, ID: "Bed1"},
	}
	res := Place(rooms, nil)
	// Two rows: Hall (0,0), Bath (0,1), Kitchen (1,0), Bedroom (1,1).
	want := []plan.Vec3{
		{X: 0, Z: 0},
		{X: 0, Z: 1 * (2*Unit + Gap + Margin)},
		{X: 1 * (3*Unit + Gap + Margin), Z: 0},
		{X: 1 * (3.5*Unit + Gap + Margin), Z: 1 * (3*Unit + Gap + Margin)},
	}
	for i, b := range res.Boxes {
		pre := b.Position.Sub(res.Translation)
		if !near(pre.X, want[i].X) || !near(pre.Z, want[i].Z) || !near(pre.Y, WallHeight/2) {
			t.Errorf("%s at %+v, want x=%v z=%v", b.Room.ID, pre, want[i].X, want[i].Z)
		}
		if !near(b.Label.Anchor.Y, WallHeight+LabelLift) || b.Label.Text != string(b.Room.Type) {
			t.Errorf("%s label = %+v", b.Room.ID, b.Label)
		}
	}
	if res.Boxes[0].Size != (plan.Vec3{X: 4 * Unit, Y: WallHeight, Z: 4 * Unit}) {
		t.Errorf("hall size = %+v", res.Boxes[0].Size)
	}
}

func TestSizeOverride(t *testing.T) {
	res := Place([]plan.Room{{Type: plan.Bedroom, ID: "B", Width: plan.Size(4), Depth: plan.Size(3)}}, nil)
	if !near(res.Boxes[0].Size.X, 4*Unit) || !near(res.Boxes[0].Size.Z, 3*Unit) {
		t.Errorf("size = %+v", res.Boxes[0].Size)
	}
}

func TestExtrasPatches(t *testing.T) {
	extras := []plan.Extra{{Type: plan.Garden}, {Type: "Pool"}, {Type: plan.Parking}, {Type: plan.Balcony}}
	res := Place(nil, extras)
	if len(res.Patches) != 3 {
		t.Fatalf("patches = %d, want 3 (unknown skipped)", len(res.Patches))
	}
	tests := []struct {
		typ  plan.ExtraType
		x, z float64
		w, d float64
	}{
		{plan.Garden, -1.5 * Unit, -2, 6 * Unit, 4 * Unit},
		{plan.Parking, -1.5*Unit - 2*4*Unit, 2, 4 * Unit, 3 * Unit},
		{plan.Balcony, -1.5*Unit - 3*4*Unit, 0, 2 * Unit, 1.2 * Unit},
	}
	for i, tt := range tests {
		p := res.Patches[i]
		if p.Extra.Type != tt.typ || !near(p.Position.X, tt.x) || !near(p.Position.Z, tt.z) || p.Position.Y != PatchLift {
			t.Errorf("patch %d = %+v, want %s at x=%v z=%v", i, p, tt.typ, tt.x, tt.z)
		}
		if !near(p.Size.X, tt.w) || !near(p.Size.Z, tt.d) || p.Size.Y != 0 {
			t.Errorf("patch %d size = %+v", i, p.Size)
		}
	}
}

func TestEndToEnd(t *testing.T) {
	l := plan.Layout{
		Rooms:  []plan.Room{{Type: plan.Bedroom, ID: "Bed1"}, {Type: plan.Hall, ID: "Hall1"}},
		Extras: []plan.Extra{{Type: plan.Garden}},
	}
	res := Compute(l)
	if len(res.Boxes) != 2 || res.Boxes[0].Column != 0 || res.Boxes[1].Column != 1 {
		t.Fatalf("boxes = %+v", res.Boxes)
	}
	if res.Boxes[0].Row != 0 || res.Boxes[1].Row != 0 {
		t.Error("both rooms should be in row 0")
	}
	if len(res.Patches) != 1 || res.Patches[0].Extra.Type != plan.Garden {
		t.Errorf("patches = %+v", res.Patches)
	}

	size := res.RoomBounds.Size()
	if res.Roof.BaseWidth < size.X || res.Roof.BaseDepth < size.Z {
		t.Errorf("roof %vx%v does not cover rooms %vx%v", res.Roof.BaseWidth, res.Roof.BaseDepth, size.X, size.Z)
	}
	if !near(res.Roof.Position.Y, WallHeight) {
		t.Errorf("roof base at y=%v, want %v", res.Roof.Position.Y, WallHeight)
	}
	c := res.RoomBounds.Center()
	if !near(res.Roof.Position.X, c.X) || !near(res.Roof.Position.Z, c.Z) {
		t.Errorf("roof not centered on rooms: %+v vs %+v", res.Roof.Position, c)
	}
	if !near(res.Roof.RotationY, math.Pi/4) {
		t.Errorf("roof rotation = %v", res.Roof.RotationY)
	}
}

func TestRoofHeight(t *testing.T) {
	// A single hall: 6.4 x 6.4 footprint, so height = 6.4 * 0.35.
	res := Place([]plan.Room{{Type: plan.Hall, ID: "H"}}, nil)
	if !near(res.Roof.Height, 4*Unit*RoofPitch) {
		t.Errorf("height = %v, want %v", res.Roof.Height, 4*Unit*RoofPitch)
	}
	if res.Roof.Radius() < res.Roof.BaseWidth/math.Sqrt2-eps {
		t.Errorf("radius %v too small for base %v", res.Roof.Radius(), res.Roof.BaseWidth)
	}
}

func TestPlaceDoesNotMutateInput(t *testing.T) {
	l := plan.FromCounts("x", plan.Counts{Bedrooms: 2, Halls: 1, Garden: true})
	before := l.Clone()
	a := Compute(l)
	b := Compute(l)
	if !reflect.DeepEqual(l, before) {
		t.Error("Compute mutated the layout")
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Compute is not deterministic")
	}
}

func TestBoundsIncludesRoof(t *testing.T) {
	res := Compute(plan.FromCounts("x", plan.Counts{Bedrooms: 1, Garden: true}))
	b := res.Bounds()
	if b.Max.Y < res.Roof.Apex().Y-eps {
		t.Errorf("scene bounds %v miss roof apex %v", b.Max.Y, res.Roof.Apex().Y)
	}
	if b.Min.X > res.Patches[0].Bounds().Min.X+eps {
		t.Error("scene bounds miss the garden patch")
	}
}
