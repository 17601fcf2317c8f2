package plan

import "testing"

func TestBox3Union(t *testing.T) {
	b := EmptyBox()
	if !b.IsEmpty() {
		t.Fatal("EmptyBox should be empty")
	}
	if b.Size() != (Vec3{}) || b.Center() != (Vec3{}) {
		t.Error("empty box should report zero size and origin center")
	}

	b = b.Union(BoxAround(Vec3{0, 1, 0}, Vec3{2, 2, 2}))
	b = b.Union(BoxAround(Vec3{4, 1, 0}, Vec3{2, 2, 2}))
	if b.Min != (Vec3{-1, 0, -1}) || b.Max != (Vec3{5, 2, 1}) {
		t.Errorf("union = %+v", b)
	}
	if b.Center() != (Vec3{2, 1, 0}) {
		t.Errorf("center = %+v", b.Center())
	}
	if b.Size().MaxComponent() != 6 {
		t.Errorf("max dim = %v, want 6", b.Size().MaxComponent())
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"disjoint", Rect{X: 20, Y: 0, Width: 5, Height: 5}, false},
		{"touching edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{"overlapping", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	got := Rect{X: 20, Y: 20, Width: 300, Height: 260}.Inset(8)
	want := Rect{X: 28, Y: 28, Width: 284, Height: 244}
	if got != want {
		t.Errorf("Inset = %+v, want %+v", got, want)
	}
}
