package prompt

import (
	"fmt"

	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// SizeHint returns the explicit footprint written on prompt-built rooms.
func SizeHint(t plan.RoomType) plan.Footprint {
	switch t {
	case plan.Bedroom:
		return plan.Footprint{Width: 4, Depth: 3}
	case plan.Kitchen:
		return plan.Footprint{Width: 3, Depth: 3}
	case plan.Hall:
		return plan.Footprint{Width: 4, Depth: 4}
	default:
		return plan.Footprint{Width: 2, Depth: 2}
	}
}

// minimum returns the least number of rooms of type t a prompt layout has.
// Bathrooms may be absent.
func minimum(t plan.RoomType) int {
	if t == plan.Bathroom {
		return 0
	}
	return 1
}

// BuildLayout turns parsed counts into a layout. Unlike [plan.FromCounts] it
// guarantees at least one bedroom, kitchen and hall, and writes a size hint
// on every room. An empty name becomes [plan.DefaultName].
func BuildLayout(name string, c plan.Counts) plan.Layout {
	c = c.Sanitized()
	if name == "" {
		name = plan.DefaultName
	}
	style := c.Style
	if style == "" {
		style = plan.DefaultStyle
	}

	l := plan.Layout{Name: name, Rooms: []plan.Room{}, Extras: []plan.Extra{}, Style: style}
	for _, t := range plan.RoomTypes {
		n := max(c.Of(t), minimum(t))
		hint := SizeHint(t)
		for i := 0; i < n; i++ {
			l.Rooms = append(l.Rooms, plan.Room{
				Type:  t,
				ID:    fmt.Sprintf("%s%d", t.IDPrefix(), i+1),
				Width: plan.Size(hint.Width),
				Depth: plan.Size(hint.Depth),
			})
		}
	}
	for _, t := range plan.ExtraTypes {
		if c.Wants(t) {
			l.Extras = append(l.Extras, plan.Extra{Type: t})
		}
	}
	return l
}
