package plan

import "fmt"

// MaxRoomsPerType bounds every room count of [Counts] so a form, prompt or
// preview message cannot request an unbounded layout.
const MaxRoomsPerType = 64

// Counts is the form representation of a layout: how many rooms of each type
// and which extras. It is also the shape returned by prompt parsers.
type Counts struct {
	Bedrooms  int    `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms int    `json:"bathrooms" yaml:"bathrooms"`
	Kitchens  int    `json:"kitchens" yaml:"kitchens"`
	Halls     int    `json:"halls" yaml:"halls"`
	Balcony   bool   `json:"balcony" yaml:"balcony"`
	Garden    bool   `json:"garden" yaml:"garden"`
	Parking   bool   `json:"parking" yaml:"parking"`
	Style     string `json:"style" yaml:"style"`
}

// Sanitized clamps every room count to [0, MaxRoomsPerType].
func (c Counts) Sanitized() Counts {
	clamp := func(n int) int { return min(max(n, 0), MaxRoomsPerType) }
	c.Bedrooms = clamp(c.Bedrooms)
	c.Bathrooms = clamp(c.Bathrooms)
	c.Kitchens = clamp(c.Kitchens)
	c.Halls = clamp(c.Halls)
	return c
}

// Of returns the count for room type t. Unknown types count zero.
func (c Counts) Of(t RoomType) int {
	switch t {
	case Bedroom:
		return c.Bedrooms
	case Bathroom:
		return c.Bathrooms
	case Kitchen:
		return c.Kitchens
	case Hall:
		return c.Halls
	default:
		return 0
	}
}

// Wants reports whether the extra t is requested.
func (c Counts) Wants(t ExtraType) bool {
	switch t {
	case Balcony:
		return c.Balcony
	case Garden:
		return c.Garden
	case Parking:
		return c.Parking
	default:
		return false
	}
}

// Total returns the total number of rooms.
func (c Counts) Total() int {
	return c.Bedrooms + c.Bathrooms + c.Kitchens + c.Halls
}

// FromCounts builds a layout from form counts. Counts are used as given
// after [Counts.Sanitized], so zero bedrooms means no bedroom. Rooms are
// emitted grouped by type in [RoomTypes] order with ids Bed1, Bath1, Kit1,
// Hall1 and so on; extras follow [ExtraTypes] order.
func FromCounts(name string, c Counts) Layout {
	c = c.Sanitized()
	if name == "" {
		name = DefaultName
	}
	style := c.Style
	if style == "" {
		style = DefaultStyle
	}

	l := Layout{
		Name:   name,
		Rooms:  make([]Room, 0, c.Total()),
		Extras: []Extra{},
		Style:  style,
	}
	for _, t := range RoomTypes {
		for i := 0; i < c.Of(t); i++ {
			l.Rooms = append(l.Rooms, Room{Type: t, ID: fmt.Sprintf("%s%d", t.IDPrefix(), i+1)})
		}
	}
	for _, t := range ExtraTypes {
		if c.Wants(t) {
			l.Extras = append(l.Extras, Extra{Type: t})
		}
	}
	return l
}

// CountsOf recovers form counts from a layout, e.g. after loading a saved
// design. Rooms of unknown type are not counted.
func CountsOf(l Layout) Counts {
	return Counts{
		Bedrooms:  l.RoomCount(Bedroom),
		Bathrooms: l.RoomCount(Bathroom),
		Kitchens:  l.RoomCount(Kitchen),
		Halls:     l.RoomCount(Hall),
		Balcony:   l.HasExtra(Balcony),
		Garden:    l.HasExtra(Garden),
		Parking:   l.HasExtra(Parking),
		Style:     l.Style,
	}
}
