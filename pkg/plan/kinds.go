package plan

// =============================================================================
// Room Types
// =============================================================================

// RoomType identifies the function of a room.
type RoomType string

// Known room types.
const (
	Bedroom  RoomType = "Bedroom"
	Bathroom RoomType = "Bathroom"
	Kitchen  RoomType = "Kitchen"
	Hall     RoomType = "Hall"
)

// RoomTypes lists the known room types in form order.
var RoomTypes = []RoomType{Bedroom, Bathroom, Kitchen, Hall}

// Footprint is a horizontal width × depth in abstract plan units.
type Footprint struct {
	Width float64 `json:"width" yaml:"width"`
	Depth float64 `json:"depth" yaml:"depth"`
}

// Area returns Width × Depth.
func (f Footprint) Area() float64 { return f.Width * f.Depth }

// Known reports whether t is one of the built-in room types.
func (t RoomType) Known() bool {
	switch t {
	case Bedroom, Bathroom, Kitchen, Hall:
		return true
	default:
		return false
	}
}

// Icon returns the glyph drawn in the room's 2D cell.
func (t RoomType) Icon() string {
	switch t {
	case Bedroom:
		return "🛏"
	case Bathroom:
		return "🚽"
	case Kitchen:
		return "🍳"
	case Hall:
		return "🛋"
	default:
		return "📐"
	}
}

// Footprint returns the default footprint used when a room carries no
// explicit size.
func (t RoomType) Footprint() Footprint {
	switch t {
	case Hall:
		return Footprint{Width: 4, Depth: 4}
	case Bedroom:
		return Footprint{Width: 3.5, Depth: 3}
	case Kitchen:
		return Footprint{Width: 3, Depth: 3}
	case Bathroom:
		return Footprint{Width: 2, Depth: 2}
	default:
		return Footprint{Width: 2, Depth: 2}
	}
}

// IDPrefix returns the prefix used for generated room ids ("Bed1", "Kit2").
func (t RoomType) IDPrefix() string {
	switch t {
	case Bedroom:
		return "Bed"
	case Bathroom:
		return "Bath"
	case Kitchen:
		return "Kit"
	case Hall:
		return "Hall"
	default:
		return string(t)
	}
}

// =============================================================================
// Extra Types
// =============================================================================

// ExtraType identifies a non-room amenity.
type ExtraType string

// Known extra types.
const (
	Garden  ExtraType = "Garden"
	Parking ExtraType = "Parking"
	Balcony ExtraType = "Balcony"
)

// ExtraTypes lists the known extras in the order layouts are built.
var ExtraTypes = []ExtraType{Balcony, Garden, Parking}

// Known reports whether t is a built-in extra. Unknown extras are skipped by
// every placement algorithm.
func (t ExtraType) Known() bool {
	switch t {
	case Garden, Parking, Balcony:
		return true
	default:
		return false
	}
}

// Icon returns the glyph shown next to the extra's name.
func (t ExtraType) Icon() string {
	switch t {
	case Garden:
		return "🌳"
	case Parking:
		return "🚗"
	case Balcony:
		return "🏖"
	default:
		return ""
	}
}

// Footprint returns the ground patch size of the extra. The second return
// value is false for unknown extras.
func (t ExtraType) Footprint() (Footprint, bool) {
	switch t {
	case Garden:
		return Footprint{Width: 6, Depth: 4}, true
	case Parking:
		return Footprint{Width: 4, Depth: 3}, true
	case Balcony:
		return Footprint{Width: 2, Depth: 1.2}, true
	default:
		return Footprint{}, false
	}
}
