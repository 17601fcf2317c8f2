package plan

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/dreamhouse/pkg/errors"
)

// Defaults applied when a layout is built without explicit values.
const (
	DefaultName  = "My Dream House"
	DefaultStyle = "modern"

	// MaxRoomSize bounds a room size override, in plan units.
	MaxRoomSize = 1000.0
)

// =============================================================================
// Layout
// =============================================================================

// Layout is the abstract description of a house design.
type Layout struct {
	Name   string  `json:"name" yaml:"name" bson:"name"`
	Rooms  []Room  `json:"rooms" yaml:"rooms" bson:"rooms"`
	Extras []Extra `json:"extras" yaml:"extras" bson:"extras"`
	Style  string  `json:"style,omitempty" yaml:"style,omitempty" bson:"style,omitempty"`
}

// Room is a single room of a layout.
//
// Width and Depth are optional overrides in plan units. When nil, the type's
// default footprint applies.
type Room struct {
	Type  RoomType `json:"type" yaml:"type" bson:"type"`
	ID    string   `json:"id" yaml:"id" bson:"id"`
	Width *float64 `json:"width,omitempty" yaml:"width,omitempty" bson:"width,omitempty"`
	Depth *float64 `json:"depth,omitempty" yaml:"depth,omitempty" bson:"depth,omitempty"`
}

// Extra is a non-room amenity. Extras have no identity; order is kept.
type Extra struct {
	Type ExtraType `json:"type" yaml:"type" bson:"type"`
}

// Footprint returns the room's footprint, honoring overrides. A zero or
// missing override falls back to the type default on that axis.
func (r Room) Footprint() Footprint {
	fp := r.Type.Footprint()
	if r.Width != nil && *r.Width > 0 {
		fp.Width = *r.Width
	}
	if r.Depth != nil && *r.Depth > 0 {
		fp.Depth = *r.Depth
	}
	return fp
}

// UnmarshalJSON accepts the "w"/"h" size keys emitted by some prompt
// services in addition to "width"/"depth".
func (r *Room) UnmarshalJSON(data []byte) error {
	type wire struct {
		Type  RoomType `json:"type"`
		ID    string   `json:"id"`
		Width *float64 `json:"width"`
		Depth *float64 `json:"depth"`
		W     *float64 `json:"w"`
		H     *float64 `json:"h"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Type, r.ID, r.Width, r.Depth = w.Type, w.ID, w.Width, w.Depth
	if r.Width == nil {
		r.Width = w.W
	}
	if r.Depth == nil {
		r.Depth = w.H
	}
	return nil
}

// Size returns a pointer to v, for building rooms with overrides.
func Size(v float64) *float64 { return &v }

// Clone returns a deep copy of l. Nil slices become empty slices.
func (l Layout) Clone() Layout {
	out := Layout{
		Name:   l.Name,
		Style:  l.Style,
		Rooms:  make([]Room, len(l.Rooms)),
		Extras: make([]Extra, len(l.Extras)),
	}
	for i, r := range l.Rooms {
		c := Room{Type: r.Type, ID: r.ID}
		if r.Width != nil {
			c.Width = Size(*r.Width)
		}
		if r.Depth != nil {
			c.Depth = Size(*r.Depth)
		}
		out.Rooms[i] = c
	}
	copy(out.Extras, l.Extras)
	return out
}

// Validate checks structural invariants: room ids must be valid and unique,
// size overrides must be finite and within [0, MaxRoomSize]. Unknown room or
// extra types are not errors.
func (l Layout) Validate() error {
	seen := make(map[string]struct{}, len(l.Rooms))
	for i, r := range l.Rooms {
		if err := errors.ValidateRoomID(r.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidLayout, err, "room %d", i)
		}
		if _, dup := seen[r.ID]; dup {
			return errors.New(errors.ErrCodeInvalidLayout, "duplicate room id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
		if err := checkSize(r.ID, "width", r.Width); err != nil {
			return err
		}
		if err := checkSize(r.ID, "depth", r.Depth); err != nil {
			return err
		}
	}
	return nil
}

func checkSize(id, axis string, v *float64) error {
	switch {
	case v == nil:
		return nil
	case math.IsNaN(*v) || math.IsInf(*v, 0):
		return errors.New(errors.ErrCodeInvalidLayout, "room %q has non-finite %s", id, axis)
	case *v < 0:
		return errors.New(errors.ErrCodeInvalidLayout, "room %q has negative %s", id, axis)
	case *v > MaxRoomSize:
		return errors.New(errors.ErrCodeInvalidLayout, "room %q %s %g exceeds %g", id, axis, *v, MaxRoomSize)
	}
	return nil
}

// RoomCount returns the number of rooms of type t.
func (l Layout) RoomCount(t RoomType) int {
	n := 0
	for _, r := range l.Rooms {
		if r.Type == t {
			n++
		}
	}
	return n
}

// HasExtra reports whether the layout lists at least one extra of type t.
func (l Layout) HasExtra(t ExtraType) bool {
	for _, e := range l.Extras {
		if e.Type == t {
			return true
		}
	}
	return false
}
