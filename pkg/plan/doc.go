// Package plan defines the house layout model shared by every placement
// algorithm and render sink.
//
// A [Layout] is an ordered list of [Room] values plus a list of [Extra]
// amenities and a style name. Room order is the placement order: the grid and
// volumetric placement algorithms consume rooms in sequence, so reordering
// rooms changes the arrangement deterministically.
//
// Layouts are plain values. Placement code never mutates them; a new design
// (form edit, parsed prompt, loaded design) is a new Layout that replaces the
// previous one wholesale.
//
// # Room and Extra types
//
// [RoomType] and [ExtraType] are open string enums. Unknown values decode
// without error and fall through to the default branch of each lookup
// ([RoomType.Icon], [RoomType.Footprint], [ExtraType.Known]), so data written
// by a newer client still renders.
//
// # Serialization
//
// Layouts serialize as JSON or YAML. [ReadLayoutFile] and [WriteLayoutFile]
// pick the codec from the file extension. Room sizes written by prompt
// services as "w"/"h" are accepted on JSON input.
package plan
