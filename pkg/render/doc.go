// Package render groups the presentation adapters.
//
// The [sink] subpackage turns placements into files: a 2D SVG plan, a PDF
// sheet with a room schedule and an optional share QR code, a layered DXF
// drawing, an XLSX room schedule that can be read back, and a JSON scene of
// 3D primitives for a web viewer. [styles] holds the color palettes shared by
// every sink.
//
// Sinks never compute geometry; they draw the grid and volume results they
// are given.
//
// [sink]: github.com/matzehuels/dreamhouse/pkg/render/sink
// [styles]: github.com/matzehuels/dreamhouse/pkg/render/styles
package render
