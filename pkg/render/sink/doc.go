// Package sink turns placement results into output formats.
//
// Sinks never compute geometry. They draw what [grid.Result] and
// [volume.Result] already contain, in the colors of a [styles.Palette].
//
//   - SVG: the flat plan, via [RenderSVG]
//   - PDF: the flat plan on an A4 sheet plus a room schedule, via [RenderPDF]
//   - DXF: the flat plan for CAD tools, one layer per room type, via [RenderDXF]
//   - XLSX: a room schedule workbook, via [RenderSchedule]; [ReadSchedule]
//     reads it back into a layout
//   - Scene: a JSON description of the 3D view, via [RenderScene]
//
// Basic usage:
//
//	res := grid.Compute(layout, grid.DefaultOptions())
//	svg := sink.RenderSVG(res,
//	    sink.WithPalette(styles.For(layout.Style).WithPrimary("#8fbf8f")),
//	    sink.WithTitle(layout.Name),
//	)
//
// The PDF sheet can carry a QR code linking to a published copy:
//
//	pdf, err := sink.RenderPDF(res, sink.WithPDFLink(url))
package sink
