package pipeline

import (
	"fmt"

	"github.com/matzehuels/dreamhouse/pkg/render/sink"
)

// Render generates output artifacts in the requested formats from a placed
// result.
func Render(res *Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	palette := opts.Palette(res.Layout)
	title := opts.title(res.Layout)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(res.Plan2D,
				sink.WithPalette(palette),
				sink.WithTitle(title),
				sink.WithBackground())
		case FormatPDF:
			pdfOpts := []sink.PDFOption{sink.WithPDFPalette(palette), sink.WithPDFTitle(title)}
			if opts.Link != "" {
				pdfOpts = append(pdfOpts, sink.WithPDFLink(opts.Link))
			}
			data, err = sink.RenderPDF(res.Plan2D, pdfOpts...)
		case FormatDXF:
			data, err = sink.RenderDXF(res.Plan2D)
		case FormatXLSX:
			data, err = sink.RenderSchedule(res.Layout, res.Plan2D)
		case FormatScene:
			data, err = sink.RenderScene(res.Plan3D, res.Camera, sink.WithScenePalette(palette))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
