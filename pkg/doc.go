// Package pkg provides the core libraries of dreamhouse, a floor-plan layout
// engine.
//
// # Overview
//
// A design starts as a [plan.Layout]: named rooms of a few known types plus
// optional extras such as a garden or parking. Layouts come from form counts
// ([plan.FromCounts]) or from a free-text prompt ([prompt.Generate]). The
// placement packages turn a layout into geometry and the render sinks turn
// geometry into files.
//
// # Architecture
//
//	prompt / counts
//	       ↓
//	  [plan] Layout
//	       ↓
//	  [placement/grid]    2D cells on a canvas
//	  [placement/volume]  3D boxes, ground patches and a roof
//	  [placement/camera]  a pose framing the 3D scene
//	       ↓
//	  [render/sink]  SVG, PDF, DXF, XLSX, scene JSON
//
// [pipeline] ties the steps together behind a cached Runner. [studio] keeps
// the last good state of an interactive editing session. [store] persists
// designs (SQLite, Postgres, MongoDB or memory) and [artifact] publishes
// rendered files to disk or S3-compatible storage.
//
// # Quick Start
//
//	l := plan.FromCounts("Cottage", plan.Counts{Bedrooms: 2, Halls: 1, Garden: true})
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(ctx, l, pipeline.Options{Formats: []string{"svg", "pdf"}})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("cottage.svg", res.Artifacts["svg"], 0o644)
//
// [plan]: github.com/matzehuels/dreamhouse/pkg/plan
// [plan.Layout]: github.com/matzehuels/dreamhouse/pkg/plan#Layout
// [plan.FromCounts]: github.com/matzehuels/dreamhouse/pkg/plan#FromCounts
// [prompt.Generate]: github.com/matzehuels/dreamhouse/pkg/prompt#Generate
// [placement/grid]: github.com/matzehuels/dreamhouse/pkg/placement/grid
// [placement/volume]: github.com/matzehuels/dreamhouse/pkg/placement/volume
// [placement/camera]: github.com/matzehuels/dreamhouse/pkg/placement/camera
// [render/sink]: github.com/matzehuels/dreamhouse/pkg/render/sink
// [pipeline]: github.com/matzehuels/dreamhouse/pkg/pipeline
// [studio]: github.com/matzehuels/dreamhouse/pkg/studio
// [store]: github.com/matzehuels/dreamhouse/pkg/store
// [artifact]: github.com/matzehuels/dreamhouse/pkg/artifact
package pkg
