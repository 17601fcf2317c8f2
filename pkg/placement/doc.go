// Package placement groups the deterministic layout-to-geometry algorithms.
//
// The subpackages are pure functions of a [plan.Layout]:
//
//   - grid: 2D column-major cell placement on a fixed canvas plus the extras strip
//   - volume: 3D footprints, ground patches, the derived roof and re-centering
//   - camera: the framing heuristic applied to a volume's bounding box
//
// None of them caches, logs or mutates its input. Calling any of them twice
// with the same arguments yields identical results.
//
// [plan.Layout]: github.com/matzehuels/dreamhouse/pkg/plan.Layout
package placement
