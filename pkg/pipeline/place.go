package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/dreamhouse/pkg/cache"
	"github.com/matzehuels/dreamhouse/pkg/placement/camera"
	"github.com/matzehuels/dreamhouse/pkg/placement/grid"
	"github.com/matzehuels/dreamhouse/pkg/placement/volume"
	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// =============================================================================
// Placement
// =============================================================================

// Place validates l and computes both views and the camera pose. The layout
// is cloned first so the result never aliases the caller's slices.
func Place(l plan.Layout, opts Options) (*Result, error) {
	if err := opts.ValidateForPlace(); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	l = l.Clone()

	vol := volume.Compute(l)
	return &Result{
		Layout:     l,
		LayoutHash: LayoutHash(l),
		Plan2D:     grid.Compute(l, opts.GridOptions()),
		Plan3D:     vol,
		Camera:     camera.Fit(vol.Bounds(), opts.FOV, opts.Offset),
		Artifacts:  make(map[string][]byte),
		Stats: Stats{
			Rooms:  len(l.Rooms),
			Extras: len(l.Extras),
		},
	}, nil
}

// LayoutHash returns a content hash of l used in artifact cache keys and
// API responses. Nil and empty slices hash the same.
func LayoutHash(l plan.Layout) string {
	data, _ := json.Marshal(l.Clone())
	return cache.Hash(data)
}
