// Package camera frames a 3D bounding box with a perspective camera.
package camera

import (
	"math"

	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// Framing defaults.
const (
	DefaultFOV    = 45.0
	DefaultOffset = 1.6
)

// Pose is a camera placement looking at Target.
type Pose struct {
	Position plan.Vec3 `json:"position"`
	Target   plan.Vec3 `json:"target"`
	FOV      float64   `json:"fov"`
}

// Distance returns the camera's offset along each horizontal axis for a box
// whose largest side is maxDim. The expression doubles the field of view
// inside the tangent; it is a rough framing rule, not a frustum fit, and is
// kept as is so framing matches earlier renders.
func Distance(maxDim, fovDegrees, offset float64) float64 {
	fov := fovDegrees * math.Pi / 180
	return math.Abs(maxDim/2*math.Tan(fov*2)) * offset
}

// Fit places the camera at center + (d, d/3, d) looking at the center of box.
func Fit(box plan.Box3, fovDegrees, offset float64) Pose {
	center := box.Center()
	d := Distance(box.Size().MaxComponent(), fovDegrees, offset)
	return Pose{
		Position: center.Add(plan.Vec3{X: d, Y: d / 3, Z: d}),
		Target:   center,
		FOV:      fovDegrees,
	}
}

// FitDefault frames box with [DefaultFOV] and [DefaultOffset].
func FitDefault(box plan.Box3) Pose {
	return Fit(box, DefaultFOV, DefaultOffset)
}
