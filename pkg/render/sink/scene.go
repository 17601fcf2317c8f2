package sink

import (
	"encoding/json"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/placement/camera"
	"github.com/matzehuels/dreamhouse/pkg/placement/volume"
	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/render/styles"
)

// Primitive kinds understood by scene consumers.
const (
	KindBox     = "box"
	KindPlane   = "plane"
	KindPyramid = "pyramid"
)

// SceneOption configures scene rendering.
type SceneOption func(*sceneRenderer)

type sceneRenderer struct {
	palette styles.Palette
	indent  bool
}

// WithScenePalette sets the colors. Defaults to the modern palette.
func WithScenePalette(p styles.Palette) SceneOption {
	return func(r *sceneRenderer) { r.palette = p }
}

// WithSceneIndent pretty-prints the JSON.
func WithSceneIndent() SceneOption { return func(r *sceneRenderer) { r.indent = true } }

// Scene is a renderer-neutral description of the 3D view. Every primitive is
// positioned by its center, except pyramids, which are positioned by the
// center of their base.
type Scene struct {
	Style       string      `json:"style"`
	Primitives  []Primitive `json:"primitives"`
	Labels      []SceneText `json:"labels"`
	Camera      camera.Pose `json:"camera"`
	Bounds      plan.Box3   `json:"bounds"`
	Translation plan.Vec3   `json:"translation"`
}

// Primitive is one drawable solid.
type Primitive struct {
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Position  plan.Vec3 `json:"position"`
	Size      plan.Vec3 `json:"size"`
	RotationY float64   `json:"rotation_y,omitempty"`
	Radius    float64   `json:"radius,omitempty"`
	Sides     int       `json:"sides,omitempty"`
	Color     string    `json:"color"`
}

// SceneText is a floating label.
type SceneText struct {
	Text   string    `json:"text"`
	Anchor plan.Vec3 `json:"anchor"`
}

// BuildScene converts a 3D placement and a camera pose into a [Scene].
func BuildScene(res volume.Result, pose camera.Pose, opts ...SceneOption) Scene {
	r := newSceneRenderer(opts...)
	p := r.palette

	sc := Scene{
		Style:       p.Name,
		Primitives:  make([]Primitive, 0, len(res.Boxes)+len(res.Patches)+1),
		Labels:      make([]SceneText, 0, len(res.Boxes)),
		Camera:      pose,
		Bounds:      res.Bounds(),
		Translation: res.Translation,
	}
	for _, b := range res.Boxes {
		sc.Primitives = append(sc.Primitives, Primitive{
			Kind:     KindBox,
			Name:     b.Room.ID,
			Position: b.Position,
			Size:     b.Size,
			Color:    p.Primary,
		})
		sc.Labels = append(sc.Labels, SceneText{Text: b.Label.Text, Anchor: b.Label.Anchor})
	}
	for _, pt := range res.Patches {
		sc.Primitives = append(sc.Primitives, Primitive{
			Kind:     KindPlane,
			Name:     string(pt.Extra.Type),
			Position: pt.Position,
			Size:     pt.Size,
			Color:    p.ExtraFill(pt.Extra.Type),
		})
	}
	roof := res.Roof
	sc.Primitives = append(sc.Primitives, Primitive{
		Kind:      KindPyramid,
		Name:      "roof",
		Position:  roof.Position,
		Size:      plan.Vec3{X: roof.BaseWidth, Y: roof.Height, Z: roof.BaseDepth},
		RotationY: roof.RotationY,
		Radius:    roof.Radius(),
		Sides:     4,
		Color:     p.Roof,
	})
	return sc
}

// RenderScene encodes the scene for a 3D placement as JSON.
func RenderScene(res volume.Result, pose camera.Pose, opts ...SceneOption) ([]byte, error) {
	r := newSceneRenderer(opts...)
	sc := BuildScene(res, pose, opts...)

	var (
		data []byte
		err  error
	)
	if r.indent {
		data, err = json.MarshalIndent(sc, "", "  ")
	} else {
		data, err = json.Marshal(sc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return data, nil
}

func newSceneRenderer(opts ...SceneOption) sceneRenderer {
	r := sceneRenderer{palette: styles.For(styles.Modern)}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
