package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/pipeline"
	"github.com/matzehuels/dreamhouse/pkg/placement/camera"
	"github.com/matzehuels/dreamhouse/pkg/placement/grid"
	"github.com/matzehuels/dreamhouse/pkg/placement/volume"
	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// Placement modes.
const (
	mode2D   = "2d"
	mode3D   = "3d"
	modeBoth = "both"
)

// placeOpts holds the flags of the place command.
type placeOpts struct {
	mode   string
	output string
	width  float64
	height float64
	fov    float64
}

// placement is the JSON written by the place command. Sections not asked
// for by --mode are omitted.
type placement struct {
	LayoutHash string         `json:"layout_hash"`
	Plan2D     *grid.Result   `json:"plan2d,omitempty"`
	Plan3D     *volume.Result `json:"plan3d,omitempty"`
	Camera     *camera.Pose   `json:"camera,omitempty"`
}

// placeCommand computes placements for a layout file.
func (c *CLI) placeCommand() *cobra.Command {
	opts := placeOpts{mode: modeBoth}

	cmd := &cobra.Command{
		Use:   "place <layout>",
		Short: "Compute the 2D and 3D placement of a layout",
		Long: `Place reads a layout (.json or .yaml) and writes the placed 2D grid
cells, the 3D room volumes with roof and the framing camera as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateMode(opts.mode); err != nil {
				return err
			}
			return c.runPlace(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "placement: 2d, 3d, both")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "2D canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "2D canvas height")
	cmd.Flags().Float64Var(&opts.fov, "fov", 0, "camera field of view in degrees")

	registerModeCompletion(cmd)
	return cmd
}

func validateMode(mode string) error {
	switch mode {
	case mode2D, mode3D, modeBoth:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid mode %q (must be 2d, 3d or both)", mode)
}

func (c *CLI) runPlace(cmd *cobra.Command, path string, opts placeOpts) error {
	l, err := plan.ReadLayoutFile(path)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	res, err := runner.Place(cmd.Context(), l, pipeline.Options{Width: opts.width, Height: opts.height, FOV: opts.fov})
	if err != nil {
		return err
	}
	prog.done("placed layout", "rooms", res.Stats.Rooms, "extras", res.Stats.Extras)

	out := placement{LayoutHash: res.LayoutHash}
	if opts.mode != mode3D {
		out.Plan2D = &res.Plan2D
	}
	if opts.mode != mode2D {
		out.Plan3D = &res.Plan3D
		out.Camera = &res.Camera
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, opts.output, append(data, '\n')); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Placed %s", l.Name)
		printFile(opts.output)
	}
	return nil
}
