package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dreamhouse/internal/config"
	"github.com/matzehuels/dreamhouse/pkg/artifact"
	"github.com/matzehuels/dreamhouse/pkg/pipeline"
	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format) or base path
	formats []string // svg, pdf, dxf, xlsx, scene
	style   string   // palette override
	color   string   // primary room color
	title   string   // PDF title
	width   float64  // 2D canvas width
	height  float64  // 2D canvas height
	noCache bool
	publish bool // upload to the artifact store
}

// renderCommand renders a layout file to one or more export formats.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <layout>",
		Short: "Render a layout to SVG, PDF, DXF, XLSX or scene JSON",
		Long: `Render places a layout and writes each requested format next to the
input, or under the base path given with -o. With --publish the files are
also uploaded to the configured artifact store.`,
		Example: `  dreamhouse render house.json -f svg,pdf
  dreamhouse render house.yaml -f dxf -o plans/house.dxf
  dreamhouse render house.json -f pdf --publish`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(formatsStr)
			if err != nil {
				return err
			}
			opts.formats = formats
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, dxf, xlsx, scene (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "style override: modern, traditional, minimal")
	cmd.Flags().StringVar(&opts.color, "color", "", "primary room color as #rrggbb")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title (default layout name)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "2D canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "2D canvas height")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "upload the rendered files to the artifact store")

	registerFormatCompletion(cmd)
	registerStyleCompletion(cmd)
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	cfg, err := c.config()
	if err != nil {
		return err
	}

	l, err := plan.ReadLayoutFile(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded layout", "path", input, "rooms", len(l.Rooms), "extras", len(l.Extras))

	popts := cfg.RenderOptions()
	popts.Formats = opts.formats
	popts.Title = opts.title
	if opts.style != "" {
		popts.Style = opts.style
	}
	if opts.color != "" {
		popts.Color = opts.color
	}
	if opts.width > 0 {
		popts.Width = opts.width
	}
	if opts.height > 0 {
		popts.Height = opts.height
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, l, popts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", res.Layout.Name)
	printStats(res.Layout, res.CacheInfo.RenderHit)

	paths := outputPaths(opts.output, input, opts.formats)
	for _, f := range opts.formats {
		if err := os.WriteFile(paths[f], res.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f, err)
		}
		printFile(paths[f])
	}

	if opts.publish {
		return c.publish(cmd, cfg.Artifacts, res)
	}
	return nil
}

// outputPaths maps each format to its file. A single format with an explicit
// output file is written there; otherwise files share a base path.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + pipeline.Extension(f)
	}
	return paths
}

// basePath strips a known layout or artifact extension from output, or from
// input when output is empty.
func basePath(output, input string) string {
	p := output
	if p == "" {
		p = input
	}
	lower := strings.ToLower(p)
	for _, f := range pipeline.Formats {
		if ext := pipeline.Extension(f); strings.HasSuffix(lower, ext) {
			return p[:len(p)-len(ext)]
		}
	}
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		if strings.HasSuffix(lower, ext) {
			return p[:len(p)-len(ext)]
		}
	}
	return p
}

// publish uploads every rendered artifact and prints its URL.
func (c *CLI) publish(cmd *cobra.Command, cfg config.ArtifactsConfig, res *pipeline.Result) error {
	store, err := openArtifacts(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	spin := newSpinner(ctx, os.Stderr, "Publishing...")
	spin.Start()
	urls := make(map[string]string, len(res.Artifacts))
	for _, f := range pipeline.Formats {
		data, ok := res.Artifacts[f]
		if !ok {
			continue
		}
		key := artifact.Key(res.Layout.Name, pipeline.Extension(f))
		u, err := store.Put(ctx, key, pipeline.ContentType(f), data)
		if err != nil {
			spin.StopWithError("Publishing failed")
			return err
		}
		c.Logger.Debug("published artifact", "key", key, "bytes", len(data))
		urls[f] = u
	}
	spin.StopWithSuccess(fmt.Sprintf("Published %d file(s)", len(urls)))
	for _, f := range pipeline.Formats {
		if u, ok := urls[f]; ok {
			printKeyValue(f, StyleLink.Render(u))
		}
	}
	return nil
}
