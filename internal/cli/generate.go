package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/prompt"
	"github.com/matzehuels/dreamhouse/pkg/render/styles"
)

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	name    string
	output  string
	parser  string
	noCache bool
}

// generateCommand turns a free-text prompt into a layout file.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate a layout from a house description",
		Long: `Generate parses a description such as "3 bhk with garden, minimal" into
room counts and builds a layout with size hints. The regex parser runs
offline; the gemini parser asks an LLM and caches its answers.`,
		Example: `  dreamhouse generate "2 bedroom flat with balcony" -o flat.yaml
  dreamhouse generate --parser gemini "cosy cottage, 3 beds, big kitchen"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "design name (default \""+plan.DefaultName+"\")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, .json or .yaml (default stdout)")
	cmd.Flags().StringVar(&opts.parser, "parser", "", "prompt parser: regex, gemini (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	registerParserCompletion(cmd)
	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, text string, opts generateOpts) error {
	ctx := cmd.Context()
	cfg, err := c.config()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	parser, err := c.newParser(ctx, cfg, opts.parser, runner.Cache)
	if err != nil {
		return err
	}

	var spin *Spinner
	if parser.Name() != prompt.ParserRegex {
		spin = newSpinner(ctx, os.Stderr, "Asking "+parser.Name()+"...")
		spin.Start()
	}
	res, err := runner.Generate(ctx, parser, text, opts.name)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if err := writeLayout(cmd, res.Layout, opts.output); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Generated %s", res.Layout.Name)
		printStats(res.Layout, false)
		printFile(opts.output)
		printNextStep("Render it", "dreamhouse render "+opts.output+" -f svg,pdf")
	}
	return nil
}

// countsOpts holds the flags of the counts command.
type countsOpts struct {
	counts plan.Counts
	name   string
	output string
}

// countsCommand builds a layout from explicit room counts, the form path.
func (c *CLI) countsCommand() *cobra.Command {
	var opts countsOpts

	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Build a layout from room counts",
		Long: `Counts builds a layout from explicit room counts. Counts are taken as
given, so --bedrooms 0 means no bedroom.`,
		Example: `  dreamhouse counts --bedrooms 2 --halls 1 --garden -o house.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := styles.Validate(opts.counts.Style); err != nil {
				return err
			}
			l := plan.FromCounts(opts.name, opts.counts)
			if err := l.Validate(); err != nil {
				return err
			}
			if err := writeLayout(cmd, l, opts.output); err != nil {
				return err
			}
			if opts.output != "" {
				printSuccess("Built %s", l.Name)
				printStats(l, false)
				printFile(opts.output)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.counts.Bedrooms, "bedrooms", 1, "number of bedrooms")
	f.IntVar(&opts.counts.Bathrooms, "bathrooms", 0, "number of bathrooms")
	f.IntVar(&opts.counts.Kitchens, "kitchens", 0, "number of kitchens")
	f.IntVar(&opts.counts.Halls, "halls", 1, "number of halls")
	f.BoolVar(&opts.counts.Balcony, "balcony", false, "add a balcony")
	f.BoolVar(&opts.counts.Garden, "garden", false, "add a garden")
	f.BoolVar(&opts.counts.Parking, "parking", false, "add parking")
	f.StringVar(&opts.counts.Style, "style", plan.DefaultStyle, "style: modern, traditional, minimal")
	f.StringVar(&opts.name, "name", "", "design name")
	f.StringVarP(&opts.output, "output", "o", "", "output file, .json or .yaml (default stdout)")

	registerStyleCompletion(cmd)
	return cmd
}

// writeLayout encodes l by the extension of path, JSON on stdout.
func writeLayout(cmd *cobra.Command, l plan.Layout, path string) error {
	if path != "" && path != "-" {
		return plan.WriteLayoutFile(l, path)
	}
	data, err := plan.MarshalLayout(l)
	if err != nil {
		return err
	}
	return writeOutput(cmd, path, append(data, '\n'))
}
