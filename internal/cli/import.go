package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/render/sink"
)

// importCommand converts a room schedule workbook or a YAML layout into a
// layout file.
func (c *CLI) importCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import <schedule.xlsx|layout.yaml>",
		Short: "Import a layout from a room schedule or YAML file",
		Long: `Import reads a room schedule exported with "render -f xlsx" (possibly
edited in a spreadsheet) or a YAML/JSON layout, validates it and writes it
in the format given by the output extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := readAnyLayout(args[0])
			if err != nil {
				return err
			}
			c.Logger.Info("imported layout", "path", args[0], "rooms", len(l.Rooms), "extras", len(l.Extras))
			if err := writeLayout(cmd, l, output); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Imported %s", l.Name)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .json or .yaml (default stdout)")
	return cmd
}

// readAnyLayout reads a layout from a workbook or a JSON/YAML file.
func readAnyLayout(path string) (plan.Layout, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := os.Open(path)
		if err != nil {
			return plan.Layout{}, err
		}
		defer f.Close()
		return sink.ReadSchedule(f)
	}
	return plan.ReadLayoutFile(path)
}
