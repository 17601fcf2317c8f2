package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dreamhouse/pkg/store"
)

// designsCommand groups the saved-design subcommands.
func (c *CLI) designsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "designs",
		Aliases: []string{"design"},
		Short:   "Save, list and fetch designs in the configured store",
	}

	cmd.AddCommand(c.designsSaveCommand())
	cmd.AddCommand(c.designsListCommand())
	cmd.AddCommand(c.designsGetCommand())
	cmd.AddCommand(c.designsDeleteCommand())

	return cmd
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	s, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func (c *CLI) designsSaveCommand() *cobra.Command {
	var name, prompt string

	cmd := &cobra.Command{
		Use:   "save <layout>",
		Short: "Save a layout file as a design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := readAnyLayout(args[0])
			if err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(s store.Store) error {
				id, err := s.Save(cmd.Context(), store.Design{Name: name, Prompt: prompt, Layout: l})
				if err != nil {
					return err
				}
				printSuccess("Saved design %s", StyleHighlight.Render(id))
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "design name (default the layout name)")
	cmd.Flags().StringVar(&prompt, "prompt", "", "prompt the layout came from")
	return cmd
}

func (c *CLI) designsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved designs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				designs, err := s.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(designs) == 0 {
					printInfo("No saved designs")
					return nil
				}
				printDesigns(cmd.OutOrStdout(), designs, time.Now())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum number of designs")
	return cmd
}

func (c *CLI) designsGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Write a saved design's layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				d, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := writeLayout(cmd, d.Layout, output); err != nil {
					return err
				}
				if output != "" {
					printSuccess("Fetched %s", d.Name)
					printFile(output)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .json or .yaml (default stdout)")
	return cmd
}

func (c *CLI) designsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				if err := s.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted design %s", args[0])
				return nil
			})
		},
	}
}

// printDesigns renders summaries as a rounded table.
func printDesigns(w io.Writer, designs []store.Summary, now time.Time) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	idStyle := lipgloss.NewStyle().Foreground(colorTeal)

	rows := make([][]string, 0, len(designs))
	for _, d := range designs {
		rows = append(rows, []string{d.ID, d.Name, formatRelativeTime(d.CreatedAt, now)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return idStyle
			case col == 2:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	fmt.Fprintln(w, t.Render())
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
