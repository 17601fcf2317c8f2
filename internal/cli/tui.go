package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dreamhouse/pkg/pipeline"
	"github.com/matzehuels/dreamhouse/pkg/placement/grid"
	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/render/styles"
	"github.com/matzehuels/dreamhouse/pkg/store"
	"github.com/matzehuels/dreamhouse/pkg/studio"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	planStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// Size of the ASCII plan in terminal cells.
const (
	planCols = 64
	planRows = 22
)

// =============================================================================
// studioModel - interactive counts editor
// =============================================================================

type studioField int

const (
	fieldBedrooms studioField = iota
	fieldBathrooms
	fieldKitchens
	fieldHalls
	fieldBalcony
	fieldGarden
	fieldParking
	fieldStyle
	fieldCount
)

var fieldLabels = [fieldCount]string{"Bedrooms", "Bathrooms", "Kitchens", "Halls", "Balcony", "Garden", "Parking", "Style"}

// saveFunc stores a state and returns the new design id.
type saveFunc func(ctx context.Context, st studio.State) (string, error)

// studioModel edits form counts and shows the rebuilt plan after every
// change. Rebuilds run as commands; a result that is not the latest request
// is dropped.
type studioModel struct {
	ctx  context.Context
	ctrl *studio.Controller
	save saveFunc

	state  studio.State
	counts plan.Counts
	color  string
	cursor studioField

	seq    int
	err    error
	status string
}

type rebuiltMsg struct {
	seq   int
	state studio.State
	err   error
}

type savedMsg struct {
	id  string
	err error
}

func newStudioModel(ctx context.Context, ctrl *studio.Controller, seed studio.State, counts plan.Counts, color string, save saveFunc) studioModel {
	if counts.Style == "" {
		counts.Style = plan.DefaultStyle
	}
	return studioModel{ctx: ctx, ctrl: ctrl, save: save, state: seed, counts: counts, color: color}
}

func (m studioModel) Init() tea.Cmd {
	return m.rebuildCmd()
}

// rebuild issues a new rebuild request for the current counts.
func (m studioModel) rebuild() (studioModel, tea.Cmd) {
	m.seq++
	return m, m.rebuildCmd()
}

func (m studioModel) rebuildCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	seq, prev, counts, color := m.seq, m.state, m.counts, m.color
	return func() tea.Msg {
		st, err := ctrl.ApplyCounts(ctx, prev, counts, color)
		return rebuiltMsg{seq: seq, state: st, err: err}
	}
}

func (m studioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rebuiltMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.state, m.err = msg.state, nil
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = "saved as " + msg.id
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j", "tab":
			if m.cursor < fieldCount-1 {
				m.cursor++
			}
		case "left", "h", "-":
			m.status = ""
			m.adjust(-1)
			return m.rebuild()
		case "right", "l", "+", "=", " ", "space", "enter":
			m.status = ""
			m.adjust(1)
			return m.rebuild()
		case "s":
			return m, m.saveCmd()
		}
	}
	return m, nil
}

// adjust moves the focused field by delta: counts step, toggles flip and the
// style cycles.
func (m *studioModel) adjust(delta int) {
	step := func(n *int) { *n = min(max(*n+delta, 0), plan.MaxRoomsPerType) }
	c := &m.counts
	switch m.cursor {
	case fieldBedrooms:
		step(&c.Bedrooms)
	case fieldBathrooms:
		step(&c.Bathrooms)
	case fieldKitchens:
		step(&c.Kitchens)
	case fieldHalls:
		step(&c.Halls)
	case fieldBalcony:
		c.Balcony = !c.Balcony
	case fieldGarden:
		c.Garden = !c.Garden
	case fieldParking:
		c.Parking = !c.Parking
	case fieldStyle:
		c.Style = cycleStyle(c.Style, delta)
	}
}

func cycleStyle(cur string, delta int) string {
	i := 0
	for j, name := range styles.Names {
		if name == cur {
			i = j
		}
	}
	n := len(styles.Names)
	return styles.Names[((i+delta)%n+n)%n]
}

func (m studioModel) saveCmd() tea.Cmd {
	if m.save == nil || m.state.Empty() {
		return nil
	}
	st := m.state
	return func() tea.Msg {
		id, err := m.save(m.ctx, st)
		return savedMsg{id: id, err: err}
	}
}

func (m studioModel) fieldValue(f studioField) string {
	c := m.counts
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	switch f {
	case fieldBedrooms:
		return fmt.Sprint(c.Bedrooms)
	case fieldBathrooms:
		return fmt.Sprint(c.Bathrooms)
	case fieldKitchens:
		return fmt.Sprint(c.Kitchens)
	case fieldHalls:
		return fmt.Sprint(c.Halls)
	case fieldBalcony:
		return yesNo(c.Balcony)
	case fieldGarden:
		return yesNo(c.Garden)
	case fieldParking:
		return yesNo(c.Parking)
	case fieldStyle:
		return c.Style
	}
	return ""
}

func (m studioModel) View() string {
	var form strings.Builder
	form.WriteString(StyleTitle.Render(m.state.Layout.Name))
	form.WriteString("\n\n")
	for f := studioField(0); f < fieldCount; f++ {
		line := fmt.Sprintf("%-10s %s", fieldLabels[f], m.fieldValue(f))
		if f == m.cursor {
			form.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			form.WriteString(listNormalStyle.Render("  " + line))
		}
		form.WriteString("\n")
	}
	form.WriteString("\n")
	form.WriteString(listDimStyle.Render(fmt.Sprintf("revision %d · color %s", m.state.Revision, m.state.Color)))
	form.WriteString("\n")
	switch {
	case m.err != nil:
		form.WriteString(StyleWarning.Render(m.err.Error()))
	case m.status != "":
		form.WriteString(StyleSuccess.Render(m.status))
	}

	var preview string
	if m.state.Result != nil {
		preview = planStyle.Render(asciiPlan(m.state.Result.Plan2D, planCols, planRows))
	}

	help := "↑/↓ field  ←/→ change  space toggle  q quit"
	if m.save != nil {
		help = "↑/↓ field  ←/→ change  space toggle  s save  q quit"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, form.String(), "   ", preview) +
		"\n\n" + listDimStyle.Render(help) + "\n"
}

// =============================================================================
// ASCII plan
// =============================================================================

// asciiPlan draws the 2D placement scaled into a cols×rows character grid.
// Rooms get solid box borders, extras dotted ones.
func asciiPlan(res grid.Result, cols, rows int) string {
	if res.Width <= 0 || res.Height <= 0 || cols < 2 || rows < 2 {
		return ""
	}
	canvas := make([][]rune, rows)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", cols))
	}
	sx := float64(cols-1) / res.Width
	sy := float64(rows-1) / res.Height

	box := func(r plan.Rect, corner, horiz, vert rune, lines ...string) {
		x0 := int(math.Round(r.X * sx))
		y0 := int(math.Round(r.Y * sy))
		x1 := min(int(math.Round(r.Right()*sx)), cols-1)
		y1 := min(int(math.Round(r.Bottom()*sy)), rows-1)
		if x1-x0 < 2 || y1-y0 < 1 {
			return
		}
		for x := x0; x <= x1; x++ {
			canvas[y0][x], canvas[y1][x] = horiz, horiz
		}
		for y := y0; y <= y1; y++ {
			canvas[y][x0], canvas[y][x1] = vert, vert
		}
		canvas[y0][x0], canvas[y0][x1], canvas[y1][x0], canvas[y1][x1] = corner, corner, corner, corner
		for i, text := range lines {
			y := y0 + 1 + i
			if y >= y1 {
				break
			}
			t := []rune(text)
			if len(t) > x1-x0-1 {
				t = t[:x1-x0-1]
			}
			copy(canvas[y][x0+1:], t)
		}
	}

	for _, pr := range res.Rooms {
		box(pr.Rect, '+', '-', '|', pr.Label, pr.IDText)
	}
	for _, pe := range res.Extras {
		box(pe.Rect, '.', '.', ':', pe.Label)
	}

	out := make([]string, rows)
	for i, line := range canvas {
		out[i] = strings.TrimRight(string(line), " ")
	}
	return strings.Join(out, "\n")
}

// =============================================================================
// Command
// =============================================================================

// studioCommand opens the interactive editor.
func (c *CLI) studioCommand() *cobra.Command {
	var text, name, color string
	var noStore bool

	cmd := &cobra.Command{
		Use:   "studio",
		Short: "Edit a design interactively with a live plan preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStudio(cmd, text, name, color, noStore)
		},
	}

	cmd.Flags().StringVar(&text, "prompt", "", "seed the editor from a description")
	cmd.Flags().StringVar(&name, "name", "", "design name")
	cmd.Flags().StringVar(&color, "color", "", "primary room color as #rrggbb")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "disable saving")
	return cmd
}

func (c *CLI) runStudio(cmd *cobra.Command, text, name, color string, noStore bool) error {
	ctx := cmd.Context()
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if color == "" {
		color = cfg.Render.Color
	}
	if err := pipeline.ValidateColor(color); err != nil {
		return err
	}

	// Log lines would tear the alternate screen.
	quiet := log.New(io.Discard)
	cc, err := newCache(ctx, cfg.Cache, false)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, cfg.Cache.Keyer(), quiet)
	defer runner.Close()
	parser, err := c.newParser(ctx, cfg, "", cc)
	if err != nil {
		return err
	}
	ctrl := studio.NewController(runner,
		studio.WithParser(parser),
		studio.WithOptions(cfg.RenderOptions()),
		studio.WithLogger(quiet))

	seed := studio.State{Layout: plan.Layout{Name: name}, Color: color}
	if seed.Layout.Name == "" {
		seed.Layout.Name = plan.DefaultName
	}
	counts := plan.Counts{Bedrooms: 2, Bathrooms: 1, Kitchens: 1, Halls: 1, Style: cfg.Render.Style}
	if text != "" {
		st, err := ctrl.ApplyPrompt(ctx, seed, text, name)
		if err != nil {
			return err
		}
		seed, counts = st, st.Counts
	}

	var save saveFunc
	if !noStore {
		s, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()
		save = func(ctx context.Context, st studio.State) (string, error) {
			return s.Save(ctx, store.Design{Name: st.Layout.Name, Prompt: st.Prompt, Layout: st.Layout})
		}
	}

	m := newStudioModel(ctx, ctrl, seed, counts, color, save)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(studioModel); ok && fm.status != "" {
		printSuccess("%s", strings.ToUpper(fm.status[:1])+fm.status[1:])
	}
	return nil
}
