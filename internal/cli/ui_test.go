package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/dreamhouse/pkg/plan"
)

func TestLayoutSummary(t *testing.T) {
	l := plan.Layout{
		Rooms: []plan.Room{
			{Type: plan.Bedroom, ID: "Bed1"},
			{Type: plan.Bedroom, ID: "Bed2"},
			{Type: plan.Kitchen, ID: "Kit1"},
			{Type: "Sauna", ID: "S1"},
		},
		Extras: []plan.Extra{{Type: plan.Garden}},
	}

	tests := []struct {
		name   string
		layout plan.Layout
		cached bool
		want   []string
	}{
		{"mixed", l, false, []string{"2 Bedroom", "1 Kitchen", "1 other", "Garden", "fresh"}},
		{"cached", l, true, []string{"cached"}},
		{"empty", plan.Layout{}, false, []string{"no rooms"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := layoutSummary(tt.layout, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("summary %q missing %q", got, w)
				}
			}
		})
	}
}

func TestStatusLinesUseStdout(t *testing.T) {
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })

	printSuccess("Rendered %s", "Cottage")
	printFile("cottage.svg")
	printKeyValue("pdf", "http://x/y.pdf")

	out := buf.String()
	for _, want := range []string{"Rendered Cottage", "cottage.svg", "http://x/y.pdf"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg", "pdf", "dxf", "xlsx", "scene"}},
		{"svg,", []string{"svg,pdf", "svg,dxf", "svg,xlsx", "svg,scene"}},
		{"svg,pdf,x", []string{"svg,pdf,dxf", "svg,pdf,xlsx", "svg,pdf,scene"}},
	}
	for _, tt := range tests {
		got, _ := completeFormats(nil, nil, tt.in)
		if strings.Join(got, " ") != strings.Join(tt.want, " ") {
			t.Errorf("completeFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
