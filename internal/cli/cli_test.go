package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// testEnv isolates a CLI run: XDG dirs, the store and the working directory
// live under a temp dir so no user config or .env is picked up.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("DREAMHOUSE_CACHE", "memory")
	t.Setenv("DREAMHOUSE_STORE", "sqlite")
	t.Setenv("DREAMHOUSE_STORE_PATH", filepath.Join(dir, "designs.db"))
	t.Setenv("DREAMHOUSE_ARTIFACTS_DIR", filepath.Join(dir, "artifacts"))
	t.Chdir(dir)
	return dir
}

// run executes the CLI with args and returns what commands wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("dreamhouse %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestCountsCommand(t *testing.T) {
	dir := testEnv(t)
	path := filepath.Join(dir, "house.yaml")

	mustRun(t, "counts", "--bedrooms", "2", "--halls", "1", "--garden", "--name", "Cottage", "-o", path)

	l, err := plan.ReadLayoutFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if l.Name != "Cottage" {
		t.Errorf("name = %q, want Cottage", l.Name)
	}
	got := plan.CountsOf(l)
	if got.Bedrooms != 2 || got.Halls != 1 || !got.Garden || got.Kitchens != 0 {
		t.Errorf("counts = %+v", got)
	}
}

func TestCountsCommandRejectsStyle(t *testing.T) {
	testEnv(t)
	if _, err := run(t, "counts", "--style", "baroque"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestCountsCommandStdout(t *testing.T) {
	testEnv(t)
	out := mustRun(t, "counts", "--bedrooms", "0", "--halls", "0")

	l, err := plan.UnmarshalLayout([]byte(out))
	if err != nil {
		t.Fatalf("stdout is not a layout: %v\n%s", err, out)
	}
	if len(l.Rooms) != 0 {
		t.Errorf("rooms = %d, want 0", len(l.Rooms))
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := testEnv(t)
	path := filepath.Join(dir, "gen.json")

	mustRun(t, "generate", "3 bhk with parking, traditional", "-o", path)

	l, err := plan.ReadLayoutFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := l.RoomCount(plan.Bedroom); n != 3 {
		t.Errorf("bedrooms = %d, want 3", n)
	}
	if l.Style != "traditional" {
		t.Errorf("style = %q, want traditional", l.Style)
	}
	if !l.HasExtra(plan.Parking) {
		t.Error("missing parking")
	}
}

func TestGenerateUnknownParser(t *testing.T) {
	testEnv(t)
	if _, err := run(t, "generate", "2 bed", "--parser", "oracle"); err == nil {
		t.Error("expected error for unknown parser")
	}
}

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sample.json")
	l := plan.FromCounts("Sample", plan.Counts{Bedrooms: 1, Halls: 1, Garden: true})
	if err := plan.WriteLayoutFile(l, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlaceModes(t *testing.T) {
	dir := testEnv(t)
	input := writeSample(t, dir)

	tests := []struct {
		mode         string
		want2D       bool
		want3D       bool
		wantCameraOK bool
	}{
		{"2d", true, false, false},
		{"3d", false, true, true},
		{"both", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			out := mustRun(t, "place", input, "--mode", tt.mode)
			var got map[string]json.RawMessage
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if _, ok := got["plan2d"]; ok != tt.want2D {
				t.Errorf("plan2d present = %v, want %v", ok, tt.want2D)
			}
			if _, ok := got["plan3d"]; ok != tt.want3D {
				t.Errorf("plan3d present = %v, want %v", ok, tt.want3D)
			}
			if _, ok := got["camera"]; ok != tt.wantCameraOK {
				t.Errorf("camera present = %v, want %v", ok, tt.wantCameraOK)
			}
			if _, ok := got["layout_hash"]; !ok {
				t.Error("missing layout_hash")
			}
		})
	}

	if _, err := run(t, "place", input, "--mode", "4d"); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := testEnv(t)
	input := writeSample(t, dir)

	mustRun(t, "render", input, "-f", "svg,pdf,scene", "--color", "#336699")

	for _, name := range []string{"sample.svg", "sample.pdf", "sample.scene.json"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
	svg, _ := os.ReadFile(filepath.Join(dir, "sample.svg"))
	if !strings.Contains(string(svg), "#336699") {
		t.Error("svg does not use the primary color")
	}
}

func TestRenderSingleOutputFile(t *testing.T) {
	dir := testEnv(t)
	input := writeSample(t, dir)
	out := filepath.Join(dir, "plans", "ground.dxf")
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		t.Fatal(err)
	}

	mustRun(t, "render", input, "-f", "dxf", "-o", out)

	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected %s: %v", out, err)
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	dir := testEnv(t)
	input := writeSample(t, dir)

	for _, args := range [][]string{
		{"render", input, "-f", "gif"},
		{"render", input, "--color", "green"},
		{"render", filepath.Join(dir, "missing.json")},
	} {
		if _, err := run(t, args...); err == nil {
			t.Errorf("dreamhouse %v: expected error", args)
		}
	}
}

func TestRenderPublish(t *testing.T) {
	dir := testEnv(t)
	input := writeSample(t, dir)

	mustRun(t, "render", input, "-f", "pdf", "--publish")

	matches, err := filepath.Glob(filepath.Join(dir, "artifacts", "designs", "*", "*.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("published files = %v, want one pdf", matches)
	}
}

func TestImportSchedule(t *testing.T) {
	dir := testEnv(t)
	input := writeSample(t, dir)
	mustRun(t, "render", input, "-f", "xlsx")

	out := filepath.Join(dir, "imported.yaml")
	mustRun(t, "import", filepath.Join(dir, "sample.xlsx"), "-o", out)

	got, err := plan.ReadLayoutFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := plan.ReadLayoutFile(input)
	if got.Name != want.Name || len(got.Rooms) != len(want.Rooms) || len(got.Extras) != len(want.Extras) {
		t.Errorf("imported %+v, want %+v", got, want)
	}
}

func TestDesignsRoundTrip(t *testing.T) {
	dir := testEnv(t)
	input := writeSample(t, dir)

	id := strings.TrimSpace(mustRun(t, "designs", "save", input, "--prompt", "1 bed with garden"))
	if id == "" {
		t.Fatal("save printed no id")
	}

	list := mustRun(t, "designs", "list")
	if !strings.Contains(list, "Sample") || !strings.Contains(list, id) {
		t.Errorf("list output missing design:\n%s", list)
	}

	out := filepath.Join(dir, "fetched.json")
	mustRun(t, "designs", "get", id, "-o", out)
	l, err := plan.ReadLayoutFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Rooms) != 2 {
		t.Errorf("fetched rooms = %d, want 2", len(l.Rooms))
	}

	mustRun(t, "designs", "delete", id)
	if _, err := run(t, "designs", "get", id); err == nil {
		t.Error("expected not found after delete")
	}
}

func TestCachePath(t *testing.T) {
	dir := testEnv(t)
	t.Setenv("DREAMHOUSE_CACHE", "file")

	out := strings.TrimSpace(mustRun(t, "cache", "path"))
	if want := filepath.Join(dir, "cache", "dreamhouse"); out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClear(t *testing.T) {
	dir := testEnv(t)
	t.Setenv("DREAMHOUSE_CACHE", "file")
	input := writeSample(t, dir)

	mustRun(t, "render", input)
	entries, _ := filepath.Glob(filepath.Join(dir, "cache", "dreamhouse", "*", "*.json"))
	flat, _ := filepath.Glob(filepath.Join(dir, "cache", "dreamhouse", "*.json"))
	if len(entries)+len(flat) == 0 {
		t.Fatal("render left no cache entries")
	}

	mustRun(t, "cache", "clear")
	entries, _ = filepath.Glob(filepath.Join(dir, "cache", "dreamhouse", "*", "*.json"))
	flat, _ = filepath.Glob(filepath.Join(dir, "cache", "dreamhouse", "*.json"))
	if len(entries)+len(flat) != 0 {
		t.Errorf("entries left after clear: %v %v", entries, flat)
	}
}

func TestCompletion(t *testing.T) {
	testEnv(t)
	out := mustRun(t, "completion", "bash")
	if !strings.Contains(out, "dreamhouse") {
		t.Error("bash completion does not mention the command")
	}
}

func TestVersionFlag(t *testing.T) {
	testEnv(t)
	out := mustRun(t, "--version")
	if !strings.Contains(out, "dreamhouse") {
		t.Errorf("version output = %q", out)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input   string
		want    []string
		wantErr bool
	}{
		{"", []string{"svg"}, false},
		{"svg", []string{"svg"}, false},
		{"svg,PDF, dxf", []string{"svg", "pdf", "dxf"}, false},
		{"xlsx,xlsx", []string{"xlsx"}, false},
		{"png", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseFormats(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFormats(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		formats []string
		want    map[string]string
	}{
		{"next to input", "", "plans/house.json", []string{"svg", "scene"},
			map[string]string{"svg": "plans/house.svg", "scene": "plans/house.scene.json"}},
		{"yaml input", "", "house.yml", []string{"pdf"}, map[string]string{"pdf": "house.pdf"}},
		{"explicit single file", "out/plan.svg", "house.json", []string{"svg"}, map[string]string{"svg": "out/plan.svg"}},
		{"base path", "out/plan", "house.json", []string{"svg", "dxf"},
			map[string]string{"svg": "out/plan.svg", "dxf": "out/plan.dxf"}},
		{"artifact name as base", "out/plan.pdf", "house.json", []string{"svg", "pdf"},
			map[string]string{"svg": "out/plan.svg", "pdf": "out/plan.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.input, tt.formats)
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("path[%s] = %q, want %q", f, got[f], want)
				}
			}
		})
	}
}
