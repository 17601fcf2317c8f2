package sink

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/matzehuels/dreamhouse/pkg/placement/camera"
	"github.com/matzehuels/dreamhouse/pkg/placement/grid"
	"github.com/matzehuels/dreamhouse/pkg/placement/volume"
	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/render/styles"
)

func sampleLayout() plan.Layout {
	l := plan.FromCounts("Test House", plan.Counts{
		Bedrooms: 2, Bathrooms: 1, Kitchens: 1, Halls: 1,
		Garden: true, Parking: true,
	})
	l.Rooms[0].Width = plan.Size(5)
	return l
}

// =============================================================================
// SVG
// =============================================================================

func TestRenderSVG(t *testing.T) {
	res := grid.Compute(sampleLayout(), grid.DefaultOptions())
	out := string(RenderSVG(res, WithTitle("Test <House>")))

	if !strings.HasPrefix(out, "<?xml") {
		t.Errorf("missing xml prolog: %.40q", out)
	}
	if !strings.Contains(out, `width="1000" height="600"`) {
		t.Error("canvas size not written")
	}
	if got := strings.Count(out, `class="room-label"`); got != 5 {
		t.Errorf("room labels = %d, want 5", got)
	}
	if got := strings.Count(out, `class="extra-label"`); got != 2 {
		t.Errorf("extra labels = %d, want 2", got)
	}
	if !strings.Contains(out, "Test &lt;House&gt;") {
		t.Error("title not escaped")
	}
	if !strings.Contains(out, "fill:#8fbf8f") {
		t.Error("default primary fill missing")
	}
	if !strings.Contains(out, "🚗 Parking") {
		t.Error("extra text missing")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("document not closed")
	}
}

func TestRenderSVGFirstCell(t *testing.T) {
	l := plan.Layout{Rooms: []plan.Room{{Type: plan.Kitchen, ID: "K"}}}
	out := string(RenderSVG(grid.Compute(l, grid.DefaultOptions())))

	// One room: cell is 300x540 at (20,20); inner rect inset by 8.
	for _, want := range []string{
		`<rect x="20" y="20" width="300" height="540" rx="8" ry="8"`,
		`<rect x="28" y="28" width="284" height="524" rx="6" ry="6"`,
		`<text x="158" y="298"`,
		`<text x="32" y="44"`,
		`<text x="32" y="64"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestRenderSVGPalette(t *testing.T) {
	res := grid.Compute(sampleLayout(), grid.DefaultOptions())
	p := styles.For(styles.Traditional).WithPrimary("#123456")
	out := string(RenderSVG(res, WithPalette(p), WithBackground()))
	if !strings.Contains(out, "fill:#123456") {
		t.Error("primary override not applied")
	}
	if !strings.Contains(out, "fill:"+p.Backdrop) {
		t.Error("background not drawn")
	}
}

func TestRenderSVGTinyCanvas(t *testing.T) {
	l := sampleLayout()
	for i := 0; i < 30; i++ {
		l.Rooms = append(l.Rooms, plan.Room{Type: plan.Bathroom, ID: "X" + string(rune('a'+i))})
	}
	res := grid.Compute(l, grid.Options{CanvasWidth: 100, CanvasHeight: 100})
	out := string(RenderSVG(res))
	if strings.Contains(out, `width="-`) || strings.Contains(out, `height="-`) {
		t.Error("negative rectangle size drawn")
	}
}

// =============================================================================
// PDF
// =============================================================================

func TestRenderPDF(t *testing.T) {
	res := grid.Compute(sampleLayout(), grid.DefaultOptions())
	data, err := RenderPDF(res, WithPDFTitle("Test House"), WithPDFLink("https://example.com/d/1"))
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("not a pdf: %.8q", data)
	}
}

func TestRenderPDFEmpty(t *testing.T) {
	res := grid.Compute(plan.Layout{}, grid.DefaultOptions())
	if _, err := RenderPDF(res); err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
}

// =============================================================================
// DXF
// =============================================================================

func TestRenderDXF(t *testing.T) {
	res := grid.Compute(sampleLayout(), grid.DefaultOptions())
	data, err := RenderDXF(res)
	if err != nil {
		t.Fatalf("RenderDXF() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "plan.dxf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("dxf.Open() error: %v", err)
	}

	var lines, texts int
	for _, e := range d.Entities() {
		switch e.(type) {
		case *entity.Line:
			lines++
		case *entity.Text:
			texts++
		}
	}
	// Frame, 5 rooms and 2 extras, four edges each.
	if lines != 4*(1+5+2) {
		t.Errorf("lines = %d, want %d", lines, 4*(1+5+2))
	}
	// Two labels per room, one per extra.
	if texts != 2*5+2 {
		t.Errorf("texts = %d, want %d", texts, 2*5+2)
	}
}

func TestRoomLayer(t *testing.T) {
	if got := RoomLayer(plan.Bedroom); got != "ROOM_BEDROOM" {
		t.Errorf("RoomLayer(Bedroom) = %q", got)
	}
	if got := RoomLayer(""); got != "ROOM_UNKNOWN" {
		t.Errorf("RoomLayer(\"\") = %q", got)
	}
}

// =============================================================================
// XLSX
// =============================================================================

func TestScheduleRoundTrip(t *testing.T) {
	l := sampleLayout()
	l.Style = styles.Minimal
	l.Rooms[1].Depth = plan.Size(2.5)

	data, err := RenderSchedule(l, grid.Compute(l, grid.DefaultOptions()))
	if err != nil {
		t.Fatalf("RenderSchedule() error: %v", err)
	}
	got, err := ReadSchedule(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadSchedule() error: %v", err)
	}

	if got.Name != l.Name || got.Style != l.Style {
		t.Errorf("meta = %q/%q, want %q/%q", got.Name, got.Style, l.Name, l.Style)
	}
	if len(got.Rooms) != len(l.Rooms) {
		t.Fatalf("rooms = %d, want %d", len(got.Rooms), len(l.Rooms))
	}
	for i := range l.Rooms {
		if got.Rooms[i].ID != l.Rooms[i].ID || got.Rooms[i].Type != l.Rooms[i].Type {
			t.Errorf("room %d = %+v, want %+v", i, got.Rooms[i], l.Rooms[i])
		}
		if got.Rooms[i].Footprint() != l.Rooms[i].Footprint() {
			t.Errorf("room %d footprint = %v, want %v", i, got.Rooms[i].Footprint(), l.Rooms[i].Footprint())
		}
	}
	if got.Rooms[2].Width != nil {
		t.Error("override invented for a room without one")
	}
	if len(got.Extras) != 2 || got.Extras[0].Type != plan.Garden || got.Extras[1].Type != plan.Parking {
		t.Errorf("extras = %+v", got.Extras)
	}
}

func TestReadScheduleRejectsGarbage(t *testing.T) {
	if _, err := ReadSchedule(strings.NewReader("not a workbook")); err == nil {
		t.Error("expected error")
	}
}

// =============================================================================
// Scene
// =============================================================================

func TestRenderScene(t *testing.T) {
	res := volume.Compute(sampleLayout())
	pose := camera.FitDefault(res.Bounds())

	data, err := RenderScene(res, pose, WithSceneIndent())
	if err != nil {
		t.Fatalf("RenderScene() error: %v", err)
	}
	var sc Scene
	if err := json.Unmarshal(data, &sc); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	kinds := map[string]int{}
	for _, p := range sc.Primitives {
		kinds[p.Kind]++
	}
	if kinds[KindBox] != 5 || kinds[KindPlane] != 2 || kinds[KindPyramid] != 1 {
		t.Errorf("primitive kinds = %v", kinds)
	}
	if len(sc.Labels) != 5 {
		t.Errorf("labels = %d, want 5", len(sc.Labels))
	}
	if sc.Camera.Target != pose.Target {
		t.Errorf("camera target = %v, want %v", sc.Camera.Target, pose.Target)
	}
	if sc.Style != styles.Modern {
		t.Errorf("style = %q", sc.Style)
	}
}

func TestBuildSceneEmpty(t *testing.T) {
	res := volume.Compute(plan.Layout{})
	sc := BuildScene(res, camera.FitDefault(res.Bounds()))
	if len(sc.Primitives) != 1 || sc.Primitives[0].Kind != KindPyramid {
		t.Errorf("primitives = %+v, want only the roof", sc.Primitives)
	}
	if _, err := json.Marshal(sc); err != nil {
		t.Errorf("empty scene does not encode: %v", err)
	}
}
