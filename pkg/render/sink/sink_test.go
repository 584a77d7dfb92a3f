package sink

import (
	"math"
	"strings"
	"testing"

	"github.com/mlandt/labelator/pkg/grid"
	"github.com/mlandt/labelator/pkg/layout"
	"github.com/mlandt/labelator/pkg/render/canvas"
	"github.com/mlandt/labelator/pkg/sheet"
)

// recorder captures draw calls for assertions.
type recorder struct {
	circles []struct{ cx, cy, r float64 }
	lines   []struct{ x1, y1, x2, y2 float64 }
	texts   []struct {
		x, y float64
		line string
	}
}

func (r *recorder) Circle(cx, cy, radius float64, _ canvas.CircleStyle) {
	r.circles = append(r.circles, struct{ cx, cy, r float64 }{cx, cy, radius})
}

func (r *recorder) Line(x1, y1, x2, y2, _ float64) {
	r.lines = append(r.lines, struct{ x1, y1, x2, y2 float64 }{x1, y1, x2, y2})
}

func (r *recorder) Text(x, y float64, line string, _ canvas.TextStyle) {
	r.texts = append(r.texts, struct {
		x, y float64
		line string
	}{x, y, line})
}

func testLayout(g grid.Grid) layout.Layout {
	return layout.Build(g, sheet.Default())
}

func TestDrawSingleLabel(t *testing.T) {
	l := testLayout(grid.Grid{{Row: 0, Col: 0}: "A"})
	rec := &recorder{}
	draw(l, rec, DefaultParams().resolved(l), false)

	// One circle outline per grid position, text only at (0,0).
	if len(rec.circles) != 260 {
		t.Errorf("circles = %d, want 260", len(rec.circles))
	}
	if len(rec.texts) != 1 {
		t.Fatalf("texts = %d, want 1", len(rec.texts))
	}
	txt := rec.texts[0]
	if txt.line != "A" {
		t.Errorf("text = %q, want A", txt.line)
	}
	cx, cy := layout.Center(grid.Pos{Row: 0, Col: 0}, sheet.Default())
	if txt.x != cx || txt.y != cy {
		t.Errorf("text at (%g, %g), want circle center (%g, %g)", txt.x, txt.y, cx, cy)
	}
}

func TestDrawMultiLineCentering(t *testing.T) {
	// Two lines at LineHeight 1.0 sit symmetric about the circle
	// center, half a line height above and below.
	l := testLayout(grid.Grid{{Row: 2, Col: 3}: "x\ny"})
	rec := &recorder{}
	p := DefaultParams().resolved(l)
	draw(l, rec, p, false)

	if len(rec.texts) != 2 {
		t.Fatalf("texts = %d, want 2", len(rec.texts))
	}
	_, cy := layout.Center(grid.Pos{Row: 2, Col: 3}, sheet.Default())
	half := 0.5 * p.LineHeight * p.FontSize
	if got := rec.texts[0].y; math.Abs(got-(cy-half)) > 1e-9 {
		t.Errorf("first line y = %g, want %g", got, cy-half)
	}
	if got := rec.texts[1].y; math.Abs(got-(cy+half)) > 1e-9 {
		t.Errorf("second line y = %g, want %g", got, cy+half)
	}

	// Block span equals (n-1) * LineHeight * FontSize.
	span := rec.texts[1].y - rec.texts[0].y
	if want := p.LineHeight * p.FontSize; math.Abs(span-want) > 1e-9 {
		t.Errorf("block span = %g, want %g", span, want)
	}
	// Both lines share the x center.
	if rec.texts[0].x != rec.texts[1].x {
		t.Error("lines not independently centered on the same x")
	}
}

func TestDrawOffsetsScaleWithFontSize(t *testing.T) {
	l := testLayout(grid.Grid{{Row: 0, Col: 0}: "A"})

	p := DefaultParams()
	p.FontSize = 10
	p.DXText = 0.5
	p.DYText = -1.0
	rec := &recorder{}
	draw(l, rec, p.resolved(l), false)

	cx, cy := layout.Center(grid.Pos{Row: 0, Col: 0}, sheet.Default())
	if got := rec.texts[0].x; math.Abs(got-(cx+5)) > 1e-9 {
		t.Errorf("x = %g, want %g (0.5em of 10)", got, cx+5)
	}
	if got := rec.texts[0].y; math.Abs(got-(cy-10)) > 1e-9 {
		t.Errorf("y = %g, want %g (-1em of 10)", got, cy-10)
	}
}

func TestDrawHideCircles(t *testing.T) {
	l := testLayout(grid.Grid{{Row: 0, Col: 0}: "A"})
	p := DefaultParams()
	p.HideCircles = true
	rec := &recorder{}
	draw(l, rec, p.resolved(l), false)

	if len(rec.circles) != 0 {
		t.Errorf("circles = %d, want 0 when hidden", len(rec.circles))
	}
	// The circle center is still used for text placement.
	if len(rec.texts) != 1 {
		t.Errorf("texts = %d, want 1", len(rec.texts))
	}
}

func TestDrawGuides(t *testing.T) {
	l := testLayout(nil)
	rec := &recorder{}
	draw(l, rec, DefaultParams().resolved(l), true)

	// Two crosshair strokes per circle.
	if want := 2 * len(l.Circles); len(rec.lines) != want {
		t.Errorf("guide lines = %d, want %d", len(rec.lines), want)
	}
}

func TestParamsResolved(t *testing.T) {
	l := testLayout(nil)

	p := Params{}.resolved(l)
	if p.FontSize != sheet.Default().FontSize {
		t.Errorf("FontSize = %g, want sheet default %g", p.FontSize, sheet.Default().FontSize)
	}
	if p.FontFamily != "Helvetica" || p.FontWeight != "normal" {
		t.Errorf("font = %s/%s, want Helvetica/normal", p.FontFamily, p.FontWeight)
	}
	if p.LineHeight != 1.0 || p.StrokeWidth != 1.33 {
		t.Errorf("LineHeight = %g, StrokeWidth = %g", p.LineHeight, p.StrokeWidth)
	}

	p = Params{FontSize: 12, LineHeight: 0.8}.resolved(l)
	if p.FontSize != 12 || p.LineHeight != 0.8 {
		t.Errorf("explicit values overridden: %+v", p)
	}
}

func TestRenderSVG(t *testing.T) {
	l := testLayout(grid.Grid{{Row: 0, Col: 0}: "hello"})
	out := string(RenderSVG(l))

	if strings.Count(out, "<circle") != 260 {
		t.Errorf("circle count = %d, want 260", strings.Count(out, "<circle"))
	}
	if strings.Count(out, "<text") != 1 {
		t.Errorf("text count = %d, want 1", strings.Count(out, "<text"))
	}
	if !strings.Contains(out, ">hello</text>") {
		t.Error("label text missing")
	}
}

func TestRenderSVGWithoutCircles(t *testing.T) {
	l := testLayout(nil)
	p := DefaultParams()
	p.HideCircles = true
	out := string(RenderSVG(l, WithParams(p)))

	if strings.Contains(out, "<circle") {
		t.Error("circles drawn despite HideCircles")
	}
}

func TestPartialParamsKeepCircles(t *testing.T) {
	// A Params literal that only sets some fields must not lose the
	// circle outlines; the zero value of every field is its default.
	l := testLayout(grid.Grid{{Row: 0, Col: 0}: "A"})
	out := string(RenderSVG(l, WithParams(Params{FontSize: 12})))

	if got := strings.Count(out, "<circle"); got != 260 {
		t.Errorf("circle count = %d, want 260", got)
	}
}
