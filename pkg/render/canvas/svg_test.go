package canvas

import (
	"strings"
	"testing"
)

func TestSVGDocumentShape(t *testing.T) {
	c := NewSVG(794, 1123)
	c.Circle(102, 94.46, 19, CircleStyle{StrokeWidth: 1.33})
	c.Text(102, 94.46, "A", TextStyle{FontSize: 8, FontFamily: "Helvetica", FontWeight: "normal"})
	out := string(c.Bytes())

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 794.00 1123.00"`) {
		t.Errorf("missing svg header: %s", out[:60])
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("document not closed")
	}
	if !strings.Contains(out, `<circle cx="102.00" cy="94.46" r="19.00" fill="none" stroke="black" stroke-width="1.33"/>`) {
		t.Errorf("circle element wrong:\n%s", out)
	}
	if !strings.Contains(out, `text-anchor="middle"`) || !strings.Contains(out, `dominant-baseline="middle"`) {
		t.Error("text not centered via anchor attributes")
	}
	if !strings.Contains(out, `font-family="Helvetica"`) || !strings.Contains(out, `font-weight="normal"`) {
		t.Error("font attributes missing")
	}
}

func TestSVGBytesIsRepeatable(t *testing.T) {
	c := NewSVG(100, 100)
	c.Line(0, 50, 100, 50, 1)
	a := string(c.Bytes())
	b := string(c.Bytes())
	if a != b {
		t.Error("Bytes() is not repeatable")
	}
	if strings.Count(a, "</svg>") != 1 {
		t.Errorf("closing tag count = %d, want 1", strings.Count(a, "</svg>"))
	}
}

func TestSVGEscapesText(t *testing.T) {
	c := NewSVG(100, 100)
	c.Text(50, 50, `<b>&"fish"</b>`, TextStyle{FontSize: 8, FontFamily: "Helvetica", FontWeight: "normal"})
	out := string(c.Bytes())

	if strings.Contains(out, "<b>") {
		t.Error("markup not escaped")
	}
	if !strings.Contains(out, "&lt;b&gt;&amp;") {
		t.Errorf("expected escaped entities in output:\n%s", out)
	}
}

func TestFontCandidates(t *testing.T) {
	names := fontCandidates("Helvetica", "bold")
	if names[0] != "Helvetica-Bold" {
		t.Errorf("first candidate = %q, want Helvetica-Bold", names[0])
	}
	found := false
	for _, n := range names {
		if n == "Arial" {
			found = true
		}
	}
	if !found {
		t.Errorf("fallback Arial missing from %v", names)
	}

	names = fontCandidates("DejaVu Sans", "normal")
	if names[0] != "DejaVuSans" {
		t.Errorf("spaces not stripped: %q", names[0])
	}
}
