package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// SVG is a Canvas that writes an SVG document into a buffer.
// Create with [NewSVG], draw, then read the document with [Bytes].
type SVG struct {
	buf    bytes.Buffer
	width  float64
	height float64
}

// NewSVG creates an SVG canvas for a page of the given size.
func NewSVG(width, height float64) *SVG {
	s := &SVG{width: width, height: height}
	fmt.Fprintf(&s.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	return s
}

// Circle strokes an unfilled black circle outline.
func (s *SVG) Circle(cx, cy, r float64, st CircleStyle) {
	fmt.Fprintf(&s.buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="black" stroke-width="%.2f"/>`+"\n",
		cx, cy, r, st.StrokeWidth)
}

// Line strokes a black line segment.
func (s *SVG) Line(x1, y1, x2, y2, width float64) {
	fmt.Fprintf(&s.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="%.2f"/>`+"\n",
		x1, y1, x2, y2, width)
}

// Text draws one line of text centered on (x, y). Horizontal centering
// uses text-anchor, vertical centering dominant-baseline, so each line
// is centered on its own measured width by the SVG renderer.
func (s *SVG) Text(x, y float64, line string, st TextStyle) {
	fmt.Fprintf(&s.buf, `  <text x="%.2f" y="%.2f" font-size="%g" font-family=%q font-weight=%q text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		x, y, st.FontSize, st.FontFamily, st.FontWeight, escapeXML(line))
}

// Bytes closes the document and returns the full SVG. The canvas must
// not be drawn on afterwards.
func (s *SVG) Bytes() []byte {
	out := make([]byte, s.buf.Len(), s.buf.Len()+len("</svg>\n"))
	copy(out, s.buf.Bytes())
	return append(out, "</svg>\n"...)
}

func escapeXML(v string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(v))
	return buf.String()
}

// Ensure SVG implements Canvas.
var _ Canvas = (*SVG)(nil)
