// Package canvas provides the 2D drawing surface the render sinks draw
// on.
//
// A [Canvas] receives primitive draw calls in page coordinates (y down,
// SVG pixels at 96 PPI). Two implementations exist: [SVG] writes a
// vector document directly, and [Raster] paints into an image via
// fogleman/gg for PNG output. The layout engine owns all positioning;
// canvases only execute what they are told, so both backends place text
// at exactly the same coordinates.
package canvas

// CircleStyle controls how a circle outline is stroked.
type CircleStyle struct {
	// StrokeWidth is the outline width.
	StrokeWidth float64
}

// TextStyle controls the font of one text run.
type TextStyle struct {
	FontSize   float64
	FontFamily string
	FontWeight string
}

// Canvas is the abstract drawing surface. Each text run is one line,
// horizontally and vertically centered on the given point; multi-line
// placement is the caller's responsibility.
type Canvas interface {
	// Circle strokes an unfilled circle outline.
	Circle(cx, cy, r float64, s CircleStyle)

	// Line strokes a straight line segment.
	Line(x1, y1, x2, y2, width float64)

	// Text draws one line of text centered on (x, y).
	Text(x, y float64, line string, s TextStyle)
}
