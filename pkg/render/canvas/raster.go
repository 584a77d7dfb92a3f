package canvas

import (
	"bytes"
	"image"

	"github.com/fogleman/gg"
)

// Raster is a Canvas that paints into an in-memory image for PNG
// output. Coordinates stay in page units; the scale factor only raises
// the output resolution.
//
// Drawing primitives cannot return errors, so font resolution failures
// are recorded and surfaced through [Raster.Err] after the draw pass.
type Raster struct {
	dc    *gg.Context
	scale float64
	err   error
}

// NewRaster creates a raster canvas for a page of the given size, with
// a white background. scale multiplies the pixel resolution (2.0 gives
// a 2x image).
func NewRaster(width, height, scale float64) *Raster {
	dc := gg.NewContext(int(width*scale+0.5), int(height*scale+0.5))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	return &Raster{dc: dc, scale: scale}
}

// Circle strokes an unfilled black circle outline.
func (r *Raster) Circle(cx, cy, radius float64, s CircleStyle) {
	r.dc.SetLineWidth(s.StrokeWidth * r.scale)
	r.dc.DrawCircle(cx*r.scale, cy*r.scale, radius*r.scale)
	r.dc.Stroke()
}

// Line strokes a black line segment.
func (r *Raster) Line(x1, y1, x2, y2, width float64) {
	r.dc.SetLineWidth(width * r.scale)
	r.dc.DrawLine(x1*r.scale, y1*r.scale, x2*r.scale, y2*r.scale)
	r.dc.Stroke()
}

// Text draws one line of text centered on (x, y). The face is resolved
// from the system font directories; the first resolution failure sticks
// and suppresses all further text drawing.
func (r *Raster) Text(x, y float64, line string, s TextStyle) {
	if r.err != nil {
		return
	}
	face, err := loadFace(s.FontFamily, s.FontWeight, s.FontSize*r.scale)
	if err != nil {
		r.err = err
		return
	}
	r.dc.SetFontFace(face)
	r.dc.DrawStringAnchored(line, x*r.scale, y*r.scale, 0.5, 0.5)
}

// Err returns the first drawing error, if any.
func (r *Raster) Err() error { return r.err }

// Image returns the rendered image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG returns the rendered page as PNG bytes.
func (r *Raster) EncodePNG() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	var buf bytes.Buffer
	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ensure Raster implements Canvas.
var _ Canvas = (*Raster)(nil)
