// Package sink renders computed layouts to the supported output
// formats.
//
// All formats share one draw pass over the layout; they differ only in
// the canvas backend and encoding. SVG is written directly, PDF is
// converted from the SVG by librsvg, and PNG is rasterized in-process.
package sink

import (
	"github.com/mlandt/labelator/pkg/errors"
	"github.com/mlandt/labelator/pkg/layout"
	"github.com/mlandt/labelator/pkg/render"
	"github.com/mlandt/labelator/pkg/render/canvas"
)

// Params are the user-tunable layout parameters applied uniformly to
// every label in one render. The zero value of any field falls back to
// its documented default; there are no interdependencies between
// fields.
type Params struct {
	// FontSize in page units. Default: the sheet's font size.
	FontSize float64

	// FontFamily is the font family name. Default "Helvetica".
	FontFamily string

	// FontWeight is the font weight name. Default "normal".
	FontWeight string

	// DXText and DYText shift label text within its circle, in em, so
	// offsets scale with the font size.
	DXText float64
	DYText float64

	// LineHeight is the relative line-height multiplier. Default 1.0;
	// shrink to move lines closer together.
	LineHeight float64

	// StrokeWidth is the circle outline width. Default 1.33.
	StrokeWidth float64

	// HideCircles turns the circle outlines off. Outlines are useful
	// for checking that text fits the stickers and are typically
	// hidden before printing. The zero value keeps them drawn, so a
	// partially filled Params never loses the outlines by accident.
	HideCircles bool
}

// DefaultParams returns the documented defaults with circles shown.
func DefaultParams() Params {
	return Params{
		FontFamily:  "Helvetica",
		FontWeight:  "normal",
		LineHeight:  1.0,
		StrokeWidth: 1.33,
	}
}

// resolved fills zero-valued fields from the defaults and the layout's
// sheet font size.
func (p Params) resolved(l layout.Layout) Params {
	d := DefaultParams()
	if p.FontSize == 0 {
		p.FontSize = l.FontSize
	}
	if p.FontFamily == "" {
		p.FontFamily = d.FontFamily
	}
	if p.FontWeight == "" {
		p.FontWeight = d.FontWeight
	}
	if p.LineHeight == 0 {
		p.LineHeight = d.LineHeight
	}
	if p.StrokeWidth == 0 {
		p.StrokeWidth = d.StrokeWidth
	}
	return p
}

// Option configures a render.
type Option func(*renderer)

type renderer struct {
	params    Params
	hasParams bool
	guides    bool
	scale     float64
}

// WithParams sets the layout parameters. Without it the defaults apply.
func WithParams(p Params) Option {
	return func(r *renderer) { r.params = p; r.hasParams = true }
}

// WithGuides draws a crosshair through each circle center, an aid for
// calibrating text alignment against the physical template.
func WithGuides() Option {
	return func(r *renderer) { r.guides = true }
}

// WithScale sets the PNG resolution factor (default 2.0 for a 2x
// image). Ignored by the vector formats.
func WithScale(s float64) Option {
	return func(r *renderer) { r.scale = s }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.hasParams {
		r.params = DefaultParams()
	}
	return r
}

// guideStrokeWidth is the line width of calibration crosshairs.
const guideStrokeWidth = 0.5

// draw performs the shared draw pass: circle outlines, optional
// guides, then one text call per line. Each line is centered on its
// own width at the circle's horizontal center; the block of lines is
// centered on the vertical center. Both offsets are applied in em.
func draw(l layout.Layout, c canvas.Canvas, p Params, guides bool) {
	style := canvas.TextStyle{
		FontSize:   p.FontSize,
		FontFamily: p.FontFamily,
		FontWeight: p.FontWeight,
	}

	for _, circ := range l.Circles {
		if !p.HideCircles {
			c.Circle(circ.CX, circ.CY, circ.R, canvas.CircleStyle{StrokeWidth: p.StrokeWidth})
		}
		if guides {
			c.Line(circ.CX-circ.R, circ.CY, circ.CX+circ.R, circ.CY, guideStrokeWidth)
			c.Line(circ.CX, circ.CY-circ.R, circ.CX, circ.CY+circ.R, guideStrokeWidth)
		}

		n := len(circ.Lines)
		if n == 0 {
			continue
		}
		x := circ.CX + p.DXText*p.FontSize
		for i, line := range circ.Lines {
			// Block of n lines spans (n-1)*LineHeight em, symmetric
			// about the circle's vertical center.
			dy := (p.DYText + (float64(i)-float64(n-1)/2)*p.LineHeight) * p.FontSize
			c.Text(x, circ.CY+dy, line, style)
		}
	}
}

// RenderSVG renders the layout as an SVG document.
func RenderSVG(l layout.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)
	c := canvas.NewSVG(l.PageWidth, l.PageHeight)
	draw(l, c, r.params.resolved(l), r.guides)
	return c.Bytes()
}

// RenderPDF renders the layout as PDF via SVG conversion.
// Requires librsvg (rsvg-convert) on the PATH.
func RenderPDF(l layout.Layout, opts ...Option) ([]byte, error) {
	return render.ToPDF(RenderSVG(l, opts...))
}

// RenderPNG rasterizes the layout in-process. The font family must
// resolve to a system TTF; a failed lookup is reported as
// RENDER_FAILURE.
func RenderPNG(l layout.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	c := canvas.NewRaster(l.PageWidth, l.PageHeight, r.scale)
	draw(l, c, r.params.resolved(l), r.guides)
	if err := c.Err(); err != nil {
		return nil, err
	}
	png, err := c.EncodePNG()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailure, err, "encode png")
	}
	return png, nil
}
