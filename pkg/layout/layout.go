// Package layout computes the physical position of every label circle on
// a page.
//
// Circle centers are a pure affine function of the sheet calibration:
//
//	cx = MarginLeft + col*PitchX + Diameter/2
//	cy = MarginTop  + row*PitchY + Diameter/2
//
// with the y axis pointing down, as in SVG. [Build] walks the full
// rows x cols grid so empty circles can be drawn as outlines, attaches
// the text lines of every in-range grid cell, and silently skips grid
// entries outside the sheet. Skipping is a deliberate tolerance: sparse
// or overflowing inputs render their in-range cells instead of failing
// the whole page.
//
// Text is treated as an opaque block here. Splitting into lines happens
// in this package; measuring and placing the lines is the renderer's
// job, driven by font-relative units.
package layout

import (
	"strings"

	"github.com/mlandt/labelator/pkg/grid"
	"github.com/mlandt/labelator/pkg/sheet"
)

// Circle is one circle position on the page, with the text lines that
// belong in it. Lines is nil for empty circles.
type Circle struct {
	Pos   grid.Pos
	CX    float64
	CY    float64
	R     float64
	Lines []string
}

// HasText reports whether the circle has any label text to draw.
func (c Circle) HasText() bool { return len(c.Lines) > 0 }

// Layout is the computed geometry for one page, consumed by the render
// sinks.
type Layout struct {
	PageWidth  float64
	PageHeight float64

	// FontSize is the sheet's default font size, used when the caller
	// does not override it.
	FontSize float64

	// Circles lists every rows x cols position in row-major order.
	Circles []Circle
}

// Center returns the circle center for a grid position on the given
// sheet. It is defined for any position, in range or not.
func Center(p grid.Pos, sh sheet.Sheet) (x, y float64) {
	x = sh.MarginLeft + float64(p.Col)*sh.PitchX + sh.Diameter/2
	y = sh.MarginTop + float64(p.Row)*sh.PitchY + sh.Diameter/2
	return x, y
}

// inRange reports whether p lies inside the sheet's grid.
func inRange(p grid.Pos, sh sheet.Sheet) bool {
	return p.Row >= 0 && p.Row < sh.Rows && p.Col >= 0 && p.Col < sh.Cols
}

// SplitLines splits label text on line breaks. Blank text (empty or
// whitespace-only) yields nil so that nothing is drawn for it.
func SplitLines(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Build computes the page layout for a canonical grid on a sheet.
// Every position on the sheet produces a Circle; positions present in
// the grid with non-blank text carry their lines. Grid entries outside
// the sheet are skipped without error.
func Build(g grid.Grid, sh sheet.Sheet) Layout {
	l := Layout{
		PageWidth:  sh.PageWidth,
		PageHeight: sh.PageHeight,
		FontSize:   sh.FontSize,
		Circles:    make([]Circle, 0, sh.Count()),
	}

	for row := 0; row < sh.Rows; row++ {
		for col := 0; col < sh.Cols; col++ {
			p := grid.Pos{Row: row, Col: col}
			cx, cy := Center(p, sh)
			c := Circle{Pos: p, CX: cx, CY: cy, R: sh.Radius()}
			if text, ok := g[p]; ok {
				c.Lines = SplitLines(text)
			}
			l.Circles = append(l.Circles, c)
		}
	}
	return l
}
