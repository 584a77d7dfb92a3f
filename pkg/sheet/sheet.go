// Package sheet describes the physical geometry of die-cut label paper.
//
// A [Sheet] bundles everything the layout engine needs to place circles on
// one printed page: the grid size, the circle diameter, the center-to-center
// pitch along each axis, and the page-edge margins. All lengths are in SVG
// pixels at 96 PPI, the unit the supported output formats share.
//
// Calibration values for one specific product are built in as
// [Flexilabels260]; other products can be described in a small TOML file and
// loaded with [Load].
package sheet

import (
	"fmt"
	"sort"

	"github.com/mlandt/labelator/pkg/errors"
)

// Sheet holds the calibration parameters for one label-paper product.
// Values are immutable for the duration of a render; the package-level
// defaults are constructed once and never mutated.
type Sheet struct {
	// Name identifies the product (e.g. "flexilabels-260").
	Name string `toml:"name"`

	// Rows and Cols give the number of circles along each axis.
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`

	// Diameter is the circle diameter.
	Diameter float64 `toml:"diameter"`

	// PitchX and PitchY are the center-to-center spacings between
	// adjacent circles.
	PitchX float64 `toml:"pitch_x"`
	PitchY float64 `toml:"pitch_y"`

	// MarginLeft and MarginTop are the distances from the page edges to
	// the near edge of the first circle. Together with the pitches they
	// must reproduce the die-cut template to printer precision.
	MarginLeft float64 `toml:"margin_left"`
	MarginTop  float64 `toml:"margin_top"`

	// PageWidth and PageHeight give the page size.
	PageWidth  float64 `toml:"page_width"`
	PageHeight float64 `toml:"page_height"`

	// FontSize is the default font size used when the caller does not
	// specify one.
	FontSize float64 `toml:"font_size"`
}

// Radius returns half the circle diameter.
func (s Sheet) Radius() float64 { return s.Diameter / 2 }

// Count returns the total number of circle positions on the page.
func (s Sheet) Count() int { return s.Rows * s.Cols }

// Validate checks the sheet for basic sanity. It returns an
// INVALID_SHEET error describing the first problem found.
func (s Sheet) Validate() error {
	switch {
	case s.Rows <= 0 || s.Cols <= 0:
		return errors.New(errors.ErrCodeInvalidSheet, "sheet %q: grid must have positive rows and cols, got %dx%d", s.Name, s.Rows, s.Cols)
	case s.Diameter <= 0:
		return errors.New(errors.ErrCodeInvalidSheet, "sheet %q: diameter must be positive, got %g", s.Name, s.Diameter)
	case s.PitchX <= 0 || s.PitchY <= 0:
		return errors.New(errors.ErrCodeInvalidSheet, "sheet %q: pitch must be positive, got %gx%g", s.Name, s.PitchX, s.PitchY)
	case s.MarginLeft < 0 || s.MarginTop < 0:
		return errors.New(errors.ErrCodeInvalidSheet, "sheet %q: margins cannot be negative", s.Name)
	case s.PageWidth <= 0 || s.PageHeight <= 0:
		return errors.New(errors.ErrCodeInvalidSheet, "sheet %q: page size must be positive, got %gx%g", s.Name, s.PageWidth, s.PageHeight)
	case s.FontSize < 0:
		return errors.New(errors.ErrCodeInvalidSheet, "sheet %q: font size cannot be negative", s.Name)
	}
	return nil
}

// Flexilabels260 describes A4 sheets with 260 circular 10mm labels
// (20 rows x 13 columns), sold as Flexilabels "260 labels per A4 sheet"
// and OnlineLabels EU30059. This is the process-wide default sheet.
//
// Pages are 794x1123 px (A4 at 96 PPI). The margins place the first
// circle center at (102, 94.46); the remaining centers follow at a
// 49.16 px pitch on both axes.
var Flexilabels260 = Sheet{
	Name:       "flexilabels-260",
	Rows:       20,
	Cols:       13,
	Diameter:   38,
	PitchX:     49.16,
	PitchY:     49.16,
	MarginLeft: 83,
	MarginTop:  75.46,
	PageWidth:  794,
	PageHeight: 1123,
	FontSize:   8,
}

// Default returns the process-wide default sheet ([Flexilabels260]).
func Default() Sheet { return Flexilabels260 }

// named maps product names to their calibration bundles. Read-only after
// package init.
var named = map[string]Sheet{
	Flexilabels260.Name: Flexilabels260,
}

// Named looks up a built-in sheet by product name.
func Named(name string) (Sheet, bool) {
	s, ok := named[name]
	return s, ok
}

// Names returns the sorted names of all built-in sheets.
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// String returns a short human-readable description of the sheet.
func (s Sheet) String() string {
	return fmt.Sprintf("%s: %dx%d circles, d=%g, pitch=%gx%g, page=%gx%g",
		s.Name, s.Rows, s.Cols, s.Diameter, s.PitchX, s.PitchY, s.PageWidth, s.PageHeight)
}
