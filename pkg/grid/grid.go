// Package grid normalizes heterogeneous label descriptions into one
// canonical sparse grid.
//
// Callers describe their labels in whichever of three shapes is most
// convenient, each with its own constructor:
//
//   - [Cells]: an explicit (row, column) -> text mapping
//   - [Matrix]: a row-major matrix of strings, rows may be ragged
//   - [Sequence]: a flat list filled onto the grid in row-major or
//     column-major order
//
// [Normalize] converts any source into a [Grid], the only representation
// the layout engine accepts. The transform is purely functional: sources
// are never mutated and the returned grid is freshly allocated.
//
// Normalization never checks grid bounds. Out-of-range positions survive
// into the grid and are silently skipped at layout time, which lets
// sparse or overflowing inputs render their in-range cells instead of
// failing whole.
package grid

import (
	"github.com/mlandt/labelator/pkg/errors"
	"github.com/mlandt/labelator/pkg/sheet"
)

// Pos addresses one circle on the sheet. Indices are zero-based; row 0
// is the top row and column 0 the leftmost column.
type Pos struct {
	Row int
	Col int
}

// Grid is the canonical sparse mapping from positions to label text.
// Absent positions are simply not drawn.
type Grid map[Pos]string

// Order selects the traversal used to fill a flat [Sequence] onto the
// grid.
type Order string

const (
	// OrderDefault leaves the choice to the source (row-major).
	OrderDefault Order = ""

	// OrderRow fills left-to-right, wrapping to the next row after the
	// sheet's column count.
	OrderRow Order = "row"

	// OrderCol fills top-to-bottom, wrapping to the next column after
	// the sheet's row count.
	OrderCol Order = "col"
)

// ParseOrder converts a user-supplied order token into an [Order].
// It returns an INVALID_ORDER error for unrecognized tokens.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case OrderDefault, OrderRow, OrderCol:
		return Order(s), nil
	}
	return OrderDefault, errors.New(errors.ErrCodeInvalidOrder, "order must be %q or %q, got %q", OrderRow, OrderCol, s)
}

// Source is one of the three accepted label shapes. Implementations are
// created by [Cells], [Matrix], and [Sequence].
type Source interface {
	normalize(sh sheet.Sheet) (Grid, error)
}

// Normalize converts any source into the canonical grid. The sheet
// supplies the row/column counts used to wrap flat sequences; it plays
// no other role and no bounds are enforced.
func Normalize(src Source, sh sheet.Sheet) (Grid, error) {
	if src == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "labels source is nil")
	}
	return src.normalize(sh)
}

// cellsSource passes an explicit mapping through unchanged.
type cellsSource struct {
	cells map[Pos]string
}

// Cells creates a source from an explicit position -> text mapping.
// The mapping is already canonical and is copied as-is.
func Cells(cells map[Pos]string) Source {
	return &cellsSource{cells: cells}
}

func (s *cellsSource) normalize(sheet.Sheet) (Grid, error) {
	g := make(Grid, len(s.cells))
	for p, text := range s.cells {
		g[p] = text
	}
	return g, nil
}

// matrixSource maps outer index -> row, inner index -> column.
type matrixSource struct {
	rows [][]string
}

// Matrix creates a source from a row-major matrix of strings. Rows may
// have different lengths; shorter rows leave their trailing columns
// absent.
func Matrix(rows [][]string) Source {
	return &matrixSource{rows: rows}
}

func (s *matrixSource) normalize(sheet.Sheet) (Grid, error) {
	g := make(Grid)
	for row, cols := range s.rows {
		for col, text := range cols {
			g[Pos{Row: row, Col: col}] = text
		}
	}
	return g, nil
}

// sequenceSource walks a flat list in the chosen order.
type sequenceSource struct {
	labels []string
	order  Order
}

// Sequence creates a source from a flat list of labels plus a fill
// order. [OrderDefault] fills row-major.
func Sequence(labels []string, order Order) Source {
	return &sequenceSource{labels: labels, order: order}
}

func (s *sequenceSource) normalize(sh sheet.Sheet) (Grid, error) {
	// Wrapping divides by the grid dimensions, so an unvalidated sheet
	// must be rejected here rather than panic.
	if sh.Rows <= 0 || sh.Cols <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSheet, "cannot wrap a flat list on a %dx%d sheet", sh.Rows, sh.Cols)
	}

	order := s.order
	if order == OrderDefault {
		order = OrderRow
	}

	g := make(Grid, len(s.labels))
	switch order {
	case OrderRow:
		for i, text := range s.labels {
			g[Pos{Row: i / sh.Cols, Col: i % sh.Cols}] = text
		}
	case OrderCol:
		for i, text := range s.labels {
			g[Pos{Row: i % sh.Rows, Col: i / sh.Rows}] = text
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidOrder, "order must be %q or %q, got %q", OrderRow, OrderCol, string(s.order))
	}
	return g, nil
}
