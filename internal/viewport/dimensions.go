// Package viewport manages which part of the tile grid is visible: the
// visible-window value type, the fit-to-selection algorithm, zoom, the
// selection/cursor model and the scrollbar synchroniser.
package viewport

import (
	"fmt"

	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// VisibleDimensions is an inclusive rectangle of tile coordinates.
// It is a value type: every change produces a new one.
type VisibleDimensions struct {
	minRow, maxRow int
	minCol, maxCol int
}

// NewVisibleDimensions builds a window. If a max is below its min it is
// raised to the min so the window is never inverted.
func NewVisibleDimensions(minRow, maxRow, minCol, maxCol int) VisibleDimensions {
	if maxRow < minRow {
		maxRow = minRow
	}
	if maxCol < minCol {
		maxCol = minCol
	}
	return VisibleDimensions{minRow: minRow, maxRow: maxRow, minCol: minCol, maxCol: maxCol}
}

// FullMap returns the window covering the whole map, anchored at the origin.
func FullMap(rows, cols int) VisibleDimensions {
	return NewVisibleDimensions(0, rows-1, 0, cols-1)
}

func (v VisibleDimensions) MinRow() int { return v.minRow }
func (v VisibleDimensions) MaxRow() int { return v.maxRow }
func (v VisibleDimensions) MinCol() int { return v.minCol }
func (v VisibleDimensions) MaxCol() int { return v.maxCol }

// Height is the number of visible rows.
func (v VisibleDimensions) Height() int { return v.maxRow - v.minRow + 1 }

// Width is the number of visible columns.
func (v VisibleDimensions) Width() int { return v.maxCol - v.minCol + 1 }

// ContainsRow reports whether row is inside the window.
func (v VisibleDimensions) ContainsRow(row int) bool {
	return row >= v.minRow && row <= v.maxRow
}

// ContainsCol reports whether col is inside the window.
func (v VisibleDimensions) ContainsCol(col int) bool {
	return col >= v.minCol && col <= v.maxCol
}

// Contains reports whether p is inside the window.
func (v VisibleDimensions) Contains(p worldmap.Point) bool {
	return v.ContainsRow(p.Row) && v.ContainsCol(p.Col)
}

// WithRows returns a copy with a new row range.
func (v VisibleDimensions) WithRows(minRow, maxRow int) VisibleDimensions {
	return NewVisibleDimensions(minRow, maxRow, v.minCol, v.maxCol)
}

// WithCols returns a copy with a new column range.
func (v VisibleDimensions) WithCols(minCol, maxCol int) VisibleDimensions {
	return NewVisibleDimensions(v.minRow, v.maxRow, minCol, maxCol)
}

func (v VisibleDimensions) String() string {
	return fmt.Sprintf("rows[%d..%d] cols[%d..%d]", v.minRow, v.maxRow, v.minCol, v.maxCol)
}
