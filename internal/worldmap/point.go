package worldmap

import "fmt"

// Point is a tile coordinate on the map grid.
type Point struct {
	Row int
	Col int
}

// InvalidPoint is the sentinel for "no point" (nothing selected yet).
var InvalidPoint = Point{Row: -1, Col: -1}

// Pt is shorthand for Point{Row: row, Col: col}.
func Pt(row, col int) Point {
	return Point{Row: row, Col: col}
}

// Valid reports whether both coordinates are non-negative.
// It says nothing about whether the point lies inside a particular map.
func (p Point) Valid() bool {
	return p.Row >= 0 && p.Col >= 0
}

func (p Point) String() string {
	if !p.Valid() {
		return "(invalid)"
	}
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}
